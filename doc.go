// Package amos provides a Go client for the AMOS-MVR scoring API.
//
// The client authenticates with a license key and buyer email, sent on every
// request as the x-mvr-license and x-buyer-email headers. Requests are retried
// automatically: transport failures back off exponentially, rate limits honor
// the server's Retry-After header, and every other failure is terminal.
//
// Basic usage:
//
//	client, err := amos.New(amos.Config{
//		LicenseKey: os.Getenv("AMOS_LICENSE_KEY"),
//		BuyerEmail: os.Getenv("AMOS_BUYER_EMAIL"),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	result, err := client.Score(ctx, &amos.ScoreRequest{
//		AMOSID:         "EXAMPLE_ENTITY_001",
//		Sector:         amos.SectorFMCGBeverage,
//		Region:         "EA",
//		Revenue:        1_000_000_000,
//		Cash:           100_000_000,
//		DaysSilent:     2,
//		OccupancyRate:  95,
//		CollectionRate: 96,
//	})
//
// Every failure surfaces as a single *amos.Error carrying a Kind, the server
// message, optional structured details, and the request ID when the service
// provided one. Callers branch on the kind, or use errors.Is with the kind
// sentinels:
//
//	if errors.Is(err, amos.ErrRateLimited) {
//		// retried internally and still rate limited; back off at the caller
//	}
//
// The scoring model itself is server-side; this package only builds requests,
// validates payload shapes, and maps responses.
package amos
