package amos

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// MaxRecommendedParallel bounds concurrent scoring requests against one
// license before the gateway starts answering 429s.
const MaxRecommendedParallel = 10

// ScoreBatch scores multiple entities in parallel. Results are returned in
// the same order as the input requests. If any request fails, the whole
// batch is aborted and that failure is returned. maxParallel limits the
// number of in-flight API calls (1 to MaxRecommendedParallel recommended).
//
// Each call retries independently under the client's retry budget, so a
// rate-limited batch degrades to the server's pace rather than failing fast.
func (c *Client) ScoreBatch(
	ctx context.Context,
	reqs []*ScoreRequest,
	maxParallel int,
) ([]*ScoreResponse, error) {
	if len(reqs) == 0 {
		return nil, nil
	}

	if maxParallel < 1 {
		maxParallel = 1
	}

	results := make([]*ScoreResponse, len(reqs))
	sem := make(chan struct{}, maxParallel)

	g, ctx := errgroup.WithContext(ctx)

	for i, req := range reqs {
		g.Go(func() error {
			// Acquire semaphore slot.
			select {
			case sem <- struct{}{}:
			case <-ctx.Done():
				return ctx.Err()
			}
			defer func() { <-sem }()

			resp, err := c.Score(ctx, req)
			if err != nil {
				id := "<nil>"
				if req != nil {
					id = req.AMOSID
				}
				return fmt.Errorf("request %d (%s): %w", i, id, err)
			}
			results[i] = resp
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
