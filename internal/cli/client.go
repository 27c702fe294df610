package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	amos "github.com/africanmarketos591/mvr-api-go-client"
)

// Environment variables the CLI reads for credentials.
const (
	EnvLicenseKey = "AMOS_LICENSE_KEY"
	EnvBuyerEmail = "AMOS_BUYER_EMAIL"
)

// Setup errors: the CLI cannot run without credentials.
var (
	// ErrLicenseKeyMissing indicates AMOS_LICENSE_KEY is not set.
	ErrLicenseKeyMissing = errors.New("AMOS_LICENSE_KEY environment variable not set")

	// ErrBuyerEmailMissing indicates AMOS_BUYER_EMAIL is not set.
	ErrBuyerEmailMissing = errors.New("AMOS_BUYER_EMAIL environment variable not set")
)

// clientFlags holds the connection flags shared by all commands.
type clientFlags struct {
	baseURL    string
	timeout    time.Duration
	maxRetries int
}

// register adds the shared connection flags to cmd.
func (f *clientFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.baseURL, "base-url", "", "AMOS gateway URL (default "+amos.DefaultBaseURL+")")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 0, "per-attempt request timeout (default 30s)")
	cmd.Flags().IntVar(&f.maxRetries, "max-retries", 0, "retries for transient failures (default 3)")
}

// newClient resolves credentials from the environment and builds the client.
func newClient(env *Env, flags *clientFlags) (APIClient, error) {
	license := env.Getenv(EnvLicenseKey)
	if license == "" {
		return nil, fmt.Errorf("set your license key or add it to .env: %w", ErrLicenseKeyMissing)
	}
	email := env.Getenv(EnvBuyerEmail)
	if email == "" {
		return nil, fmt.Errorf("set your buyer email or add it to .env: %w", ErrBuyerEmailMissing)
	}

	return env.NewClient(amos.Config{
		LicenseKey: license,
		BuyerEmail: email,
		BaseURL:    flags.baseURL,
		Timeout:    flags.timeout,
		MaxRetries: flags.maxRetries,
	})
}
