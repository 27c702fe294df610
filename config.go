package amos

import (
	"errors"
	"fmt"
	"net/url"
	"time"
)

// Defaults applied by New when the corresponding Config field is zero.
const (
	// DefaultBaseURL is the AMOS production gateway.
	DefaultBaseURL = "https://africanmarketos.com"

	// DefaultTimeout bounds a single transport attempt.
	DefaultTimeout = 30 * time.Second

	// DefaultMaxRetries is the retry budget for transient failures.
	DefaultMaxRetries = 3
)

// Configuration errors returned by New.
//
// Usage pattern: wrapped with context at the check site using fmt.Errorf:
//
//	return fmt.Errorf("timeout %v: %w", cfg.Timeout, ErrInvalidTimeout)
//
// This preserves errors.Is() compatibility while adding context.
var (
	// ErrLicenseKeyMissing indicates Config.LicenseKey is empty.
	ErrLicenseKeyMissing = errors.New("license key not set")

	// ErrBuyerEmailMissing indicates Config.BuyerEmail is empty.
	ErrBuyerEmailMissing = errors.New("buyer email not set")

	// ErrInvalidBaseURL indicates Config.BaseURL could not be parsed.
	ErrInvalidBaseURL = errors.New("invalid base URL")

	// ErrInvalidTimeout indicates Config.Timeout is negative.
	ErrInvalidTimeout = errors.New("timeout must be positive")

	// ErrInvalidMaxRetries indicates Config.MaxRetries is negative.
	ErrInvalidMaxRetries = errors.New("max retries must be >= 0")
)

// Config holds the credential set and transport bounds for a Client.
// It is read once by New and never mutated afterwards.
type Config struct {
	// LicenseKey is the MVR/AMOS license key (x-mvr-license header). Required.
	LicenseKey string

	// BuyerEmail is the buyer email bound to the license (x-buyer-email header). Required.
	BuyerEmail string

	// BaseURL is the API gateway root. Defaults to DefaultBaseURL.
	BaseURL string

	// Timeout bounds each transport attempt. Defaults to DefaultTimeout.
	// Retry backoff sleeps are not counted against it.
	Timeout time.Duration

	// MaxRetries is the number of retries after the first attempt, so a
	// transport that always fails is tried MaxRetries+1 times.
	// Zero means "use DefaultMaxRetries"; use NoRetries for a single attempt.
	MaxRetries int
}

// NoRetries disables retrying when assigned to Config.MaxRetries.
// Distinct from zero, which selects DefaultMaxRetries.
const NoRetries = -1

// withDefaults returns a copy of c with zero fields replaced by defaults.
func (c Config) withDefaults() Config {
	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.MaxRetries == NoRetries {
		c.MaxRetries = 0
	}
	return c
}

// validate checks structural preconditions. Called by New after defaulting;
// no network I/O happens here.
func (c Config) validate() error {
	if c.LicenseKey == "" {
		return ErrLicenseKeyMissing
	}
	if c.BuyerEmail == "" {
		return ErrBuyerEmailMissing
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%q: %w", c.BaseURL, ErrInvalidBaseURL)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("%v: %w", c.Timeout, ErrInvalidTimeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("%d: %w", c.MaxRetries, ErrInvalidMaxRetries)
	}
	return nil
}
