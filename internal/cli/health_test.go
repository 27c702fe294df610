package cli_test

// Coverage Notes:
// - Commands are tested end-to-end through cobra with a mock APIClient
//   injected via Env; no network is involved.
// - Shared mocks and env helpers live in helpers_test.go.

import (
	"errors"
	"strings"
	"testing"
	"time"

	amos "github.com/africanmarketos591/mvr-api-go-client"
	"github.com/africanmarketos591/mvr-api-go-client/internal/cli"
)

func TestHealthCmd(t *testing.T) {
	t.Parallel()

	t.Run("prints gateway health", func(t *testing.T) {
		t.Parallel()

		h := &testHarness{}
		h.client.healthFn = func() (*amos.HealthResponse, error) {
			return &amos.HealthResponse{
				Status:    "ok",
				Version:   "3.2.1",
				Wrapper:   "1.4.0",
				RequestID: "h-1",
				Timestamp: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			}, nil
		}

		if err := h.run(t, cli.HealthCmd); err != nil {
			t.Fatalf("health command unexpected error: %v", err)
		}

		out := h.stdout.String()
		for _, want := range []string{"ok", "3.2.1", "1.4.0", "h-1", "2024-01-01T00:00:00Z"} {
			if !strings.Contains(out, want) {
				t.Errorf("output %q missing %q", out, want)
			}
		}
	})

	t.Run("omits request ID line when absent", func(t *testing.T) {
		t.Parallel()

		h := &testHarness{}
		h.client.healthFn = func() (*amos.HealthResponse, error) {
			return &amos.HealthResponse{Status: "ok", Version: "1", Wrapper: "1"}, nil
		}

		if err := h.run(t, cli.HealthCmd); err != nil {
			t.Fatalf("health command unexpected error: %v", err)
		}
		if strings.Contains(h.stdout.String(), "Request ID") {
			t.Errorf("output %q should not mention request ID", h.stdout.String())
		}
	})

	t.Run("missing license key", func(t *testing.T) {
		t.Parallel()

		h := &testHarness{}
		delete(h.envVars(), cli.EnvLicenseKey)

		err := h.run(t, cli.HealthCmd)
		if !errors.Is(err, cli.ErrLicenseKeyMissing) {
			t.Errorf("error = %v, want ErrLicenseKeyMissing", err)
		}
	})

	t.Run("missing buyer email", func(t *testing.T) {
		t.Parallel()

		h := &testHarness{}
		delete(h.envVars(), cli.EnvBuyerEmail)

		err := h.run(t, cli.HealthCmd)
		if !errors.Is(err, cli.ErrBuyerEmailMissing) {
			t.Errorf("error = %v, want ErrBuyerEmailMissing", err)
		}
	})

	t.Run("API errors propagate", func(t *testing.T) {
		t.Parallel()

		h := &testHarness{}
		h.client.healthFn = func() (*amos.HealthResponse, error) {
			return nil, &amos.Error{Kind: amos.KindServer, Message: "ENGINE_PANIC"}
		}

		err := h.run(t, cli.HealthCmd)
		if !errors.Is(err, amos.ErrServer) {
			t.Errorf("error = %v, want a SERVER api error", err)
		}
	})

	t.Run("connection flags reach the config", func(t *testing.T) {
		t.Parallel()

		h := &testHarness{}
		h.client.healthFn = func() (*amos.HealthResponse, error) {
			return &amos.HealthResponse{Status: "ok", Version: "1", Wrapper: "1"}, nil
		}

		err := h.run(t, cli.HealthCmd,
			"--base-url", "https://staging.amos.test",
			"--timeout", "5s",
			"--max-retries", "1",
		)
		if err != nil {
			t.Fatalf("health command unexpected error: %v", err)
		}

		cfg := h.lastConfig
		if cfg.BaseURL != "https://staging.amos.test" {
			t.Errorf("base URL = %q", cfg.BaseURL)
		}
		if cfg.Timeout != 5*time.Second {
			t.Errorf("timeout = %v", cfg.Timeout)
		}
		if cfg.MaxRetries != 1 {
			t.Errorf("max retries = %d", cfg.MaxRetries)
		}
		if cfg.LicenseKey != "test-license" || cfg.BuyerEmail != "buyer@example.com" {
			t.Errorf("credentials not taken from env: %+v", cfg)
		}
	})
}
