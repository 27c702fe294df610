package cli_test

// Shared mocks and harness for command tests.

import (
	"bytes"
	"context"
	"errors"
	"io"
	"testing"

	"github.com/spf13/cobra"

	amos "github.com/africanmarketos591/mvr-api-go-client"
	"github.com/africanmarketos591/mvr-api-go-client/internal/cli"
)

// mockClient implements cli.APIClient with injectable behavior.
type mockClient struct {
	scoreFn  func(req *amos.ScoreRequest) (*amos.ScoreResponse, error)
	healthFn func() (*amos.HealthResponse, error)
}

func (m *mockClient) Score(_ context.Context, req *amos.ScoreRequest) (*amos.ScoreResponse, error) {
	if m.scoreFn == nil {
		return nil, errors.New("unexpected Score call")
	}
	return m.scoreFn(req)
}

func (m *mockClient) Health(context.Context) (*amos.HealthResponse, error) {
	if m.healthFn == nil {
		return nil, errors.New("unexpected Health call")
	}
	return m.healthFn()
}

// testHarness wires a command to a mock client and captured output.
// The zero value provides valid credentials.
type testHarness struct {
	stdout     bytes.Buffer
	stderr     bytes.Buffer
	client     mockClient
	vars       map[string]string
	lastConfig amos.Config
}

// envVars returns the mutable fake environment, seeding valid credentials on
// first use.
func (h *testHarness) envVars() map[string]string {
	if h.vars == nil {
		h.vars = map[string]string{
			cli.EnvLicenseKey: "test-license",
			cli.EnvBuyerEmail: "buyer@example.com",
		}
	}
	return h.vars
}

// run executes the command built by mk with the given CLI args.
func (h *testHarness) run(t *testing.T, mk func(*cli.Env) *cobra.Command, args ...string) error {
	t.Helper()

	vars := h.envVars()
	env := cli.NewEnv(
		cli.WithStdout(&h.stdout),
		cli.WithStderr(&h.stderr),
		cli.WithGetenv(func(key string) string { return vars[key] }),
		cli.WithClientFactory(func(cfg amos.Config) (cli.APIClient, error) {
			h.lastConfig = cfg
			return &h.client, nil
		}),
	)

	cmd := mk(env)
	if args == nil {
		// nil would make cobra fall back to os.Args.
		args = []string{}
	}
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	return cmd.ExecuteContext(context.Background())
}
