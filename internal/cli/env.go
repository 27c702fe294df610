package cli

import (
	"context"
	"io"
	"os"

	amos "github.com/africanmarketos591/mvr-api-go-client"
)

// APIClient is the client surface commands depend on.
// *amos.Client implements it implicitly; tests inject mocks.
type APIClient interface {
	Score(ctx context.Context, req *amos.ScoreRequest) (*amos.ScoreResponse, error)
	Health(ctx context.Context) (*amos.HealthResponse, error)
}

// Env holds injectable dependencies for CLI commands. This is the central
// injection point for testing commands in isolation; production code uses
// DefaultEnv().
type Env struct {
	Stdout io.Writer
	Stderr io.Writer
	Getenv func(string) string

	// NewClient builds the API client once flags and env are resolved.
	NewClient func(cfg amos.Config) (APIClient, error)
}

// EnvOption configures an Env.
type EnvOption func(*Env)

// WithStdout sets the stdout writer.
func WithStdout(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stdout = w
	}
}

// WithStderr sets the stderr writer.
func WithStderr(w io.Writer) EnvOption {
	return func(e *Env) {
		e.Stderr = w
	}
}

// WithGetenv sets the environment variable getter.
func WithGetenv(fn func(string) string) EnvOption {
	return func(e *Env) {
		e.Getenv = fn
	}
}

// WithClientFactory sets the API client factory.
func WithClientFactory(fn func(cfg amos.Config) (APIClient, error)) EnvOption {
	return func(e *Env) {
		e.NewClient = fn
	}
}

// DefaultEnv returns an Env with production defaults.
func DefaultEnv() *Env {
	return &Env{
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Getenv: os.Getenv,
		NewClient: func(cfg amos.Config) (APIClient, error) {
			return amos.New(cfg)
		},
	}
}

// NewEnv creates an Env with the given options applied to defaults.
func NewEnv(opts ...EnvOption) *Env {
	env := DefaultEnv()
	for _, opt := range opts {
		opt(env)
	}
	return env
}
