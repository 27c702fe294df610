package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	amos "github.com/africanmarketos591/mvr-api-go-client"
)

// ErrRequestFileUnreadable indicates the score request file could not be read.
// Wrap with the path: fmt.Errorf("%s: %w", path, ErrRequestFileUnreadable).
var ErrRequestFileUnreadable = errors.New("cannot read request file")

// ScoreCmd creates the score command.
// The env parameter provides injectable dependencies for testing.
func ScoreCmd(env *Env) *cobra.Command {
	flags := &clientFlags{}

	cmd := &cobra.Command{
		Use:   "score <request.json>",
		Short: "Score an entity from a JSON request file",
		Long: `Score an entity against the AMOS relational risk model.

The argument is a JSON file holding the score request, for example:

  {
    "amos_id": "EXAMPLE_ENTITY_001",
    "sector": "FMCG_BEVERAGE",
    "region": "EA",
    "revenue": 1000000000,
    "cash": 100000000,
    "days_silent": 2,
    "occupancy_rate": 95,
    "collection_rate": 96
  }

The request is validated locally before anything is sent. The scored result
is printed to stdout as indented JSON.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := readRequest(args[0])
			if err != nil {
				return err
			}

			client, err := newClient(env, flags)
			if err != nil {
				return err
			}

			result, err := client.Score(cmd.Context(), req)
			if err != nil {
				return err
			}

			out, err := json.MarshalIndent(result, "", "  ")
			if err != nil {
				return fmt.Errorf("encode result: %w", err)
			}
			fmt.Fprintln(env.Stdout, string(out))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}

// readRequest loads and decodes a score request from path.
// Decode failures wrap amos.ErrInvalidRequest so they exit as validation errors.
func readRequest(path string) (*amos.ScoreRequest, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- path is a user-supplied CLI argument
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrRequestFileUnreadable)
	}

	var req amos.ScoreRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("%s is not a valid score request: %v: %w", path, err, amos.ErrInvalidRequest)
	}
	return &req, nil
}
