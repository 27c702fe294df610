package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

// HealthCmd creates the health command.
// The env parameter provides injectable dependencies for testing.
func HealthCmd(env *Env) *cobra.Command {
	flags := &clientFlags{}

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Probe the AMOS gateway health endpoint",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(env, flags)
			if err != nil {
				return err
			}

			health, err := client.Health(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintf(env.Stdout, "Status:          %s\n", health.Status)
			fmt.Fprintf(env.Stdout, "Core version:    %s\n", health.Version)
			fmt.Fprintf(env.Stdout, "Wrapper version: %s\n", health.Wrapper)
			if health.RequestID != "" {
				fmt.Fprintf(env.Stdout, "Request ID:      %s\n", health.RequestID)
			}
			fmt.Fprintf(env.Stdout, "Timestamp:       %s\n", health.Timestamp.Format(time.RFC3339))
			return nil
		},
	}

	flags.register(cmd)
	return cmd
}
