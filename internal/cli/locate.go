package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLocateCmd(ctx *context) *cobra.Command {
	return &cobra.Command{
		Use:   "locate",
		Short: "Print the backend executable the shell would start",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.loadConfig(cmd)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if cfg.Backend.Disabled {
				fmt.Fprintln(out, "disabled")
				return nil
			}
			path, err := cfg.Launcher().Resolve()
			if err != nil {
				fmt.Fprintf(out, "not found: %v\n", err)
				return nil
			}
			fmt.Fprintln(out, path)
			return nil
		},
	}
}
