package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.trai.ch/weft/internal/app"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [name=value...]",
		Short: "Resolve artifacts for the requested attributes",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				// Display command usage help without returning an error
				_ = cmd.Help()
				return nil
			}
			configPath, _ := cmd.Flags().GetString("config")
			continueOnFailure, _ := cmd.Flags().GetBool("continue")
			prepare, _ := cmd.Flags().GetBool("prepare-projects")

			artifacts, err := c.app.Resolve(cmd.Context(), configPath, app.ResolveOptions{
				Attributes:        args,
				Filter:            filterFromFlags(cmd),
				ContinueOnFailure: continueOnFailure,
				PrepareProjects:   prepare,
			})
			for _, a := range artifacts {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s (%s) %s\n",
					a.Component, a.Artifact.Path, a.Variant, a.Chain)
			}
			return err
		},
	}
	cmd.Flags().Bool("continue", false, "Collect per-artifact failures instead of aborting on the first")
	cmd.Flags().Bool("prepare-projects", false, "Execute workspace transform chains before visiting artifacts")
	cmd.Flags().Bool("projects-only", false, "Resolve in-workspace components only")
	cmd.Flags().Bool("modules-only", false, "Resolve external modules only")
	return cmd
}
