package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (c *CLI) newChainsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chains [name=value...]",
		Short: "Show the variant and transform chain each component would use, without executing",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				_ = cmd.Help()
				return nil
			}
			configPath, _ := cmd.Flags().GetString("config")

			plans, err := c.app.Chains(configPath, args, filterFromFlags(cmd))
			if err != nil {
				return err
			}
			for _, p := range plans {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", p.Component, p.Variant, p.Chain)
			}
			return nil
		},
	}
	cmd.Flags().Bool("projects-only", false, "Plan in-workspace components only")
	cmd.Flags().Bool("modules-only", false, "Plan external modules only")
	return cmd
}
