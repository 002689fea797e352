package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tape/internal/app"
)

func (c *CLI) newPlanCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Print the recorded commands as shell lines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Plan(cmd.Context(), app.PlanOptions{Config: c.config})
		},
	}
}
