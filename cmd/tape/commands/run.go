package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/tape/internal/app"
)

func (c *CLI) newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Replay the batch of the tapefile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Run(cmd.Context(), c.runOptions(cmd))
		},
	}
	cmd.Flags().BoolP("dry-run", "n", false, "Print verbose invocations instead of running anything")
	addReplayFlags(cmd)
	return cmd
}

func (c *CLI) newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Replay the batch whenever the tapefile or a tracked input changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Watch(cmd.Context(), c.runOptions(cmd))
		},
	}
	addReplayFlags(cmd)
	return cmd
}

func addReplayFlags(cmd *cobra.Command) {
	cmd.Flags().BoolP("verbose", "v", false, "Print status lines and compiler invocations in full")
	cmd.Flags().Bool("no-cache", false, "Ignore recorded dependency state and always replay")
	cmd.Flags().StringP("output-mode", "o", "auto", "Status line mode: auto, overwrite, or scroll")
	cmd.Flags().Bool("ci", false, "Use scroll output mode (shorthand for --output-mode=scroll)")
}

func (c *CLI) runOptions(cmd *cobra.Command) app.RunOptions {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	verbose, _ := cmd.Flags().GetBool("verbose")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	outputMode, _ := cmd.Flags().GetString("output-mode")
	ci, _ := cmd.Flags().GetBool("ci")

	if ci {
		outputMode = "scroll"
	}

	return app.RunOptions{
		Config:     c.config,
		DryRun:     dryRun,
		Verbose:    verbose,
		NoCache:    noCache,
		OutputMode: outputMode,
	}
}
