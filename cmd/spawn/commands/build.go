package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/spawn/internal/app"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "build",
		Short: "Build the project once and write the outputs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Build(cmd.Context(), app.BuildOptions{ConfigPath: c.configPath})
		},
	}
}

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Build the project and rebuild on every change",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Watch(cmd.Context(), app.WatchOptions{ConfigPath: c.configPath})
		},
	}
}
