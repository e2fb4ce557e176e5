// Package commands implements the CLI commands for spawn.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/spawn/internal/app"
	"go.trai.ch/spawn/internal/build"
)

// CLI represents the command line interface for spawn.
type CLI struct {
	app        Application
	jsonSwitch func(bool)
	rootCmd    *cobra.Command

	configPath string
	jsonOutput bool
}

// Application represents the application logic interface.
type Application interface {
	Build(ctx context.Context, opts app.BuildOptions) error
	Watch(ctx context.Context, opts app.WatchOptions) error
}

// Option configures the CLI.
type Option func(*CLI)

// WithJSONSwitch registers the function that toggles JSON log output for --json.
func WithJSONSwitch(fn func(bool)) Option {
	return func(c *CLI) {
		c.jsonSwitch = fn
	}
}

// New creates a new CLI instance with the given app.
func New(a Application, opts ...Option) *CLI {
	rootCmd := &cobra.Command{
		Use:           "spawn",
		Short:         "Bundle web workers alongside your esbuild entry points",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}
	for _, opt := range opts {
		opt(c)
	}

	rootCmd.PersistentFlags().StringVarP(&c.configPath, "config", "c", "",
		"Path to spawn.yaml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().BoolVar(&c.jsonOutput, "json", false, "Write logs as JSON")
	rootCmd.PersistentPreRun = func(*cobra.Command, []string) {
		if c.jsonSwitch != nil {
			c.jsonSwitch(c.jsonOutput)
		}
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
