// Package commands implements the CLI commands for incr.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/incr/internal/adapters/logger"
	"go.trai.ch/incr/internal/app"
	"go.trai.ch/incr/internal/build"
	"go.trai.ch/incr/internal/core/domain"
)

// CLI represents the command line interface for incr.
type CLI struct {
	app     *app.App
	logger  *logger.Logger
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App, log *logger.Logger) *CLI {
	rootCmd := &cobra.Command{
		Use:           "incr",
		Short:         "An incremental module dependency bundler",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.String(),
	}

	// Declared first so -v stays with --verbose and --version gets no shorthand.
	rootCmd.PersistentFlags().StringP("config", "c", ".", "Path to incr.yaml or a directory containing it")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Log cache decisions")

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	c := &CLI{
		app:     a,
		logger:  log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			c.logger.SetLevel(domain.LogLevelDebug)
		}
	}

	rootCmd.AddCommand(c.newBuildCmd())
	rootCmd.AddCommand(c.newWatchCmd())
	rootCmd.AddCommand(c.newStatsCmd())
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

// SetOutput redirects command output. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
	c.rootCmd.SetErr(w)
}

func buildOptions(cmd *cobra.Command, args []string) app.BuildOptions {
	configPath, _ := cmd.Flags().GetString("config")
	return app.BuildOptions{
		ConfigPath: configPath,
		Bundles:    args,
	}
}
