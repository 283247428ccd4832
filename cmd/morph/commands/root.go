// Package commands implements the CLI commands for morph.
package commands

import (
	"context"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/morph/internal/app"
	"go.trai.ch/morph/internal/build"
)

// Runner is the application surface the commands drive.
type Runner interface {
	Run(ctx context.Context, targets []string, opts app.RunOptions) error
	Plan(ctx context.Context, targets []string, opts app.RunOptions) error
}

// CLI represents the command line interface for morph.
type CLI struct {
	app     Runner
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a Runner) *CLI {
	rootCmd := &cobra.Command{
		Use:           "morph",
		Short:         "Resolve artifacts through cached transformation chains",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().StringP("config", "c", "", "Pipeline file (default: morph.yaml searched upwards)")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write logs as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.AddCommand(c.newRunCmd())
	rootCmd.AddCommand(c.newPlanCmd())
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

// SetOutput sets the writer command output is printed to. Used for testing.
func (c *CLI) SetOutput(w io.Writer) {
	c.rootCmd.SetOut(w)
}

// runOptions reads the flags shared by run and plan.
func runOptions(cmd *cobra.Command) app.RunOptions {
	configPath, _ := cmd.Flags().GetString("config")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	return app.RunOptions{
		ConfigPath: configPath,
		JSONLogs:   jsonLogs,
	}
}
