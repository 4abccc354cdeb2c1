// Package commands implements the CLI commands for the ppac package manager.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/ppac/internal/app"
	"go.trai.ch/ppac/internal/build"
	"go.trai.ch/zerr"
)

// ErrUsage is returned when the command line does not match any command.
var ErrUsage = zerr.New("invalid usage")

// CLI represents the command line interface for ppac.
type CLI struct {
	app     *app.App
	rootCmd *cobra.Command
}

// New creates a new CLI instance with the given app.
func New(a *app.App) *CLI {
	useColorProfile()

	rootCmd := &cobra.Command{
		Use:           "ppac",
		Short:         "A package manager for prebuilt applications",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
		Args:          noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return zerr.Wrap(ErrUsage, "no command given")
		},
	}

	// Declared before cobra's default so that -v stays free for --verbose.
	rootCmd.Flags().Bool("version", false, "Print the application version")

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("home", "", "ppac home directory (default $PPAC_HOME or ~/.ppac)")
	rootCmd.PersistentFlags().BoolP("yes", "y", false, "Answer every question with its default")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Show debug output")
	rootCmd.PersistentFlags().Bool("json-logs", false, "Write log records as JSON")

	c := &CLI{
		app:     a,
		rootCmd: rootCmd,
	}

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		_ = cmd.Usage()
		return zerr.Wrap(ErrUsage, err.Error())
	})

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		c.app.SetVerbose(verbose)
		jsonLogs, _ := cmd.Flags().GetBool("json-logs")
		c.app.SetJSONLogs(jsonLogs)
	}

	rootCmd.AddCommand(c.newInstallCmd())
	rootCmd.AddCommand(c.newUninstallCmd())
	rootCmd.AddCommand(c.newUpdateCmd())
	rootCmd.AddCommand(c.newListCmd())
	rootCmd.AddCommand(c.newInfoCmd())
	rootCmd.AddCommand(c.newReposCmd())
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

// SetOutput redirects command output and usage text. Used for testing.
func (c *CLI) SetOutput(out, errOut io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(errOut)
}

// options collects the persistent flags shared by every command.
func options(cmd *cobra.Command) app.Options {
	home, _ := cmd.Flags().GetString("home")
	yes, _ := cmd.Flags().GetBool("yes")
	return app.Options{Home: home, AssumeYes: yes}
}

// packageArg accepts exactly one package name and prints the usage otherwise.
func packageArg(cmd *cobra.Command, args []string) error {
	if len(args) == 1 && args[0] != "" {
		return nil
	}
	_ = cmd.Usage()
	err := zerr.Wrap(ErrUsage, fmt.Sprintf("%s takes exactly one package name", cmd.Name()))
	return zerr.With(err, "args", len(args))
}

// noArgs rejects positional arguments, which includes unknown commands, and prints the usage.
func noArgs(cmd *cobra.Command, args []string) error {
	if len(args) == 0 {
		return nil
	}
	_ = cmd.Usage()
	err := zerr.Wrap(ErrUsage, fmt.Sprintf("unknown command %q for %q", args[0], cmd.CommandPath()))
	return zerr.With(err, "args", len(args))
}
