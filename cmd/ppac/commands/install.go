package commands

import (
	"github.com/spf13/cobra"
)

func (c *CLI) newInstallCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "install <package>",
		Short: "Install a package and its dependencies",
		Args:  packageArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := options(cmd)
			opts.Repository, _ = cmd.Flags().GetString("repo")
			return c.app.Install(cmd.Context(), args[0], opts)
		},
	}
	cmd.Flags().StringP("repo", "r", "", "Download the package from this repository")
	return cmd
}

func (c *CLI) newUninstallCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "uninstall <package>",
		Short: "Remove an installed package",
		Args:  packageArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.Uninstall(cmd.Context(), args[0], options(cmd))
		},
	}
}

func (c *CLI) newUpdateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "update",
		Short: "Update every installed package with a newer catalog version",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.Update(cmd.Context(), options(cmd))
		},
	}
}
