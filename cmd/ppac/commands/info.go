package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/ppac/internal/app"
	"go.trai.ch/ppac/internal/ui/style"
)

func (c *CLI) newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "info <package>",
		Short: "Show what is known about a package",
		Args:  packageArg,
		RunE: func(cmd *cobra.Command, args []string) error {
			info, err := c.app.Info(cmd.Context(), args[0], options(cmd))
			if err != nil {
				return err
			}
			printInfo(cmd.OutOrStdout(), info)
			return nil
		},
	}
}

func printInfo(w io.Writer, info app.PackageInfo) {
	field := func(label, value string) {
		_, _ = fmt.Fprintf(w, "%s %s\n", style.Muted.Render(fmt.Sprintf("%-13s", label+":")), value)
	}

	_, _ = fmt.Fprintln(w, style.Name.Render(info.Name))

	if info.InCatalog {
		field("Version", "v"+info.Record.Version)
		deps := "none"
		if len(info.Record.Dependencies) > 0 {
			deps = strings.Join(info.Record.Dependencies, ", ")
		}
		field("Dependencies", deps)

		repos := make([]string, 0, len(info.OfferedBy))
		for _, repo := range info.OfferedBy {
			repos = append(repos, repo.Label())
		}
		field("Repositories", strings.Join(repos, ", "))
	} else {
		field("Version", style.Muted.Render("not in any repository"))
	}

	switch {
	case info.Installed == "":
		field("Installed", "no")
	case info.InCatalog && info.Installed != info.Record.Version:
		field("Installed", fmt.Sprintf("v%s %s (%d files)", info.Installed, style.Notice.Render("(update available)"), info.Files))
	default:
		field("Installed", fmt.Sprintf("v%s (%d files)", info.Installed, info.Files))
	}

	field("PURL", info.PURL)
}
