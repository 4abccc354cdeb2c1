package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
	"go.trai.ch/ppac/internal/app"
	"go.trai.ch/ppac/internal/ui/style"
)

func (c *CLI) newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List installed packages",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := c.app.List(cmd.Context(), options(cmd))
			if err != nil {
				return err
			}
			printList(cmd.OutOrStdout(), statuses)
			return nil
		},
	}
}

func printList(w io.Writer, statuses []app.PackageStatus) {
	if len(statuses) == 0 {
		_, _ = fmt.Fprintln(w, style.Muted.Render("No packages installed."))
		return
	}

	width := 0
	for _, s := range statuses {
		width = max(width, len(s.Name))
	}

	for _, s := range statuses {
		line := fmt.Sprintf("%s%s v%s", style.Name.Render(s.Name), strings.Repeat(" ", width-len(s.Name)), s.Installed)
		switch {
		case s.UpdateAvailable():
			line += " " + style.Notice.Render(fmt.Sprintf("(update available: v%s)", s.Available))
		case s.Available == "":
			line += " " + style.Muted.Render("(not in any repository)")
		}
		_, _ = fmt.Fprintln(w, line)
		_, _ = fmt.Fprintln(w, "  "+style.Muted.Render(s.PURL))
	}
}
