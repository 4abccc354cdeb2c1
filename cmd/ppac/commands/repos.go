package commands

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/ppac/internal/app"
	"go.trai.ch/ppac/internal/ui/style"
)

func (c *CLI) newReposCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repos",
		Short: "List configured repositories and whether their catalogs loaded",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			statuses, err := c.app.Repositories(cmd.Context(), options(cmd))
			if err != nil {
				return err
			}
			printRepositories(cmd.OutOrStdout(), statuses)
			return nil
		},
	}
}

func printRepositories(w io.Writer, statuses []app.RepositoryStatus) {
	if len(statuses) == 0 {
		_, _ = fmt.Fprintln(w, style.Muted.Render("No repositories configured."))
		return
	}

	for _, s := range statuses {
		repo := s.Repository
		if s.Err != nil {
			_, _ = fmt.Fprintf(w, "%s %s %s\n", style.Failure.Render(style.Cross), style.Name.Render(repo.Label()),
				style.Failure.Render(s.Err.Error()))
		} else {
			_, _ = fmt.Fprintf(w, "%s %s (%d packages)\n", style.Success.Render(style.Check), style.Name.Render(repo.Label()), s.Packages)
		}
		_, _ = fmt.Fprintf(w, "  %s %s\n", style.Muted.Render("catalog:"), repo.CatalogURL)
		_, _ = fmt.Fprintf(w, "  %s %s\n", style.Muted.Render("packages:"), repo.ArtifactURL)
	}
}
