package cmd

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/thiagokokada/gitrepo/internal/git"
	"github.com/thiagokokada/gitrepo/internal/render"
	"github.com/thiagokokada/gitrepo/internal/watch"
)

func newWatchCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Print the head commit whenever the repository changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			repo, err := a.open(ctx)
			if err != nil {
				return err
			}
			report := func() {
				line, err := headLine(ctx, repo)
				if err != nil {
					slog.Error("read head", slog.Any("error", err))
					return
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			report()
			w := watch.New(repo.Path(), watch.Options{Delay: a.cfg.Watch.Delay})
			return w.Run(ctx, report)
		},
	}
}

func headLine(ctx context.Context, repo *git.Repository) (string, error) {
	commit, err := repo.GetCommit(ctx, "")
	if err != nil {
		return "", err
	}
	name := "(detached)"
	if b, err := repo.CurrentBranch(ctx); err == nil {
		name = b.Name
	}
	return name + "  " + render.Summary(commit), nil
}
