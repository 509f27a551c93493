package cmd

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thiagokokada/gitrepo/internal/git"
	"github.com/thiagokokada/gitrepo/internal/git/object"
	"github.com/thiagokokada/gitrepo/internal/render"
)

func newLogCmd(a *app) *cobra.Command {
	var opts git.LogOptions
	cmd := &cobra.Command{
		Use:   "log [<ref> | <start>..<end>]",
		Short: "List commits, newest first",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := a.open(ctx)
			if err != nil {
				return err
			}
			var rev string
			if len(args) == 1 {
				rev = args[0]
			}
			commits, err := func() ([]object.Commit, error) {
				if start, end, ok := strings.Cut(rev, ".."); ok {
					return repo.LogRange(ctx, start, end, opts)
				}
				opts.Ref = rev
				return repo.Log(ctx, opts)
			}()
			if err != nil {
				return err
			}
			return a.emit(cmd, commits, func(w io.Writer) error { return render.Log(w, commits) })
		},
	}
	flags := cmd.Flags()
	flags.IntVarP(&opts.Limit, "max-count", "n", 0, "limit the number of commits")
	flags.IntVar(&opts.Offset, "skip", 0, "skip this many commits first")
	flags.BoolVar(&opts.FirstParent, "first-parent", false, "follow only the first parent of merges")
	flags.StringVar(&opts.Path, "path", "", "only commits touching this path")
	return cmd
}

func newShowCmd(a *app) *cobra.Command {
	var patch bool
	cmd := &cobra.Command{
		Use:   "show [<ref>]",
		Short: "Show one commit",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := a.open(ctx)
			if err != nil {
				return err
			}
			var ref string
			if len(args) == 1 {
				ref = args[0]
			}
			commit, err := repo.GetCommit(ctx, ref)
			if err != nil {
				return err
			}
			if !patch {
				return a.emit(cmd, commit, func(w io.Writer) error { return render.Commit(w, commit) })
			}
			diff, err := repo.DiffCommits(ctx, nil, commit, "")
			if err != nil {
				return err
			}
			shown := render.CommitPatch{Commit: commit, Diff: diff}
			return a.emit(cmd, shown, func(w io.Writer) error {
				if err := render.Commit(w, commit); err != nil {
					return err
				}
				if len(diff.Files) == 0 {
					return nil
				}
				if _, err := io.WriteString(w, "\n"); err != nil {
					return err
				}
				return a.differ().Render(w, diff)
			})
		},
	}
	cmd.Flags().BoolVarP(&patch, "patch", "p", false, "also print the diff against the first parent")
	return cmd
}
