package cmd

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/thiagokokada/gitrepo/internal/git"
	"github.com/thiagokokada/gitrepo/internal/git/object"
	"github.com/thiagokokada/gitrepo/internal/render"
)

func newTreeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tree [<ref> [<path>]]",
		Short: "List a directory or describe a file at a reference",
		Args:  cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := a.open(ctx)
			if err != nil {
				return err
			}
			var ref, path string
			if len(args) > 0 {
				ref = args[0]
			}
			if len(args) > 1 {
				path = args[1]
			}
			tree, err := repo.Tree(ctx, ref, path)
			if err != nil {
				return err
			}
			return a.emit(cmd, tree, func(w io.Writer) error { return render.Tree(w, tree) })
		},
	}
}

func newDiffCmd(a *app) *cobra.Command {
	var (
		path     string
		worktree bool
		staged   bool
	)
	cmd := &cobra.Command{
		Use:   "diff [[<from>] <to>]",
		Short: "Diff two commits, a commit against its parent, or the working tree",
		Long: `With no arguments diff HEAD against its first parent. One argument diffs
that commit against its first parent; two diff <from> against <to>.
--worktree diffs unstaged changes and --staged the index against HEAD.`,
		Args: cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			repo, err := a.open(ctx)
			if err != nil {
				return err
			}
			var diff object.Diff
			switch {
			case worktree || staged:
				diff, err = repo.WorktreeDiff(ctx, staged, path)
			case len(args) == 2:
				diff, err = repo.Diff(ctx, git.DiffOptions{From: args[0], To: args[1], Path: path})
			case len(args) == 1:
				diff, err = repo.Diff(ctx, git.DiffOptions{To: args[0], Path: path})
			default:
				diff, err = repo.Diff(ctx, git.DiffOptions{Path: path})
			}
			if err != nil {
				return err
			}
			return a.emit(cmd, diff, func(w io.Writer) error { return a.differ().Render(w, diff) })
		},
	}
	flags := cmd.Flags()
	flags.StringVar(&path, "path", "", "restrict the diff to this file or directory")
	flags.BoolVar(&worktree, "worktree", false, "diff the working tree against the index")
	flags.BoolVar(&staged, "staged", false, "diff the index against HEAD")
	cmd.MarkFlagsMutuallyExclusive("worktree", "staged")
	return cmd
}

func newStatusCmd(a *app) *cobra.Command {
	var ignored bool
	cmd := &cobra.Command{
		Use:   "status",
		Short: "List changed, untracked and optionally ignored paths",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			repo, err := a.open(ctx)
			if err != nil {
				return err
			}
			entries, err := repo.Status(ctx, git.StatusOptions{Ignored: ignored})
			if err != nil {
				return err
			}
			return a.emit(cmd, entries, func(w io.Writer) error { return render.Status(w, entries) })
		},
	}
	cmd.Flags().BoolVar(&ignored, "ignored", false, "also list ignored files")
	return cmd
}

func newBranchesCmd(a *app) *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "branches",
		Short: "List branches, primary branches first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			repo, err := a.open(ctx)
			if err != nil {
				return err
			}
			branches, err := repo.Branches(ctx, git.BranchOptions{IncludeRemote: all})
			if err != nil {
				return err
			}
			return a.emit(cmd, branches, func(w io.Writer) error { return render.Branches(w, branches) })
		},
	}
	cmd.Flags().BoolVarP(&all, "all", "a", false, "include remote-tracking branches")
	return cmd
}

func newTagsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List tags with the commits they point at",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			repo, err := a.open(ctx)
			if err != nil {
				return err
			}
			tags, err := repo.Tags(ctx)
			if err != nil {
				return err
			}
			return a.emit(cmd, tags, func(w io.Writer) error { return render.Tags(w, tags) })
		},
	}
}
