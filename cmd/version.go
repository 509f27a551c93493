package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thiagokokada/gitrepo/internal/buildinfo"
	"github.com/thiagokokada/gitrepo/internal/config"
	"github.com/thiagokokada/gitrepo/internal/git/process"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "gitrepo %s\n", buildinfo.Read())

			// setup is skipped here; a broken config falls back to git on PATH.
			binary := process.DefaultBinary
			if cfg, err := config.Load(a.configPath); err == nil {
				binary = cfg.Git.Binary
			}
			v, gitOut, err := process.GitVersion(cmd.Context(), &process.Exec{Binary: binary})
			raw := strings.TrimSpace(gitOut)
			switch {
			case err != nil:
				fmt.Fprintf(out, "  git: unavailable (%v)\n", err)
			case process.CheckGitVersion(v) != nil:
				fmt.Fprintf(out, "  git: %s (unsupported, need %s)\n", raw, process.MinGitVersion)
			default:
				fmt.Fprintf(out, "  git: %s\n", raw)
			}
			return nil
		},
	}
}
