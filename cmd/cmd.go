package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/thiagokokada/gitrepo/internal/config"
	"github.com/thiagokokada/gitrepo/internal/git"
	"github.com/thiagokokada/gitrepo/internal/render"
)

func Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return run(ctx, os.Args[1:], os.Stdout, os.Stderr)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	root := newRootCmd(&app{})
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)
	return root.ExecuteContext(ctx)
}

// app carries the global flags and the loaded configuration to every
// subcommand.
type app struct {
	dir        string
	configPath string
	output     string
	color      bool
	verbose    bool

	cfg config.Config
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:   "gitrepo",
		Short: "Inspect a git repository as structured data",
		Long: `gitrepo runs git and prints commits, trees, diffs, branches, tags and
status as plain text or YAML.

` + config.Usage(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "version" || cmd.Name() == "help" {
				return nil
			}
			return a.setup(cmd)
		},
	}
	flags := root.PersistentFlags()
	flags.StringVarP(&a.dir, "directory", "C", ".", "run as if started in this directory")
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.StringVarP(&a.output, "output", "o", config.OutputText, "output format: text or yaml")
	flags.BoolVar(&a.color, "color", false, "colorize and syntax highlight diffs")
	flags.BoolVarP(&a.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newLogCmd(a),
		newShowCmd(a),
		newTreeCmd(a),
		newDiffCmd(a),
		newStatusCmd(a),
		newBranchesCmd(a),
		newTagsCmd(a),
		newWatchCmd(a),
		newVersionCmd(a),
	)
	return root
}

// setup loads the configuration, lets explicit flags override it and
// installs the logger.
func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Read(a.configPath)
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output.Format = a.output
	}
	if flags.Changed("color") {
		cfg.Output.Color = a.color
	}
	if a.verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	level, err := cfg.LogLevel()
	if err != nil {
		return err
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	a.cfg = cfg
	return nil
}

func (a *app) open(ctx context.Context) (*git.Repository, error) {
	repo, err := git.Open(ctx, a.dir,
		git.WithGitBinary(a.cfg.Git.Binary),
		git.WithTimeout(a.cfg.Git.Timeout),
		git.WithPrimaryBranches(a.cfg.Git.PrimaryBranches...),
	)
	if err != nil {
		return nil, err
	}
	slog.Debug("opened repository", slog.String("path", repo.Path()))
	return repo, nil
}

// emit writes v as YAML or through the text renderer.
func (a *app) emit(cmd *cobra.Command, v any, text func(io.Writer) error) error {
	out := cmd.OutOrStdout()
	switch a.cfg.Output.Format {
	case config.OutputYAML:
		return render.YAML(out, v)
	case config.OutputText:
		return text(out)
	default:
		return fmt.Errorf("unknown output format %q", a.cfg.Output.Format)
	}
}

func (a *app) differ() *render.Differ {
	return render.NewDiffer(render.DiffOptions{Color: a.cfg.Output.Color, Style: a.cfg.Output.Style})
}
