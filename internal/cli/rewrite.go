package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdsplice/internal/logging"
	"github.com/yaklabco/mdsplice/pkg/config"
	"github.com/yaklabco/mdsplice/pkg/reporter"
	"github.com/yaklabco/mdsplice/pkg/runner"
	"github.com/yaklabco/mdsplice/pkg/visitors"
)

type rewriteFlags struct {
	format    string
	flavor    string
	noContext bool
	compact   bool
}

func newRewriteCommand() *cobra.Command {
	var cfg config.Config
	flags := &rewriteFlags{}

	cmd := &cobra.Command{
		Use:   "rewrite [paths...]",
		Short: "Run the visitor pipeline over Markdown files",
		Long:  rewriteLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRewrite(cmd, args, &cfg, flags)
		},
	}

	addRewriteFlags(cmd, &cfg, flags)

	return cmd
}

const rewriteLongDescription = `Run the enabled visitors over Markdown files and report the result.

By default, processes all .md and .markdown files in the current directory
and subdirectories without writing anything. Specify paths to process
specific files or directories.

Examples:
  mdsplice rewrite                          # Report what would change
  mdsplice rewrite --format diff docs/      # Show changes as a unified diff
  mdsplice rewrite --write                  # Rewrite files in place
  mdsplice rewrite --out-dir build --source-maps
                                            # Mirror into build/ with .map files
  mdsplice rewrite --enable banner README.md`

func runRewrite(cmd *cobra.Command, args []string, cfg *config.Config, flags *rewriteFlags) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	// Only flags that were given override lower layers.
	if cmd.Flags().Changed("format") {
		cfg.Format = config.OutputFormat(flags.format)
	}
	if cmd.Flags().Changed("flavor") {
		cfg.Flavor = config.Flavor(flags.flavor)
	}

	finalCfg, workDir, err := loadConfig(cmd, cfg)
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		logging.FieldFlavor, finalCfg.Flavor,
		logging.FieldWrite, finalCfg.Write,
		logging.FieldOutDir, finalCfg.Output.Dir,
		logging.FieldJobs, finalCfg.Jobs,
	)

	runOpts := runner.Options{
		Paths:      args,
		WorkingDir: workDir,
		Config:     finalCfg,
		Registry:   visitors.DefaultRegistry,
	}

	logger.Debug("starting rewrite",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := runner.Run(ctx, runOpts)
	if errors.Is(err, runner.ErrNoFiles) {
		logger.Warn("no Markdown files found", logging.FieldPaths, args)
		return nil
	}
	if err != nil {
		return errors.Join(errors.New("rewrite failed"), err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      reporter.Format(finalCfg.Format),
		Color:       colorMode(cmd),
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	if ExitCodeFromResult(result) != ExitSuccess {
		return ErrDiagnosticsFound
	}
	return nil
}

func addRewriteFlags(cmd *cobra.Command, cfg *config.Config, flags *rewriteFlags) {
	cmd.Flags().BoolVarP(&cfg.Write, "write", "w", false, "write rewritten files in place")
	cmd.Flags().StringVarP(&cfg.Output.Dir, "out-dir", "o", "",
		"mirror rewritten files into this directory instead of writing in place")
	cmd.Flags().BoolVar(&cfg.Output.SourceMaps, "source-maps", false, "write <output>.map next to each written file")
	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json, diff")
	cmd.Flags().StringSliceVar(&cfg.EnableVisitors, "enable", nil, "visitor names to enable")
	cmd.Flags().StringSliceVar(&cfg.DisableVisitors, "disable", nil, "visitor names to disable")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringVar(&flags.flavor, "flavor", "commonmark", "Markdown flavor: commonmark, gfm")
	cmd.Flags().StringSliceVar(&cfg.Ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "do not keep a backup when writing in place")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source line context in output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "print JSON without indentation")
}
