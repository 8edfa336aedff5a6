package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdsplice/internal/logging"
	"github.com/yaklabco/mdsplice/pkg/config"
	"github.com/yaklabco/mdsplice/pkg/fsutil"
	"github.com/yaklabco/mdsplice/pkg/visitors"
)

// errInitDeclined is returned when the user answers no to the overwrite prompt.
var errInitDeclined = errors.New("not overwriting existing configuration")

type initFlags struct {
	force  bool
	format string
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new mdsplice configuration file",
		Long: `Create a new .mdsplice.yml configuration file in the current directory.
Every registered visitor is listed with its description, default state and
options, ready to be customized.

Examples:
  mdsplice init                      Create .mdsplice.yml
  mdsplice init --format toml        Create .mdsplice.toml instead
  mdsplice init --output custom.yml  Write to a custom file path`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "overwrite an existing configuration file")
	cmd.Flags().StringVar(&flags.format, "format", "yaml", "output format: yaml or toml")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "",
		"output file path (default: .mdsplice.yml or .mdsplice.toml)")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.FromContext(cmd.Context())

	syntax := config.Syntax(flags.format)
	if syntax != config.SyntaxYAML && syntax != config.SyntaxTOML {
		return fmt.Errorf("invalid format %q: must be yaml or toml", flags.format)
	}

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".mdsplice.yml"
		if syntax == config.SyntaxTOML {
			outputPath = ".mdsplice.toml"
		}
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	if _, err := os.Stat(absPath); err == nil && !flags.force {
		if !isTerminal(cmd.InOrStdin()) {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		ok, err := confirm(cmd.InOrStdin(), cmd.OutOrStdout(), fmt.Sprintf("%s exists. Overwrite?", outputPath))
		if err != nil {
			return err
		}
		if !ok {
			return errInitDeclined
		}
	} else if err == nil {
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	content, err := config.GenerateTemplate(config.TemplateOptions{
		Syntax:   syntax,
		Visitors: visitors.DefaultRegistry.Info(),
	})
	if err != nil {
		return fmt.Errorf("generate template: %w", err)
	}

	if err := fsutil.WriteAtomic(cmd.Context(), absPath, content, fsutil.DefaultFileMode); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'mdsplice visitors' to see which visitors are enabled")

	return nil
}
