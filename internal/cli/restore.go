package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdsplice/internal/logging"
	"github.com/yaklabco/mdsplice/pkg/config"
	"github.com/yaklabco/mdsplice/pkg/runner"
)

func newRestoreCommand() *cobra.Command {
	var ignore []string

	cmd := &cobra.Command{
		Use:   "restore [paths...]",
		Short: "Restore files from the backups of an in-place rewrite",
		Long: `Put back the sidecar backups written by "rewrite --write" and remove
them. Files without a backup are left alone.`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := logging.FromContext(ctx)

			cfg, workDir, err := loadConfig(cmd, &config.Config{Ignore: ignore})
			if err != nil {
				return err
			}

			restored, err := runner.Restore(ctx, runner.Options{
				Paths:      args,
				WorkingDir: workDir,
				Config:     cfg,
			})
			if errors.Is(err, runner.ErrNoFiles) {
				logger.Warn("no Markdown files found", logging.FieldPaths, args)
				return nil
			}
			for _, path := range restored {
				if _, werr := fmt.Fprintln(cmd.OutOrStdout(), "restored", path); werr != nil {
					return werr
				}
			}
			if err != nil {
				return fmt.Errorf("restore: %w", err)
			}

			logger.Info("restore finished", logging.FieldFiles, len(restored))
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&ignore, "ignore", nil, "glob patterns to ignore")

	return cmd
}
