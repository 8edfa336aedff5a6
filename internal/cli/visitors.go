package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdsplice/internal/ui/pretty"
	"github.com/yaklabco/mdsplice/pkg/config"
	"github.com/yaklabco/mdsplice/pkg/visitors"
)

const formatJSON = "json"

// visitorInfo represents a visitor in JSON output.
type visitorInfo struct {
	Name           string         `json:"name"`
	Description    string         `json:"description"`
	DefaultEnabled bool           `json:"defaultEnabled"`
	Enabled        bool           `json:"enabled"`
	Options        map[string]any `json:"options,omitempty"`
}

func newVisitorsCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "visitors",
		Short: "List available visitors",
		Long: `List the registered visitors in pipeline order, with whether each one
runs under the current configuration.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, _, err := loadConfig(cmd, &config.Config{})
			if err != nil {
				return err
			}

			defs := visitors.DefaultRegistry.Definitions()
			out := cmd.OutOrStdout()

			if format == formatJSON {
				return writeVisitorsJSON(out, defs, cfg)
			}

			rows := make([]pretty.VisitorRow, 0, len(defs))
			for _, def := range defs {
				rows = append(rows, pretty.VisitorRow{
					Name:        def.Name,
					Enabled:     cfg.VisitorEnabled(def.Name, def.DefaultEnabled),
					Description: def.Description,
				})
			}

			styles := pretty.NewStyles(pretty.IsColorEnabled(colorMode(cmd), out))
			_, err = io.WriteString(out, styles.FormatVisitorTable(rows, terminalWidth(out)))
			return err
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "output format: text, json")

	return cmd
}

func writeVisitorsJSON(out io.Writer, defs []visitors.Definition, cfg *config.Config) error {
	infos := make([]visitorInfo, 0, len(defs))
	for _, def := range defs {
		infos = append(infos, visitorInfo{
			Name:           def.Name,
			Description:    def.Description,
			DefaultEnabled: def.DefaultEnabled,
			Enabled:        cfg.VisitorEnabled(def.Name, def.DefaultEnabled),
			Options:        def.Defaults,
		})
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding visitors: %w", err)
	}
	return nil
}
