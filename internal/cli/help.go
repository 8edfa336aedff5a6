package cli

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mdsplice/internal/ui/pretty"
)

// HelpFormatter renders cobra help and usage text with pretty styles. The
// color mode is read from the command's --color flag each time help is
// rendered, against the command's own output writer.
type HelpFormatter struct{}

// NewHelpFormatter creates a help formatter.
func NewHelpFormatter() *HelpFormatter {
	return &HelpFormatter{}
}

func (h *HelpFormatter) stylesFor(cmd *cobra.Command) *pretty.Styles {
	return pretty.NewStyles(helpColorEnabled(cmd))
}

func helpColorEnabled(cmd *cobra.Command) bool {
	return pretty.IsColorEnabled(colorMode(cmd), cmd.OutOrStdout())
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ subcommand (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
{{- end}}

{{- if .HasAvailableLocalFlags}}

{{ heading "Flags:" }}
{{ flags .LocalFlags }}
{{- end}}

{{- if .HasAvailableInheritedFlags}}

{{ heading "Global Flags:" }}
{{ flags .InheritedFlags }}
{{- end}}

{{- if .HasAvailableSubCommands}}

Use "{{ command (print .CommandPath " [command] --help") }}" for more information about a command.
{{- end}}
`

const helpTemplate = `{{with (or .Long .Short)}}{{ trimTrailingWhitespaces . }}

{{end}}` + usageTemplate

func funcs(styles *pretty.Styles) template.FuncMap {
	return template.FuncMap{
		"heading":    styles.Warning.Render,
		"command":    styles.Bold.Render,
		"subcommand": styles.Enabled.Render,
		"dim":        styles.Dim.Render,
		"flags": func(set interface{ FlagUsages() string }) string {
			return flagUsages(styles, set)
		},
		"rpad":                    rpad,
		"trimTrailingWhitespaces": trimTrailingWhitespaces,
	}
}

// flagUsages styles the flag names in a pflag usage block, leaving the
// alignment pflag computed intact.
func flagUsages(styles *pretty.Styles, set interface{ FlagUsages() string }) string {
	lines := strings.Split(strings.TrimSuffix(set.FlagUsages(), "\n"), "\n")
	for i, line := range lines {
		trimmed := strings.TrimLeft(line, " ")
		if !strings.HasPrefix(trimmed, "-") {
			continue
		}
		indent := line[:len(line)-len(trimmed)]
		name, rest, _ := strings.Cut(trimmed, " ")
		if strings.HasSuffix(name, ",") {
			long, tail, _ := strings.Cut(rest, " ")
			lines[i] = indent + styles.Info.Render(name) + " " + styles.Info.Render(long) + " " + tail
			continue
		}
		lines[i] = indent + styles.Info.Render(name) + " " + rest
	}
	return strings.Join(lines, "\n")
}

// ApplyToCommand installs styled help on cmd and, through inheritance, its
// subcommands.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	render := func(name, text string, command *cobra.Command) error {
		tmpl, err := template.New(name).Funcs(funcs(h.stylesFor(command))).Parse(text)
		if err != nil {
			return fmt.Errorf("parse %s template: %w", name, err)
		}
		return tmpl.Execute(command.OutOrStdout(), command)
	}

	cmd.SetUsageFunc(func(command *cobra.Command) error {
		return render("usage", usageTemplate, command)
	})
	cmd.SetHelpFunc(func(command *cobra.Command, _ []string) {
		if err := render("help", helpTemplate, command); err != nil {
			command.PrintErrln(err)
		}
	})
}

func rpad(str string, padding int) string {
	if len(str) >= padding {
		return str
	}
	return str + strings.Repeat(" ", padding-len(str))
}

func trimTrailingWhitespaces(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
