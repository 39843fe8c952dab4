// Package cli provides the Cobra command structure for gophpfix.
package cli

import (
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/yaklabco/gophpfix/internal/ui/pretty"
)

// helpStyles holds the Lipgloss styles used when rendering command help.
type helpStyles struct {
	Heading lipgloss.Style // section headers (Usage, Flags, ...)
	Command lipgloss.Style // command paths and usage lines
	Name    lipgloss.Style // subcommand names
	Flag    lipgloss.Style // flag tokens (-f, --flag)
	Dim     lipgloss.Style // secondary text: aliases, examples, types
}

func newHelpStyles(colorEnabled bool) helpStyles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return helpStyles{Heading: plain, Command: plain, Name: plain, Flag: plain, Dim: plain}
	}
	return helpStyles{
		Heading: lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true),
		Command: lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true),
		Name:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		Flag:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
		Dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

// HelpFormatter renders styled help and usage output for Cobra commands.
type HelpFormatter struct {
	styles helpStyles
}

// NewHelpFormatter creates a help formatter honoring the color mode for the
// given output writer.
func NewHelpFormatter(colorMode string, writer io.Writer) *HelpFormatter {
	return &HelpFormatter{styles: newHelpStyles(pretty.IsColorEnabled(colorMode, writer))}
}

const usageTemplate = `{{ heading "Usage:" }}
  {{if .Runnable}}{{ command .UseLine }}{{end}}
  {{if .HasAvailableSubCommands}}{{ command .CommandPath }} [command]{{end}}

{{- if gt (len .Aliases) 0}}

{{ heading "Aliases:" }}
  {{ dim (join .Aliases ", ") }}
{{- end}}

{{- if .HasExample}}

{{ heading "Examples:" }}
{{ dim .Example }}
{{- end}}

{{- if .HasAvailableSubCommands}}

{{ heading "Available Commands:" }}{{range .Commands}}{{if (or .IsAvailableCommand (eq .Name "help"))}}
  {{ name (rpad .Name .NamePadding) }} {{ .Short }}{{end}}{{end}}
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

const helpTemplate = `{{if or .Runnable .HasSubCommands}}{{ command .CommandPath }}{{if .Version}} {{ dim .Version }}{{end}}

{{end}}{{with (or .Long .Short)}}{{ trim . }}

{{end}}` + usageTemplate

// funcs returns the template function map backing both templates.
func (h *HelpFormatter) funcs() template.FuncMap {
	return template.FuncMap{
		"heading": h.styles.Heading.Render,
		"command": h.styles.Command.Render,
		"name":    h.styles.Name.Render,
		"dim":     h.styles.Dim.Render,
		"flags":   h.renderFlags,
		"join":    strings.Join,
		"rpad":    rpad,
		"trim":    trimTrailingSpace,
	}
}

// renderFlags colorizes pflag's FlagUsages output line by line.
func (h *HelpFormatter) renderFlags(flags interface{ FlagUsages() string }) string {
	usages := strings.TrimSuffix(flags.FlagUsages(), "\n")
	if usages == "" {
		return ""
	}

	lines := strings.Split(usages, "\n")
	for i, line := range lines {
		lines[i] = h.renderFlagLine(line)
	}
	return strings.Join(lines, "\n")
}

// renderFlagLine styles a single "  -f, --flag type   description" line.
// The flag column ends at the first run of two or more spaces after it.
func (h *HelpFormatter) renderFlagLine(line string) string {
	trimmed := strings.TrimLeft(line, " ")
	indent := line[:len(line)-len(trimmed)]

	flagCol, desc, ok := splitFlagColumn(trimmed)
	if !ok {
		return line
	}

	var styled []string
	for _, token := range strings.Fields(flagCol) {
		bare := strings.TrimSuffix(token, ",")
		if strings.HasPrefix(bare, "-") {
			token = h.styles.Flag.Render(bare) + strings.TrimPrefix(token, bare)
		} else {
			token = h.styles.Dim.Render(token)
		}
		styled = append(styled, token)
	}

	return indent + strings.Join(styled, " ") + "   " + desc
}

// splitFlagColumn splits a trimmed flag line at the first gap of two or more
// spaces, returning the flag column and the description.
func splitFlagColumn(line string) (flagCol, desc string, ok bool) {
	gap := -1
	for i := 0; i+1 < len(line); i++ {
		if line[i] == ' ' && line[i+1] == ' ' {
			gap = i
			break
		}
	}
	if gap < 0 {
		return "", "", false
	}
	return strings.TrimRight(line[:gap], " "), strings.TrimLeft(line[gap:], " "), true
}

// ApplyToCommand installs the styled help and usage rendering on the command
// tree rooted at cmd.
func (h *HelpFormatter) ApplyToCommand(cmd *cobra.Command) {
	funcs := h.funcs()

	cmd.SetUsageFunc(func(c *cobra.Command) error {
		tmpl, err := template.New("usage").Funcs(funcs).Parse(usageTemplate)
		if err != nil {
			return fmt.Errorf("parse usage template: %w", err)
		}
		return tmpl.Execute(c.OutOrStdout(), c)
	})

	cmd.SetHelpFunc(func(c *cobra.Command, _ []string) {
		tmpl, err := template.New("help").Funcs(funcs).Parse(helpTemplate)
		if err != nil {
			c.PrintErrln(err)
			return
		}
		if err := tmpl.Execute(c.OutOrStdout(), c); err != nil {
			c.PrintErrln(err)
		}
	})
}

// rpad pads s with spaces on the right to the given width.
func rpad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// trimTrailingSpace strips trailing spaces and tabs from every line.
func trimTrailingSpace(s string) string {
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}
