package changelog

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// SectionStyle defines the color and icon for a changelog section.
type SectionStyle struct {
	Color *color.Color
	Icon  string
}

// sectionStyles maps commit types to their terminal styling.
var sectionStyles = map[string]SectionStyle{
	"feat":     {Color: color.New(color.FgGreen), Icon: "✓"},
	"fix":      {Color: color.New(color.FgYellow), Icon: "⚡"},
	"perf":     {Color: color.New(color.FgMagenta), Icon: "»"},
	"refactor": {Color: color.New(color.FgBlue), Icon: "~"},
	"revert":   {Color: color.New(color.FgRed), Icon: "↺"},
}

var (
	defaultStyle  = SectionStyle{Color: color.New(color.FgCyan), Icon: "•"}
	breakingStyle = SectionStyle{Color: color.New(color.FgRed, color.Bold), Icon: "⚠"}
)

// styleFor returns the styling of a commit type.
func styleFor(typeName string) SectionStyle {
	if s, ok := sectionStyles[typeName]; ok {
		return s
	}
	return defaultStyle
}

// FormatOptions controls the terminal output formatting.
type FormatOptions struct {
	Plain    bool // Disable colors and icons
	MaxWidth int  // Maximum line width (0 = auto-detect)
}

// FormatTerminal writes the versions of c to the writer with terminal styling.
func FormatTerminal(c *Changelog, w io.Writer, opts FormatOptions) error {
	width := resolveWidth(opts.MaxWidth)

	for i := range c.Versions {
		if i > 0 {
			fmt.Fprintln(w)
		}
		if err := formatVersion(&c.Versions[i], w, opts, width); err != nil {
			return fmt.Errorf("formatting version %s: %w", c.Versions[i].Version, err)
		}
	}

	return nil
}

// FormatVersion writes a single version to the writer.
func FormatVersion(v *Version, w io.Writer, opts FormatOptions) error {
	return formatVersion(v, w, opts, resolveWidth(opts.MaxWidth))
}

func formatVersion(v *Version, w io.Writer, opts FormatOptions, width int) error {
	if err := writeVersionHeader(v, w, opts); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for _, s := range v.Sections {
		if err := writeSection(&s, w, opts, width); err != nil {
			return err
		}
	}

	if len(v.Notes) > 0 {
		if err := writeSectionHeader("Breaking Changes", breakingStyle, w, opts); err != nil {
			return err
		}
		for _, note := range v.Notes {
			if err := writeLine(note, breakingStyle, w, opts, width); err != nil {
				return err
			}
		}
	}

	return nil
}

// writeVersionHeader writes the version header line.
func writeVersionHeader(v *Version, w io.Writer, opts FormatOptions) error {
	var header string
	if v.IsUnreleased() {
		header = "Unreleased"
	} else if v.Date != "" {
		header = fmt.Sprintf("%s (%s)", v.Version, v.Date)
	} else {
		header = v.Version
	}

	if opts.Plain {
		_, err := fmt.Fprintf(w, "## %s\n", header)
		return err
	}

	bold := color.New(color.Bold).SprintFunc()
	_, err := fmt.Fprintf(w, "## %s\n", bold(header))
	return err
}

// writeSection writes a single section with its entries.
func writeSection(s *Section, w io.Writer, opts FormatOptions, width int) error {
	style := styleFor(s.Type)

	if err := writeSectionHeader(s.Title, style, w, opts); err != nil {
		return err
	}

	for _, e := range s.Entries {
		if err := writeLine(formatPlainEntry(e), style, w, opts, width); err != nil {
			return err
		}
	}

	return nil
}

// formatPlainEntry renders "scope: subject (hash)" without markup.
func formatPlainEntry(e Entry) string {
	text := e.Subject
	if e.Scope != "" {
		text = e.Scope + ": " + text
	}
	if e.Breaking {
		text = "[breaking] " + text
	}
	if e.Hash != "" {
		text += " (" + e.Hash + ")"
	}
	if len(e.Closes) > 0 {
		text += ", closes " + formatIssues(e.Closes, "")
	}
	return text
}

// writeSectionHeader writes the section header line.
func writeSectionHeader(title string, style SectionStyle, w io.Writer, opts FormatOptions) error {
	if opts.Plain {
		_, err := fmt.Fprintf(w, "\n### %s\n", title)
		return err
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "\n%s %s\n", colored(style.Icon), colored(title))
	return err
}

// writeLine writes a single list item with optional wrapping.
func writeLine(text string, style SectionStyle, w io.Writer, opts FormatOptions, width int) error {
	prefix := "  - "

	if opts.Plain {
		_, err := fmt.Fprintf(w, "%s%s\n", prefix, strings.ReplaceAll(text, "\n", "\n    "))
		return err
	}

	var lines []string
	for _, para := range strings.Split(text, "\n") {
		lines = append(lines, wrapText(para, width-len(prefix), "    "))
	}

	colored := style.Color.SprintFunc()
	_, err := fmt.Fprintf(w, "%s%s\n", prefix, colored(strings.Join(lines, "\n    ")))
	return err
}

// resolveWidth determines the terminal width to use.
func resolveWidth(maxWidth int) int {
	if maxWidth > 0 {
		return maxWidth
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}

// wrapText wraps text to fit within maxWidth, using indent for continuation lines.
func wrapText(text string, maxWidth int, indent string) string {
	if maxWidth <= 0 || len(text) <= maxWidth {
		return text
	}

	var lines []string
	remaining := text

	for len(remaining) > maxWidth {
		// Find the last space within maxWidth
		breakPoint := maxWidth
		for i := maxWidth - 1; i > 0; i-- {
			if remaining[i] == ' ' {
				breakPoint = i
				break
			}
		}

		lines = append(lines, remaining[:breakPoint])
		remaining = strings.TrimLeft(remaining[breakPoint:], " ")
	}

	if len(remaining) > 0 {
		lines = append(lines, remaining)
	}

	return strings.Join(lines, "\n"+indent)
}
