package errors

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
)

// palette renders the parts of an error report.
type palette struct {
	label    func(a ...interface{}) string
	message  func(a ...interface{}) string
	category func(a ...interface{}) string
	location func(a ...interface{}) string
	gutter   func(a ...interface{}) string
	fix      func(a ...interface{}) string
	bullet   func(a ...interface{}) string
	usage    func(a ...interface{}) string
	usageArg func(a ...interface{}) string
}

// colorPalette falls back to plain text when color.NoColor is set.
var colorPalette = palette{
	label:    color.New(color.FgRed, color.Bold).SprintFunc(),
	message:  color.New(color.FgRed).SprintFunc(),
	category: color.New(color.FgYellow).SprintFunc(),
	location: color.New(color.FgCyan).SprintFunc(),
	gutter:   color.New(color.FgBlue, color.Bold).SprintFunc(),
	fix:      color.New(color.FgGreen, color.Bold).SprintFunc(),
	bullet:   color.New(color.FgGreen).SprintFunc(),
	usage:    color.New(color.FgCyan, color.Bold).SprintFunc(),
	usageArg: color.New(color.FgCyan).SprintFunc(),
}

var plainPalette = palette{
	label:    fmt.Sprint,
	message:  fmt.Sprint,
	category: fmt.Sprint,
	location: fmt.Sprint,
	gutter:   fmt.Sprint,
	fix:      fmt.Sprint,
	bullet:   fmt.Sprint,
	usage:    fmt.Sprint,
	usageArg: fmt.Sprint,
}

// FormatError formats a CLIError for display in the terminal.
// It uses colors when available and falls back to plain text otherwise.
func FormatError(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, colorPalette)
}

// FormatErrorPlain formats a CLIError without colors.
func FormatErrorPlain(err *CLIError) string {
	if err == nil {
		return ""
	}
	return formatError(err, plainPalette)
}

func formatError(err *CLIError, p palette) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "%s [%s]: %s\n", p.label("Error"), p.category(err.Category.String()), p.message(err.Message))

	if err.Location != nil {
		sb.WriteString("\n")
		writeLocation(&sb, err.Location, p)
	}

	if err.Usage != "" {
		fmt.Fprintf(&sb, "\n%s%s\n", p.usage("Usage: "), p.usageArg(err.Usage))
	}

	if len(err.Remediation) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", p.fix("To fix this:"))
		for _, step := range err.Remediation {
			fmt.Fprintf(&sb, "  %s %s\n", p.bullet("•"), step)
		}
	}

	return sb.String()
}

// writeLocation renders loc as
//
//	--> commit abc1234, line 3
//	  |
//	3 | offending text
//
// The excerpt is left out when the line or its text is unknown.
func writeLocation(sb *strings.Builder, loc *Location, p palette) {
	where := loc.Source
	if loc.Line > 0 {
		where = fmt.Sprintf("%s, line %d", loc.Source, loc.Line)
	}
	fmt.Fprintf(sb, "  %s %s\n", p.gutter("-->"), p.location(where))
	if loc.Line <= 0 || loc.Text == "" {
		return
	}

	num := strconv.Itoa(loc.Line)
	pad := strings.Repeat(" ", len(num))
	fmt.Fprintf(sb, "  %s %s\n", pad, p.gutter("|"))
	fmt.Fprintf(sb, "  %s %s\n", p.gutter(num+" |"), loc.Text)
}

// PrintError prints a formatted CLIError to stderr.
func PrintError(err *CLIError) {
	FprintError(os.Stderr, err)
}

// FprintError prints a formatted CLIError to the given writer.
func FprintError(w io.Writer, err *CLIError) {
	if err == nil {
		return
	}
	fmt.Fprint(w, FormatError(err))
}

// FormatSimpleError formats a regular error with a category.
func FormatSimpleError(err error, category ErrorCategory) string {
	if err == nil {
		return ""
	}
	return FormatError(&CLIError{Category: category, Message: err.Error()})
}

// PrintSimpleError prints a formatted regular error to stderr.
// A CLIError in err's chain is printed with its own category and remediation.
func PrintSimpleError(err error, category ErrorCategory) {
	if cliErr := AsCLIError(err); cliErr != nil {
		PrintError(cliErr)
		return
	}
	fmt.Fprint(os.Stderr, FormatSimpleError(err, category))
}
