package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/ariel-frischer/cz/internal/build"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// SourceURL is the project source URL
const SourceURL = "https://github.com/ariel-frischer/cz"

var versionPlain bool

var versionCmd = &cobra.Command{
	Use:     "version",
	Aliases: []string{"v"},
	Short:   "Display version information (v)",
	Long:    "Display version, commit, build date, and Go version information for cz",
	Example: `  # Show version info
  cz version

  # Plain output (for scripts)
  cz version --plain`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if versionPlain {
			printPlainVersion(cmd.OutOrStdout())
		} else {
			printPrettyVersion(cmd.OutOrStdout())
		}
	},
}

func init() {
	versionCmd.GroupID = GroupInternal
	rootCmd.AddCommand(versionCmd)
	versionCmd.Flags().BoolVar(&versionPlain, "plain", false, "Plain output without formatting")
}

// printPlainVersion prints a simple version output for scripting
func printPlainVersion(w io.Writer) {
	fmt.Fprintf(w, "cz %s\n", build.Version)
	fmt.Fprintf(w, "commit: %s\n", build.Commit)
	fmt.Fprintf(w, "built: %s\n", build.BuildDate)
	fmt.Fprintf(w, "go: %s\n", runtime.Version())
	fmt.Fprintf(w, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
}

// printPrettyVersion prints the version information as an aligned, coloured table.
func printPrettyVersion(w io.Writer) {
	cyan := color.New(color.FgCyan, color.Bold).SprintFunc()
	white := color.New(color.FgWhite, color.Bold).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	dim := color.New(color.Faint).SprintFunc()

	fmt.Fprintf(w, "%s %s\n\n", cyan("cz"), dim("conventional commits for git"))

	version := build.Version
	if build.IsDevBuild() {
		version += " " + dim("(development build)")
	}

	info := []struct {
		label string
		value string
	}{
		{"Version", version},
		{"Commit", truncateCommit(build.Commit)},
		{"Built", build.BuildDate},
		{"Go", runtime.Version()},
		{"Platform", fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)},
	}
	for _, item := range info {
		fmt.Fprintf(w, "  %s  %s\n", yellow(fmt.Sprintf("%9s", item.label)), white(item.value))
	}
	fmt.Fprintf(w, "\n  %s\n", dim(SourceURL))
}

// truncateCommit shortens commit hash if it's too long
func truncateCommit(commit string) string {
	if len(commit) > 8 {
		return commit[:8]
	}
	return commit
}
