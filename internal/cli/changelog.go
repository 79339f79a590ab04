package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ariel-frischer/cz/internal/changelog"
	clierrors "github.com/ariel-frischer/cz/internal/errors"
	"github.com/spf13/cobra"
)

// Changelog output formats.
const (
	formatMarkdown = "markdown"
	formatYAML     = "yaml"
	formatTerminal = "terminal"
)

var (
	changelogFormatFlag     string
	changelogPlainFlag      bool
	changelogUnreleasedFlag bool
	changelogLastFlag       int
	changelogOutputFlag     string
	changelogFetchFlag      bool
)

var changelogCmd = &cobra.Command{
	Use:   "changelog [version]",
	Short: "Render the changelog of the repository",
	Long: `Render the changelog of the repository from its commit history.

Commits are grouped by version tag, newest first, and by commit type under
the titles configured in .cz/config.yml. Breaking changes are listed per
release. With repository_url set, commits, issues, pull requests and
version comparisons are linked.

Use a version argument to render a single release.`,
	Example: `  cz changelog                       # Markdown on stdout
  cz changelog -o CHANGELOG.md       # Write to a file
  cz changelog --unreleased          # Include commits since the last tag
  cz changelog v1.2.0                # Only release v1.2.0 (v prefix optional)
  cz changelog --format terminal     # Coloured overview
  cz changelog --format yaml         # Machine-readable export`,
	Args: cobra.MaximumNArgs(1),
	RunE: runChangelog,
}

func init() {
	changelogCmd.GroupID = GroupReleases
	rootCmd.AddCommand(changelogCmd)

	changelogCmd.Flags().StringVar(&changelogFormatFlag, "format", formatMarkdown, "Output format: markdown, yaml or terminal")
	changelogCmd.Flags().BoolVar(&changelogPlainFlag, "plain", false, "Plain terminal output (no colors/icons)")
	changelogCmd.Flags().BoolVarP(&changelogUnreleasedFlag, "unreleased", "u", false, "Include commits newer than the latest version tag")
	changelogCmd.Flags().IntVar(&changelogLastFlag, "last", 0, "Only the N newest versions (0 = all)")
	changelogCmd.Flags().StringVarP(&changelogOutputFlag, "output", "o", "", "Write to a file instead of stdout")
	changelogCmd.Flags().BoolVar(&changelogFetchFlag, "fetch", false, "Fetch tags from the remotes first")
}

func runChangelog(cmd *cobra.Command, args []string) error {
	switch changelogFormatFlag {
	case formatMarkdown, formatYAML, formatTerminal:
	default:
		return clierrors.NewArgumentErrorWithUsage(
			fmt.Sprintf("unknown format: %s", changelogFormatFlag),
			"cz changelog --format markdown|yaml|terminal",
		)
	}
	if changelogLastFlag < 0 {
		return clierrors.NewArgumentError("--last must not be negative")
	}

	s, err := newSession(cmd, true)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if changelogFetchFlag {
		if err := s.fetchTags(ctx); err != nil {
			return err
		}
	}

	tags, err := s.tagRegistry()
	if err != nil {
		return err
	}
	commits, err := s.commits(ctx, tags, "", "")
	if err != nil {
		return err
	}
	g, err := s.graph(commits)
	if err != nil {
		return err
	}

	log := changelog.Build(g, changelog.BuildOptions{
		RepositoryURL:     s.cfg.RepositoryURL,
		IncludeUnreleased: changelogUnreleasedFlag || (len(args) == 1 && changelog.NormalizeVersion(args[0]) == changelog.UnreleasedVersion),
		Titles:            s.cfg.Titles(),
	})

	if len(args) == 1 {
		v, err := log.GetVersion(args[0])
		if err != nil {
			var notFound *changelog.VersionNotFoundError
			if errors.As(err, &notFound) {
				return clierrors.NewArgumentError(err.Error(), "List the releases with: cz changelog --format terminal")
			}
			return fmt.Errorf("getting version: %w", err)
		}
		log = &changelog.Changelog{RepositoryURL: log.RepositoryURL, Versions: []changelog.Version{*v}}
	} else {
		log = log.Latest(changelogLastFlag)
	}

	return writeChangelog(cmd, log)
}

// writeChangelog renders log in the requested format to stdout or --output.
func writeChangelog(cmd *cobra.Command, log *changelog.Changelog) error {
	out := cmd.OutOrStdout()
	if changelogOutputFlag != "" {
		f, err := os.Create(changelogOutputFlag)
		if err != nil {
			return fmt.Errorf("creating %s: %w", changelogOutputFlag, err)
		}
		defer f.Close()
		out = f
	}

	if err := renderChangelog(log, out); err != nil {
		return err
	}

	if changelogOutputFlag != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %d versions to %s\n", len(log.Versions), changelogOutputFlag)
	}
	return nil
}

func renderChangelog(log *changelog.Changelog, w io.Writer) error {
	switch changelogFormatFlag {
	case formatYAML:
		return changelog.RenderYAML(log, w)
	case formatTerminal:
		if len(log.Versions) == 0 {
			_, err := fmt.Fprintln(w, "No releases found.")
			return err
		}
		return changelog.FormatTerminal(log, w, changelog.FormatOptions{Plain: changelogPlainFlag})
	default:
		return changelog.RenderMarkdown(log, w)
	}
}
