package cli

import (
	"errors"
	"fmt"

	clierrors "github.com/ariel-frischer/cz/internal/errors"
	"github.com/ariel-frischer/cz/internal/git"
	"github.com/ariel-frischer/cz/internal/release"
	"github.com/ariel-frischer/cz/internal/semver"
	"github.com/spf13/cobra"
)

var (
	bumpCurrentFlag    string
	bumpPrereleaseFlag string
	bumpIncrementFlag  string
	bumpTagFlag        bool
	bumpMessageFlag    string
	bumpFetchFlag      bool
)

var bumpCmd = &cobra.Command{
	Use:   "bump",
	Short: "Compute the next version and optionally tag it",
	Long: `Compute the next semantic version from the commits since the current one.

The current version is the highest version tag unless --current is given.
Breaking commits call for a major release; other commits use the bump
configured for their type (feat: minor, fix: patch by default).

A prerelease current version is finalized. With --prerelease, a
prerelease of the next version is produced instead (1.2.3 -> 1.2.3-rc.1,
1.2.3-rc.1 -> 1.2.3-rc.2).

The next version is printed on stdout. With --tag, the release tag is
created on HEAD (tag_format decides its name). No files are changed.`,
	Example: `  cz bump                         # Print the next version
  cz bump --tag                   # Create the release tag
  cz bump --tag -m "Release"      # Create an annotated tag
  cz bump --prerelease rc         # Next release candidate
  cz bump --current 1.4.0         # Bump from an explicit version
  cz bump --increment minor       # Force the increment`,
	Args: cobra.NoArgs,
	RunE: runBump,
}

func init() {
	bumpCmd.GroupID = GroupReleases
	rootCmd.AddCommand(bumpCmd)

	bumpCmd.Flags().StringVar(&bumpCurrentFlag, "current", "", "Current version (default: highest version tag)")
	bumpCmd.Flags().StringVarP(&bumpPrereleaseFlag, "prerelease", "p", "", "Prerelease token, e.g. alpha, beta, rc")
	bumpCmd.Flags().StringVarP(&bumpIncrementFlag, "increment", "i", "", "Force the increment: patch, minor or major")
	bumpCmd.Flags().BoolVarP(&bumpTagFlag, "tag", "t", false, "Create the release tag on HEAD")
	bumpCmd.Flags().StringVarP(&bumpMessageFlag, "message", "m", "", "Annotated tag message (requires --tag)")
	bumpCmd.Flags().BoolVar(&bumpFetchFlag, "fetch", false, "Fetch tags from the remotes first")
}

func runBump(cmd *cobra.Command, args []string) error {
	if bumpMessageFlag != "" && !bumpTagFlag {
		return clierrors.InvalidFlagCombination("--message without --tag", "--message sets the annotation of the tag created by --tag")
	}
	if bumpIncrementFlag != "" && bumpPrereleaseFlag != "" {
		return clierrors.InvalidFlagCombination("--increment and --prerelease", "A prerelease keeps the version numbers and bumps its counter")
	}

	var increment release.Severity
	if bumpIncrementFlag != "" {
		sev, err := release.ParseSeverity(bumpIncrementFlag)
		if err != nil || sev == release.None {
			return clierrors.NewArgumentErrorWithUsage(
				fmt.Sprintf("invalid increment: %s", bumpIncrementFlag),
				"cz bump --increment patch|minor|major",
			)
		}
		increment = sev
	}

	s, err := newSession(cmd, true)
	if err != nil {
		return err
	}
	ctx := cmd.Context()

	if bumpFetchFlag {
		if err := s.fetchTags(ctx); err != nil {
			return err
		}
	}

	tags, err := s.tagRegistry()
	if err != nil {
		return err
	}

	current, from := release.CurrentVersion(tags)
	if bumpCurrentFlag != "" {
		if current, err = semver.Parse(bumpCurrentFlag); err != nil {
			return clierrors.InvalidVersion(bumpCurrentFlag)
		}
		if from, err = release.RangeStart(current, tags, s.cfg.TagFormat); err != nil {
			var untagged *release.UntaggedVersionError
			if errors.As(err, &untagged) {
				return clierrors.UntaggedVersion(untagged)
			}
			return err
		}
	}
	logDebug("[cli] bump: current %s, range %s..HEAD", current, from)

	commits, err := s.commits(ctx, tags, from, "")
	if err != nil {
		return err
	}
	g, err := s.graph(commits)
	if err != nil {
		return err
	}
	bump, err := s.cfg.BumpMap()
	if err != nil {
		return clierrors.ConfigParseError(err)
	}

	plan, err := release.PlanBump(release.BumpRequest{
		Current:    current,
		Prerelease: bumpPrereleaseFlag,
		From:       from,
		Graph:      g,
		Commits:    commits,
		Bump:       bump,
	})
	if err != nil {
		var unreleased *release.UnreleasedRangeError
		if errors.As(err, &unreleased) {
			return clierrors.UnreleasedRange(unreleased)
		}
		return err
	}

	if increment != release.None && current.Prerelease == "" {
		plan.Increment = increment
		plan.Next, plan.Release = increment.Apply(current)
	}

	if !plan.Release {
		return WithExitCode(ExitNothingToRelease, clierrors.NothingToRelease(current.String()))
	}

	tagName := release.FormatTag(s.cfg.TagFormat, plan.Next)
	if plan.Increment != release.None {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s -> %s (%s)\n", current, plan.Next, plan.Increment)
	} else {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s -> %s\n", current, plan.Next)
	}
	fmt.Fprintln(cmd.OutOrStdout(), plan.Next)

	if !bumpTagFlag {
		return nil
	}
	if err := s.repo.CreateTag(tagName, git.TagOptions{Message: bumpMessageFlag}); err != nil {
		if errors.Is(err, git.ErrTagExists) {
			return clierrors.TagExists(tagName)
		}
		return fmt.Errorf("creating tag %s: %w", tagName, err)
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "Created tag %s\n", tagName)
	return nil
}
