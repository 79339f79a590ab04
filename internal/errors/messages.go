package errors

import (
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/ariel-frischer/cz/internal/history"
	"github.com/ariel-frischer/cz/internal/message"
	"github.com/ariel-frischer/cz/internal/release"
)

// Common error messages for the cz CLI.
// These templates ensure consistent, actionable error messages.

// InvalidCommitMessage creates an error for a commit message that breaks the
// grammar. source names where the message came from (a hash, a file, "stdin").
func InvalidCommitMessage(source string, err error) *CLIError {
	cliErr := WrapWithMessage(err, Validation, fmt.Sprintf("invalid commit message (%s)", source))

	var grammarErr *message.GrammarError
	var footerErr *message.FooterError
	switch {
	case stderrors.As(err, &grammarErr):
		cliErr.Location = &Location{Source: source, Line: grammarErr.Line + 1, Text: grammarErr.Text}
		for _, line := range strings.Split(grammarErr.Hint, "\n") {
			if line = strings.TrimSpace(line); line != "" {
				cliErr.Remediation = append(cliErr.Remediation, line)
			}
		}
		if len(cliErr.Remediation) == 0 {
			cliErr.Remediation = []string{"Run 'cz lint --help' for the expected message format"}
		}
	case stderrors.As(err, &footerErr):
		cliErr.Location = &Location{Source: source, Line: footerErr.Line + 1, Text: footerErr.Text}
		cliErr.Remediation = []string{
			"Footers go after the body and a blank line, with no blank lines between them",
			"Check the footer order configured under 'footers' (cz config show)",
		}
	default:
		cliErr.Remediation = []string{"Run 'cz lint --help' for the expected message format"}
	}
	return cliErr
}

// AmbiguousVersionTag creates an error when one commit carries two version tags.
func AmbiguousVersionTag(err *history.AmbiguousVersionTagError) *CLIError {
	return WrapWithMessage(err, Validation,
		"cannot build the version history",
		fmt.Sprintf("Keep one of %s and delete the others: git tag -d <tag>", strings.Join(err.Tags, ", ")),
	)
}

// UntaggedVersion creates an error when the current version has no tag.
func UntaggedVersion(err *release.UntaggedVersionError) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		"cannot find the commits since the current version",
		fmt.Sprintf("Tag the release commit: git tag %s <commit>", err.Tag),
		"Or pass the tagged version explicitly: cz bump --current <version>",
		"Check 'tag_format' in .cz/config.yml",
	)
}

// UnreleasedRange creates an error when the commits to release already hold
// other version tags.
func UnreleasedRange(err *release.UnreleasedRangeError) *CLIError {
	return WrapWithMessage(err, Prerequisite,
		"cannot determine the next version",
		"Pass the latest released version: cz bump --current <version>",
		"List the version tags with: git tag --sort=-creatordate",
	)
}

// NothingToRelease creates an error when no commit calls for a release.
func NothingToRelease(current string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("nothing to release since %s", current),
		"Only commit types with a 'bump' setting trigger a release (cz config show)",
		"Breaking changes (type!: subject) always trigger a major release",
	)
}

// InvalidVersion creates an error for a malformed semantic version argument.
func InvalidVersion(provided string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid version: %s", provided),
		"cz bump --current <MAJOR.MINOR.PATCH[-PRERELEASE]>",
		"Versions follow semantic versioning, e.g. 1.4.0 or v2.0.0-rc.1",
	)
}

// InvalidRange creates an error for a malformed revision range.
func InvalidRange(provided string) *CLIError {
	return NewArgumentErrorWithUsage(
		fmt.Sprintf("invalid revision range: %s", provided),
		"cz lint --range <from>..<to>",
		"Either side may be empty: 'v1.0.0..' lints everything after v1.0.0",
	)
}

// InvalidFlagCombination creates an error for incompatible flag combinations.
func InvalidFlagCombination(flags string, reason string) *CLIError {
	return NewArgumentError(
		fmt.Sprintf("invalid flag combination: %s", flags),
		reason,
		"Use 'cz <command> --help' to see valid options",
	)
}

// ConfigFileNotFound creates an error for missing config file.
func ConfigFileNotFound(path string) *CLIError {
	return NewConfigError(
		fmt.Sprintf("config file not found: %s", path),
		"Run 'cz config init' to create the default configuration",
		"Or check the path passed to --config",
	)
}

// ConfigParseError creates an error for an invalid config file.
func ConfigParseError(err error) *CLIError {
	return WrapWithMessage(err, Configuration,
		"invalid configuration",
		"Check .cz/config.yml for YAML syntax errors and invalid values",
		"Show the effective configuration with: cz config show",
		"Reset to defaults with: cz config init --force",
	)
}

// GitNotRepository creates an error when not in a git repository.
func GitNotRepository() *CLIError {
	return NewPrerequisiteError(
		"not a git repository",
		"Initialize with: git init",
		"Or navigate to an existing repository, or pass --repo <path>",
	)
}

// TagExists creates an error when the release tag is already taken.
func TagExists(tag string) *CLIError {
	return NewPrerequisiteError(
		fmt.Sprintf("tag already exists: %s", tag),
		"Delete the tag if it is wrong: git tag -d "+tag,
		"Or bump from the tagged version: cz bump --current <version>",
	)
}
