package release

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/cz/internal/history"
	"github.com/ariel-frischer/cz/internal/semver"
)

// VersionPlaceholder is replaced by the version in a tag format.
const VersionPlaceholder = "{version}"

// FormatTag renders the tag name of v. An empty format yields the bare version.
func FormatTag(format string, v semver.Version) string {
	if format == "" {
		format = VersionPlaceholder
	}
	return strings.ReplaceAll(format, VersionPlaceholder, v.String())
}

// UntaggedVersionError reports a current version that no tag marks.
type UntaggedVersionError struct {
	Version string
	Tag     string
}

func (e *UntaggedVersionError) Error() string {
	return fmt.Sprintf("the current version (%s) is not tagged (expected tag %q)", e.Version, e.Tag)
}

// UnreleasedRangeError reports a bump range that already contains releases.
type UnreleasedRangeError struct {
	// From is the tag the range starts at, empty for the whole history.
	From     string
	Versions []string
}

func (e *UnreleasedRangeError) Error() string {
	from := "the first commit"
	if e.From != "" {
		from = e.From
	}
	return fmt.Sprintf("unable to determine next version: commits from %s to HEAD are tagged with other versions (%s)",
		from, strings.Join(e.Versions, ", "))
}

// RangeStart returns the name of the tag marking current, which starts the
// range of commits to release. It returns "" for 0.0.0, meaning the whole
// history, and an UntaggedVersionError when the tag does not exist.
func RangeStart(current semver.Version, tags *history.TagRegistry, tagFormat string) (string, error) {
	if current.IsZero() {
		return "", nil
	}
	name := FormatTag(tagFormat, current)
	if _, ok := tags.Lookup(name); ok {
		return name, nil
	}
	// Tags written before the tag format changed name the version with or without "v".
	for _, alt := range []string{current.String(), "v" + current.String()} {
		if _, ok := tags.Lookup(alt); ok {
			return alt, nil
		}
	}
	return "", &UntaggedVersionError{Version: current.String(), Tag: name}
}

// CurrentVersion returns the highest version among the version tags, or
// 0.0.0 and "" when there is none.
func CurrentVersion(tags *history.TagRegistry) (semver.Version, string) {
	for _, t := range tags.VersionTags() {
		if v, err := semver.Parse(t.Name); err == nil {
			return v, t.Name
		}
	}
	return semver.Zero, ""
}

// BumpRequest is the input of PlanBump.
type BumpRequest struct {
	Current semver.Version
	// Prerelease requests a prerelease bump with this token, e.g. "rc".
	Prerelease string
	// From is the tag the commit range starts at ("" for the whole history).
	From string
	// Graph is built from the commits after From, newest first.
	Graph *Graph
	// Commits are the commits after From.
	Commits []*history.Commit
	Bump    BumpMap
}

// BumpPlan is the outcome of PlanBump.
type BumpPlan struct {
	Current   semver.Version
	Next      semver.Version
	Increment Severity
	// Release is false when nothing needs releasing.
	Release bool
}

// PlanBump computes the version following req.Current.
//
// A prerelease request finalizes a current prerelease of another token and
// bumps the prerelease counter. Without one, a current prerelease is
// finalized. Otherwise the commits since the current version decide the
// increment; a range that already holds version tags is an
// UnreleasedRangeError.
func PlanBump(req BumpRequest) (BumpPlan, error) {
	plan := BumpPlan{Current: req.Current}
	current := req.Current

	if req.Prerelease != "" {
		if current.Prerelease != "" && current.PrereleaseToken() != req.Prerelease {
			current = current.Finalize()
		}
		plan.Next = current.BumpPrerelease(req.Prerelease)
		plan.Release = true
		return plan, nil
	}

	if current.Prerelease != "" {
		plan.Next = current.Finalize()
		plan.Release = true
		return plan, nil
	}

	if req.Graph != nil && req.Graph.Len() > 0 {
		return plan, &UnreleasedRangeError{From: req.From, Versions: req.Graph.TagNames()}
	}

	plan.Increment = NextIncrement(req.Commits, req.Bump)
	plan.Next, plan.Release = plan.Increment.Apply(current)
	return plan, nil
}
