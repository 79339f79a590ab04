package release

import (
	"fmt"
	"strings"

	"github.com/ariel-frischer/cz/internal/history"
	"github.com/ariel-frischer/cz/internal/semver"
)

// Severity is the magnitude of a version increment.
type Severity int

const (
	// None means nothing needs releasing.
	None Severity = iota
	Patch
	Minor
	// Major is reserved for breaking commits.
	Major
)

// String returns the lowercase name of the severity.
func (s Severity) String() string {
	switch s {
	case Patch:
		return "patch"
	case Minor:
		return "minor"
	case Major:
		return "major"
	default:
		return "none"
	}
}

// ParseSeverity parses "patch", "minor" or "major" (case-insensitive).
// The empty string parses as None.
func ParseSeverity(s string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return None, nil
	case "patch":
		return Patch, nil
	case "minor":
		return Minor, nil
	case "major":
		return Major, nil
	default:
		return None, fmt.Errorf("unknown severity %q (expected patch, minor or major)", s)
	}
}

// Apply returns v incremented by s. It reports false for None.
func (s Severity) Apply(v semver.Version) (semver.Version, bool) {
	switch s {
	case Patch:
		return v.BumpPatch(), true
	case Minor:
		return v.BumpMinor(), true
	case Major:
		return v.BumpMajor(), true
	default:
		return v, false
	}
}

// BumpMap maps commit type names to the severity they call for.
// Types missing from the map do not trigger a release.
type BumpMap map[string]Severity

// NextIncrement returns the increment the commits call for. Any breaking
// commit makes it Major. Otherwise the last mapped severity wins, except that
// a recorded Minor is never lowered. None means nothing to release.
func NextIncrement(commits []*history.Commit, bump BumpMap) Severity {
	increment := None
	for _, c := range commits {
		if c.IsBreaking() {
			return Major
		}
		sev, ok := bump[c.Type().Name]
		if !ok || sev == None {
			continue
		}
		if increment != Minor {
			increment = sev
		}
	}
	return increment
}
