// Package semver parses and increments semantic versions.
// Validation and ordering delegate to golang.org/x/mod/semver; a leading "v"
// is optional everywhere, and only full MAJOR.MINOR.PATCH versions are valid.
package semver

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	modsemver "golang.org/x/mod/semver"
)

// Version is a parsed semantic version.
type Version struct {
	Major      int
	Minor      int
	Patch      int
	Prerelease string // without the leading "-"
	Build      string // without the leading "+"
}

// Zero is the version of a project that has never been released.
var Zero = Version{}

// canonical returns s with a "v" prefix, the form x/mod/semver expects.
func canonical(s string) string {
	if strings.HasPrefix(s, "v") {
		return s
	}
	return "v" + s
}

// IsValid reports whether s is a full semantic version, with or without a
// leading "v".
func IsValid(s string) bool {
	v := canonical(s)
	if !modsemver.IsValid(v) {
		return false
	}
	core := strings.TrimPrefix(v, "v")
	if i := strings.IndexAny(core, "-+"); i >= 0 {
		core = core[:i]
	}
	return strings.Count(core, ".") == 2
}

// Parse parses s into a Version.
func Parse(s string) (Version, error) {
	if !IsValid(s) {
		return Version{}, fmt.Errorf("invalid semantic version %q (expected X.Y.Z)", s)
	}
	rest := strings.TrimPrefix(canonical(s), "v")

	var v Version
	if i := strings.IndexByte(rest, '+'); i >= 0 {
		v.Build = rest[i+1:]
		rest = rest[:i]
	}
	if i := strings.IndexByte(rest, '-'); i >= 0 {
		v.Prerelease = rest[i+1:]
		rest = rest[:i]
	}

	parts := strings.Split(rest, ".")
	nums := make([]int, 3)
	for i, p := range parts {
		n, err := strconv.Atoi(p)
		if err != nil {
			return Version{}, fmt.Errorf("invalid version component %q in %q", p, s)
		}
		nums[i] = n
	}
	v.Major, v.Minor, v.Patch = nums[0], nums[1], nums[2]
	return v, nil
}

// String returns the version without a "v" prefix.
func (v Version) String() string {
	s := fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
	if v.Prerelease != "" {
		s += "-" + v.Prerelease
	}
	if v.Build != "" {
		s += "+" + v.Build
	}
	return s
}

// IsZero reports whether v is 0.0.0 without prerelease.
func (v Version) IsZero() bool {
	return v.Major == 0 && v.Minor == 0 && v.Patch == 0 && v.Prerelease == ""
}

// Compare returns -1, 0 or 1 as v is lower than, equal to or higher than other.
// Build metadata is ignored.
func (v Version) Compare(other Version) int {
	return modsemver.Compare("v"+v.String(), "v"+other.String())
}

// BumpMajor returns the next major version.
func (v Version) BumpMajor() Version {
	return Version{Major: v.Major + 1}
}

// BumpMinor returns the next minor version.
func (v Version) BumpMinor() Version {
	return Version{Major: v.Major, Minor: v.Minor + 1}
}

// BumpPatch returns the next patch version.
func (v Version) BumpPatch() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch + 1}
}

// Finalize drops prerelease and build information.
func (v Version) Finalize() Version {
	return Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch}
}

// PrereleaseToken returns the prerelease identifier before the first dot,
// e.g. "rc" for "1.0.0-rc.2".
func (v Version) PrereleaseToken() string {
	token, _, _ := strings.Cut(v.Prerelease, ".")
	return token
}

var trailingNumber = regexp.MustCompile(`(\d+)(\D*)$`)

// BumpPrerelease increments the prerelease counter. A version without a
// prerelease starts at "<token>.1"; an existing prerelease has its last
// number incremented, keeping the token it already has.
func (v Version) BumpPrerelease(token string) Version {
	pre := v.Prerelease
	if pre == "" {
		if token == "" {
			pre = "0"
		} else {
			pre = token + ".0"
		}
	}
	next := Version{Major: v.Major, Minor: v.Minor, Patch: v.Patch, Prerelease: incrementString(pre)}
	return next
}

// incrementString increments the last run of digits in s.
func incrementString(s string) string {
	loc := trailingNumber.FindStringSubmatchIndex(s)
	if loc == nil {
		return s + ".1"
	}
	n, _ := strconv.Atoi(s[loc[2]:loc[3]])
	return s[:loc[2]] + strconv.Itoa(n+1) + s[loc[3]:]
}

// SortDescending sorts valid version strings from highest to lowest,
// leaving invalid strings at the end in their original order.
func SortDescending(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		vi, vj := IsValid(names[i]), IsValid(names[j])
		if vi != vj {
			return vi
		}
		if !vi {
			return false
		}
		return modsemver.Compare(canonical(names[i]), canonical(names[j])) > 0
	})
}
