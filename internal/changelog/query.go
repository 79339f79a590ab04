package changelog

import (
	"fmt"
	"strings"
)

// VersionNotFoundError is returned when a requested version doesn't exist.
type VersionNotFoundError struct {
	Version           string
	AvailableVersions []string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("version %q not found (available: %s)",
		e.Version, strings.Join(e.AvailableVersions, ", "))
}

// GetVersion retrieves a specific version from the changelog.
// Accepts both "v0.6.0" and "0.6.0" formats (normalizes the input).
// Returns VersionNotFoundError if the version doesn't exist.
func (c *Changelog) GetVersion(version string) (*Version, error) {
	normalized := NormalizeVersion(version)

	for i := range c.Versions {
		if NormalizeVersion(c.Versions[i].Version) == normalized {
			return &c.Versions[i], nil
		}
	}

	return nil, &VersionNotFoundError{
		Version:           version,
		AvailableVersions: c.ListVersions(),
	}
}

// ListVersions returns a list of all version identifiers in the changelog.
// Versions are returned in the order they appear (newest first).
func (c *Changelog) ListVersions() []string {
	versions := make([]string, len(c.Versions))
	for i, v := range c.Versions {
		versions[i] = v.Version
	}
	return versions
}

// Latest returns the first n versions of the changelog.
func (c *Changelog) Latest(n int) *Changelog {
	if n <= 0 || n >= len(c.Versions) {
		return c
	}
	return &Changelog{RepositoryURL: c.RepositoryURL, Versions: c.Versions[:n]}
}

// NormalizeVersion strips a leading "v" and lowercases the version so that
// "v1.0.0", "1.0.0" and "Unreleased" compare as expected.
func NormalizeVersion(version string) string {
	v := strings.ToLower(strings.TrimSpace(version))
	return strings.TrimPrefix(v, "v")
}
