// Package release derives the release model of a commit history: version
// groups chained from newest to oldest, commits grouped by type inside each
// version, and the semantic-version increment a set of commits calls for.
package release
