package changelog

import (
	"github.com/ariel-frischer/cz/internal/history"
	"github.com/ariel-frischer/cz/internal/release"
)

// UnreleasedVersion is the identifier of the section holding the commits
// newer than every version tag.
const UnreleasedVersion = "unreleased"

// dateLayout formats release dates.
const dateLayout = "2006-01-02"

// Changelog is the renderable view of a version graph.
type Changelog struct {
	// RepositoryURL enables commit, issue, pull request and compare links.
	RepositoryURL string    `yaml:"repository_url,omitempty"`
	Versions      []Version `yaml:"versions"`
}

// Version is one release, or the unreleased commits.
type Version struct {
	// Version is the tag name, or UnreleasedVersion.
	Version string `yaml:"version"`
	// Date is the tag creation day (YYYY-MM-DD); empty when unreleased.
	Date     string    `yaml:"date,omitempty"`
	Sections []Section `yaml:"sections,omitempty"`
	// Notes are the breaking-change notes of the release, newest first.
	Notes []string `yaml:"breaking_changes,omitempty"`
	// Previous is the tag of the release before this one, if any.
	Previous string `yaml:"previous,omitempty"`
}

// Section lists the commits of one commit type.
type Section struct {
	Type    string  `yaml:"type"`
	Title   string  `yaml:"title"`
	Entries []Entry `yaml:"entries"`
}

// Entry is one commit of a section.
type Entry struct {
	Scope    string `yaml:"scope,omitempty"`
	Subject  string `yaml:"subject"`
	Hash     string `yaml:"hash"`
	LongHash string `yaml:"-"`
	Breaking bool   `yaml:"breaking,omitempty"`
	Closes   []int  `yaml:"closes,omitempty"`
}

// BuildOptions controls Build.
type BuildOptions struct {
	RepositoryURL string
	// IncludeUnreleased adds a leading UnreleasedVersion when the graph has
	// unreleased commits.
	IncludeUnreleased bool
	// Titles groups the unreleased commits the same way the graph groups
	// released ones.
	Titles []release.Title
}

// IsUnreleased returns true if this version represents unreleased changes.
func (v Version) IsUnreleased() bool {
	return v.Version == UnreleasedVersion
}

// IsEmpty returns true if the version has neither entries nor notes.
func (v Version) IsEmpty() bool {
	return v.Count() == 0 && len(v.Notes) == 0
}

// Count returns the total number of entries across all sections.
func (v Version) Count() int {
	n := 0
	for _, s := range v.Sections {
		n += len(s.Entries)
	}
	return n
}

// Build converts g into a Changelog.
func Build(g *release.Graph, opts BuildOptions) *Changelog {
	c := &Changelog{RepositoryURL: opts.RepositoryURL}

	if opts.IncludeUnreleased && len(g.Unreleased) > 0 {
		if v := unreleasedVersion(g.Unreleased, opts.Titles); !v.IsEmpty() {
			c.Versions = append(c.Versions, v)
		}
	}

	for _, vg := range g.Groups() {
		v := Version{
			Version: vg.Tag.Name,
			Date:    vg.Tag.Creator.When.UTC().Format(dateLayout),
			Notes:   vg.Notes,
		}
		for _, cg := range vg.CommitGroups() {
			v.Sections = append(v.Sections, newSection(cg.Type.Name, cg.Title, cg.Commits))
		}
		if prev := vg.Previous(); prev != nil {
			v.Previous = prev.Tag.Name
		}
		c.Versions = append(c.Versions, v)
	}

	if len(c.Versions) > 0 && c.Versions[0].IsUnreleased() {
		if latest := g.Latest(); latest != nil {
			c.Versions[0].Previous = latest.Tag.Name
		}
	}
	return c
}

// unreleasedVersion groups commits by title the way BuildVersionGraph does.
func unreleasedVersion(commits []*history.Commit, titles []release.Title) Version {
	v := Version{Version: UnreleasedVersion}
	for _, t := range titles {
		var matched []*history.Commit
		for _, c := range commits {
			if c.Type().Name == t.Type.Name {
				matched = append(matched, c)
			}
		}
		if len(matched) > 0 {
			v.Sections = append(v.Sections, newSection(t.Type.Name, t.Title, matched))
		}
	}
	titled := make(map[string]bool, len(titles))
	for _, t := range titles {
		titled[t.Type.Name] = true
	}
	for _, c := range commits {
		if !titled[c.Type().Name] {
			continue
		}
		if bc, ok := c.Message.BreakingChange(); ok {
			v.Notes = append(v.Notes, bc.Body)
		}
	}
	return v
}

func newSection(typeName, title string, commits []*history.Commit) Section {
	s := Section{Type: typeName, Title: title}
	for _, c := range commits {
		s.Entries = append(s.Entries, newEntry(c))
	}
	return s
}

func newEntry(c *history.Commit) Entry {
	e := Entry{
		Scope:    c.Scope(),
		Subject:  c.Message.Subject,
		Hash:     c.Hash.Short,
		LongHash: c.Hash.Long,
		Breaking: c.IsBreaking(),
	}
	if closes, ok := c.Message.Closes(); ok {
		e.Closes = closes.Issues
	}
	return e
}
