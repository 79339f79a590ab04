package release

import (
	"github.com/ariel-frischer/cz/internal/history"
	"github.com/ariel-frischer/cz/internal/message"
)

// Title registers a changelog section for a commit type.
type Title struct {
	Type  message.CommitType
	Title string
}

// CommitGroup holds the commits of one type within a version, newest first.
type CommitGroup struct {
	Type    message.CommitType
	Title   string
	Commits []*history.Commit
}

// VersionGroup is the set of commits released under one version tag.
type VersionGroup struct {
	Tag *history.Tag
	// Notes holds breaking-change note bodies, newest first.
	Notes []string

	groups []*CommitGroup
	graph  *Graph
	index  int
}

// CommitGroups returns the non-empty commit groups in title registration order.
func (v *VersionGroup) CommitGroups() []*CommitGroup {
	return v.groups
}

// CommitGroup returns the group for the named commit type.
func (v *VersionGroup) CommitGroup(typeName string) (*CommitGroup, bool) {
	for _, g := range v.groups {
		if g.Type.Name == typeName {
			return g, true
		}
	}
	return nil, false
}

// Index returns the position of v in its graph, 0 being the newest version.
func (v *VersionGroup) Index() int {
	return v.index
}

// Next returns the chronologically more recent version, or nil.
func (v *VersionGroup) Next() *VersionGroup {
	if v.index == 0 {
		return nil
	}
	return v.graph.groups[v.index-1]
}

// Previous returns the chronologically older version, or nil.
func (v *VersionGroup) Previous() *VersionGroup {
	if v.index+1 >= len(v.graph.groups) {
		return nil
	}
	return v.graph.groups[v.index+1]
}

// Commits returns every grouped commit of the version, in group order.
func (v *VersionGroup) Commits() []*history.Commit {
	var out []*history.Commit
	for _, g := range v.groups {
		out = append(out, g.Commits...)
	}
	return out
}

// Graph owns the version groups of a history, newest first. Groups refer to
// their neighbours by position in the graph.
type Graph struct {
	groups []*VersionGroup
	byTag  map[string]int
	// Unreleased holds the commits newer than every version tag.
	Unreleased []*history.Commit
}

// Groups returns the version groups, newest first.
func (g *Graph) Groups() []*VersionGroup {
	return g.groups
}

// Len returns the number of version groups.
func (g *Graph) Len() int {
	return len(g.groups)
}

// Lookup returns the group of the named version tag.
func (g *Graph) Lookup(tagName string) (*VersionGroup, bool) {
	i, ok := g.byTag[tagName]
	if !ok {
		return nil, false
	}
	return g.groups[i], true
}

// Latest returns the newest version group, or nil for an unreleased history.
func (g *Graph) Latest() *VersionGroup {
	if len(g.groups) == 0 {
		return nil
	}
	return g.groups[0]
}

// TagNames returns the version tag names, newest first.
func (g *Graph) TagNames() []string {
	names := make([]string, len(g.groups))
	for i, vg := range g.groups {
		names[i] = vg.Tag.Name
	}
	return names
}

// BuildVersionGraph files commits, given newest first, under the version tag
// that releases them. A commit belongs to the version of the nearest version
// tag at or before it in the stream; commits ahead of every version tag are
// kept in Unreleased. Commits of a type without a Title are not grouped,
// and their breaking-change notes are dropped with them.
//
// A commit carrying two version tags aborts the build with a
// history.AmbiguousVersionTagError.
func BuildVersionGraph(commits []*history.Commit, titles []Title) (*Graph, error) {
	g := &Graph{byTag: make(map[string]int)}
	var current *VersionGroup

	for _, c := range commits {
		tag, err := history.VersionTag(c)
		if err != nil {
			return nil, err
		}
		if tag != nil {
			current = g.open(tag, titles)
		}
		if current == nil {
			g.Unreleased = append(g.Unreleased, c)
			continue
		}

		group, ok := current.CommitGroup(c.Type().Name)
		if !ok {
			continue
		}
		group.Commits = append(group.Commits, c)
		if bc, ok := c.Message.BreakingChange(); ok {
			current.Notes = append(current.Notes, bc.Body)
		}
	}

	g.prune()
	return g, nil
}

// open returns the group of tag, creating it with one empty CommitGroup per
// title if it does not exist yet.
func (g *Graph) open(tag *history.Tag, titles []Title) *VersionGroup {
	if i, ok := g.byTag[tag.Name]; ok {
		return g.groups[i]
	}
	vg := &VersionGroup{Tag: tag, graph: g, index: len(g.groups)}
	for _, t := range titles {
		if _, dup := vg.CommitGroup(t.Type.Name); dup {
			continue
		}
		vg.groups = append(vg.groups, &CommitGroup{Type: t.Type, Title: t.Title})
	}
	g.byTag[tag.Name] = vg.index
	g.groups = append(g.groups, vg)
	return vg
}

// prune drops the commit groups that received no commits.
func (g *Graph) prune() {
	for _, vg := range g.groups {
		kept := vg.groups[:0]
		for _, cg := range vg.groups {
			if len(cg.Commits) > 0 {
				kept = append(kept, cg)
			}
		}
		vg.groups = kept
	}
}
