package history

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ariel-frischer/cz/internal/semver"
)

// TagRegistry holds every tag of a run, keyed by name. It is built once
// before any commit is processed and is read-only afterwards.
type TagRegistry struct {
	tags  map[string]*Tag
	order []string
}

// NewTagRegistry registers the given tag records in collector order.
func NewTagRegistry(records []TagRecord) (*TagRegistry, error) {
	r := &TagRegistry{tags: make(map[string]*Tag, len(records))}
	for i, rec := range records {
		if rec.Name == "" {
			return nil, &RecordError{Index: i, Field: "name", Message: "tag name is empty"}
		}
		if _, ok := r.tags[rec.Name]; ok {
			return nil, &RecordError{Index: i, Field: "name", Message: fmt.Sprintf("tag %q listed twice", rec.Name)}
		}
		r.tags[rec.Name] = &Tag{
			Name:     rec.Name,
			CommitID: rec.ObjectName,
			Creator:  NewUser(rec.CreatorName, rec.CreatorEmail, rec.CreatorTime),
			Kind:     rec.Kind(),
		}
		r.order = append(r.order, rec.Name)
	}
	return r, nil
}

// Lookup returns the tag registered under name.
func (r *TagRegistry) Lookup(name string) (*Tag, bool) {
	t, ok := r.tags[name]
	return t, ok
}

// Len returns the number of registered tags.
func (r *TagRegistry) Len() int {
	return len(r.tags)
}

// Tags returns all tags in collector order.
func (r *TagRegistry) Tags() []*Tag {
	out := make([]*Tag, len(r.order))
	for i, name := range r.order {
		out[i] = r.tags[name]
	}
	return out
}

// VersionTags returns the tags whose names are semantic versions, highest
// version first.
func (r *TagRegistry) VersionTags() []*Tag {
	var names []string
	for _, name := range r.order {
		if semver.IsValid(name) {
			names = append(names, name)
		}
	}
	semver.SortDescending(names)
	out := make([]*Tag, len(names))
	for i, name := range names {
		out[i] = r.tags[name]
	}
	return out
}

// UnknownTagError reports a decoration naming a tag the registry does not hold.
type UnknownTagError struct {
	Name string
}

func (e *UnknownTagError) Error() string {
	return fmt.Sprintf("tag %q is not registered (was the tag list collected before the log?)", e.Name)
}

// Resolve maps tag names to registered tags.
func (r *TagRegistry) Resolve(names []string) (map[string]*Tag, error) {
	resolved := make(map[string]*Tag, len(names))
	for _, name := range names {
		t, ok := r.tags[name]
		if !ok {
			return nil, &UnknownTagError{Name: name}
		}
		resolved[name] = t
	}
	return resolved, nil
}

// AmbiguousVersionTagError reports a commit carrying more than one version tag.
type AmbiguousVersionTagError struct {
	CommitID string
	Tags     []string
}

func (e *AmbiguousVersionTagError) Error() string {
	return fmt.Sprintf("commit %s carries multiple version tags (%s); a commit cannot contain multiple version tags",
		e.CommitID, strings.Join(e.Tags, ", "))
}

// VersionTag returns the single tag of c whose name is a semantic version.
// It returns nil when c has no version tag and an AmbiguousVersionTagError
// when it has more than one.
func VersionTag(c *Commit) (*Tag, error) {
	var found []*Tag
	for _, t := range c.Tags {
		if semver.IsValid(t.Name) {
			found = append(found, t)
		}
	}

	switch len(found) {
	case 0:
		return nil, nil
	case 1:
		return found[0], nil
	}

	names := make([]string, len(found))
	for i, t := range found {
		names[i] = t.Name
	}
	sort.Strings(names)
	return nil, &AmbiguousVersionTagError{CommitID: c.Hash.Long, Tags: names}
}
