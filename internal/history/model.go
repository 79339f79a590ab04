// Package history builds the commit and tag model of a repository from the
// raw records an external history collector extracts.
//
// Records are decoded from the text contract of git log / git for-each-ref
// (see LogFormat and TagRefFormat) or produced directly by a collector.
// Tags are registered once per run in a TagRegistry; commits are then built
// with a Builder, which parses each message and resolves its tags.
package history

import (
	"time"

	"github.com/ariel-frischer/cz/internal/message"
)

// Hash identifies a commit.
type Hash struct {
	Long  string // 40 hex characters
	Short string
}

func (h Hash) String() string {
	return h.Long
}

// User is an author, committer or tag creator at a point in time.
type User struct {
	Name  string
	Email string
	When  time.Time
}

// NewUser creates a User from a unix timestamp.
func NewUser(name, email string, unixTime int64) User {
	return User{Name: name, Email: email, When: time.Unix(unixTime, 0)}
}

// TagKind distinguishes lightweight from annotated tags.
type TagKind int

const (
	Lightweight TagKind = iota
	Annotated
)

// String returns the git name of the tag kind.
func (k TagKind) String() string {
	if k == Annotated {
		return "annotated"
	}
	return "lightweight"
}

// Tag is a named reference to a commit. Tags are unique by name and never
// modified after registration.
type Tag struct {
	Name string
	// CommitID is the id of the commit the tag points at.
	CommitID string
	Creator  User
	Kind     TagKind
}

func (t *Tag) String() string {
	return t.Name
}

// Commit is a commit with a parsed conventional message.
type Commit struct {
	Hash      Hash
	Author    User
	Committer User
	Message   *message.Message
	// Tags holds the tags pointing at this commit, keyed by name.
	Tags map[string]*Tag
}

// Type returns the commit type of the message.
func (c *Commit) Type() message.CommitType {
	return c.Message.Type
}

// Scope returns the scope of the message, empty if none.
func (c *Commit) Scope() string {
	return c.Message.Scope
}

// IsBreaking reports whether the message carries the breaking flag.
func (c *Commit) IsBreaking() bool {
	return c.Message.IsBreaking
}
