package history

import (
	"errors"
	"fmt"
	"runtime"

	"github.com/ariel-frischer/cz/internal/message"
	"golang.org/x/sync/errgroup"
)

// CommitError ties a build failure to the commit it happened on.
type CommitError struct {
	Hash Hash
	Err  error
}

func (e *CommitError) Error() string {
	short := e.Hash.Short
	if short == "" {
		short = e.Hash.Long
	}
	return fmt.Sprintf("commit %s: %v", short, e.Err)
}

func (e *CommitError) Unwrap() error {
	return e.Err
}

// BuildCommit builds a Commit from a record whose tags are already resolved.
func BuildCommit(rec CommitRecord, tags map[string]*Tag, parser *message.Parser) (*Commit, error) {
	msg, err := parser.Parse(rec.Message)
	if err != nil {
		return nil, err
	}
	if tags == nil {
		tags = map[string]*Tag{}
	}
	return &Commit{
		Hash:      Hash{Long: rec.LongHash, Short: rec.ShortHash},
		Author:    NewUser(rec.AuthorName, rec.AuthorEmail, rec.AuthorTime),
		Committer: NewUser(rec.CommitterName, rec.CommitterEmail, rec.CommitterTime),
		Message:   msg,
		Tags:      tags,
	}, nil
}

// Builder builds commits against a shared parser and tag registry.
type Builder struct {
	parser  *message.Parser
	tags    *TagRegistry
	workers int
}

// NewBuilder creates a Builder. workers bounds parallel message parsing in
// BuildAll; 0 means GOMAXPROCS.
func NewBuilder(parser *message.Parser, tags *TagRegistry, workers int) *Builder {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if tags == nil {
		tags = &TagRegistry{tags: map[string]*Tag{}}
	}
	return &Builder{parser: parser, tags: tags, workers: workers}
}

// Tags returns the registry the builder resolves tag names against.
func (b *Builder) Tags() *TagRegistry {
	return b.tags
}

// Build resolves the record's tags and builds its Commit.
func (b *Builder) Build(rec CommitRecord) (*Commit, error) {
	tags, err := b.tags.Resolve(rec.TagNames)
	if err != nil {
		return nil, &CommitError{Hash: Hash{Long: rec.LongHash, Short: rec.ShortHash}, Err: err}
	}
	c, err := BuildCommit(rec, tags, b.parser)
	if err != nil {
		return nil, &CommitError{Hash: Hash{Long: rec.LongHash, Short: rec.ShortHash}, Err: err}
	}
	return c, nil
}

// BuildAll builds every record, parsing messages in parallel. The result
// keeps the order of records. If any record fails, BuildAll returns the
// joined CommitErrors in record order and no commits.
func (b *Builder) BuildAll(records []CommitRecord) ([]*Commit, error) {
	commits := make([]*Commit, len(records))
	errs := make([]error, len(records))

	var g errgroup.Group
	g.SetLimit(b.workers)
	for i := range records {
		g.Go(func() error {
			commits[i], errs[i] = b.Build(records[i])
			return errs[i]
		})
	}
	if err := g.Wait(); err != nil {
		// Wait only reports the first failure to finish; errs keeps record order.
		return nil, errors.Join(errs...)
	}
	return commits, nil
}
