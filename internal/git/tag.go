package git

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ErrTagExists is returned by CreateTag when the name is already taken.
var ErrTagExists = git.ErrTagExists

// TagOptions configures CreateTag.
type TagOptions struct {
	// Message makes the tag annotated. An empty message creates a lightweight tag.
	Message string
	// Tagger signs an annotated tag. When nil, the user from the git config is used.
	Tagger *object.Signature
}

// CreateTag tags HEAD with name.
func (r *Repository) CreateTag(name string, opts TagOptions) error {
	head, err := r.repo.Head()
	if err != nil {
		return fmt.Errorf("getting HEAD reference: %w", err)
	}

	var createOpts *git.CreateTagOptions
	if opts.Message != "" {
		createOpts = &git.CreateTagOptions{Message: opts.Message, Tagger: opts.Tagger}
	}

	if _, err := r.repo.CreateTag(name, head.Hash(), createOpts); err != nil {
		if errors.Is(err, git.ErrTagExists) {
			return fmt.Errorf("tag %q: %w", name, ErrTagExists)
		}
		return fmt.Errorf("creating tag %q: %w", name, err)
	}

	logDebug("[git] CreateTag: %s at %s (annotated: %v)", name, head.Hash(), createOpts != nil)
	return nil
}
