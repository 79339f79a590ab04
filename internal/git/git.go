// Package git reads commit and tag history from a git repository with go-git
// and creates release tags. It produces the collector records the history
// package builds commits from, so no git CLI is needed.
package git

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-git/go-git/v5"
)

// ErrNotRepository is returned when no repository encloses the requested path.
var ErrNotRepository = git.ErrRepositoryNotExists

// debugLogger is a function that logs debug messages when debug mode is enabled.
// By default, it's a no-op. Set it via SetDebugLogger to enable debug output.
var debugLogger func(format string, args ...any)

// SetDebugLogger configures the debug logger for git operations.
// Pass nil to disable debug logging. The logger function should format
// and output the message (similar to log.Printf signature).
func SetDebugLogger(logger func(format string, args ...any)) {
	debugLogger = logger
}

// logDebug logs a debug message if the debug logger is set.
func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// openRepo opens a git repository at the specified path or current working directory.
// It uses go-git's PlainOpenWithOptions with DetectDotGit enabled to traverse
// up the directory tree to find the repository root.
// If path is empty, the current working directory is used.
func openRepo(path string) (*git.Repository, error) {
	if path == "" {
		var err error
		path, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting current directory: %w", err)
		}
	}

	logDebug("[git] opening repository at %s", path)

	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, fmt.Errorf("opening repository at %s: %w", path, err)
	}

	logDebug("[git] repository opened successfully")
	return repo, nil
}

// Repository is an opened git repository.
type Repository struct {
	repo *git.Repository
	root string
}

// Open opens the repository enclosing path ("" for the current directory).
func Open(path string) (*Repository, error) {
	repo, err := openRepo(path)
	if err != nil {
		return nil, err
	}

	r := &Repository{repo: repo}
	if worktree, err := repo.Worktree(); err == nil {
		r.root = worktree.Filesystem.Root()
	}
	logDebug("[git] repository root: %q", r.root)
	return r, nil
}

// Root returns the absolute path of the worktree, or "" for a bare repository.
func (r *Repository) Root() string {
	return r.root
}

// IsNotRepository reports whether err means no repository was found.
func IsNotRepository(err error) bool {
	return errors.Is(err, ErrNotRepository)
}
