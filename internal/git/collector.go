package git

import (
	"context"
	"fmt"
	"sort"

	"github.com/ariel-frischer/cz/internal/history"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// ShortHashLength is the length of abbreviated commit ids.
const ShortHashLength = 7

// tagTarget is a tag peeled to the commit it releases.
type tagTarget struct {
	record history.TagRecord
	commit plumbing.Hash
}

// tagTargets lists every tag that points at a commit. Tags of trees or blobs
// are skipped.
func (r *Repository) tagTargets() ([]tagTarget, error) {
	iter, err := r.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}

	var targets []tagTarget
	err = iter.ForEach(func(ref *plumbing.Reference) error {
		name := ref.Name().Short()

		if tag, err := r.repo.TagObject(ref.Hash()); err == nil {
			commit, err := tag.Commit()
			if err != nil {
				logDebug("[git] skipping tag %s: %v", name, err)
				return nil
			}
			targets = append(targets, tagTarget{
				record: history.TagRecord{
					ObjectType:   "tag",
					ObjectName:   commit.Hash.String(),
					Name:         name,
					CreatorName:  tag.Tagger.Name,
					CreatorEmail: tag.Tagger.Email,
					CreatorTime:  tag.Tagger.When.Unix(),
				},
				commit: commit.Hash,
			})
			return nil
		}

		commit, err := r.repo.CommitObject(ref.Hash())
		if err != nil {
			logDebug("[git] skipping tag %s: %v", name, err)
			return nil
		}
		targets = append(targets, tagTarget{
			record: history.TagRecord{
				ObjectType:   "commit",
				ObjectName:   commit.Hash.String(),
				Name:         name,
				CreatorName:  commit.Committer.Name,
				CreatorEmail: commit.Committer.Email,
				CreatorTime:  commit.Committer.When.Unix(),
			},
			commit: commit.Hash,
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("iterating tags: %w", err)
	}
	return targets, nil
}

// Tags returns the tag records of the repository, most recently created first.
func (r *Repository) Tags() ([]history.TagRecord, error) {
	targets, err := r.tagTargets()
	if err != nil {
		return nil, err
	}

	records := make([]history.TagRecord, len(targets))
	for i, t := range targets {
		records[i] = t.record
	}
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatorTime != records[j].CreatorTime {
			return records[i].CreatorTime > records[j].CreatorTime
		}
		return records[i].Name < records[j].Name
	})

	logDebug("[git] Tags: found %d tags", len(records))
	return records, nil
}

// resolve returns the commit a revision (branch, tag, hash, HEAD) points at.
func (r *Repository) resolve(rev string) (plumbing.Hash, error) {
	hash, err := r.repo.ResolveRevision(plumbing.Revision(rev))
	if err != nil {
		return plumbing.ZeroHash, fmt.Errorf("resolving %q: %w", rev, err)
	}
	return *hash, nil
}

// ancestors returns every commit reachable from hash, itself included.
func (r *Repository) ancestors(ctx context.Context, hash plumbing.Hash) (map[plumbing.Hash]bool, error) {
	iter, err := r.repo.Log(&git.LogOptions{From: hash})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", hash, err)
	}
	seen := make(map[plumbing.Hash]bool)
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		seen[c.Hash] = true
		return nil
	})
	if err != nil {
		return nil, err
	}
	return seen, nil
}

// Commits returns the commits reachable from to but not from from, newest
// first, like "git log from..to". An empty from selects the whole history and
// an empty to means HEAD. Each record carries the tags decorating its commit.
func (r *Repository) Commits(ctx context.Context, from, to string) ([]history.CommitRecord, error) {
	if to == "" {
		to = "HEAD"
	}
	toHash, err := r.resolve(to)
	if err != nil {
		return nil, err
	}

	var excluded map[plumbing.Hash]bool
	if from != "" {
		fromHash, err := r.resolve(from)
		if err != nil {
			return nil, err
		}
		if excluded, err = r.ancestors(ctx, fromHash); err != nil {
			return nil, err
		}
	}

	decorations, err := r.decorations()
	if err != nil {
		return nil, err
	}

	iter, err := r.repo.Log(&git.LogOptions{From: toHash, Order: git.LogOrderCommitterTime})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", to, err)
	}

	var records []history.CommitRecord
	err = iter.ForEach(func(c *object.Commit) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		if excluded[c.Hash] {
			return nil
		}
		records = append(records, commitRecord(c, decorations[c.Hash]))
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking history from %s: %w", to, err)
	}

	logDebug("[git] Commits %s..%s: found %d commits", from, to, len(records))
	return records, nil
}

// decorations maps commit ids to the sorted names of the tags pointing at them.
func (r *Repository) decorations() (map[plumbing.Hash][]string, error) {
	targets, err := r.tagTargets()
	if err != nil {
		return nil, err
	}
	out := make(map[plumbing.Hash][]string)
	for _, t := range targets {
		out[t.commit] = append(out[t.commit], t.record.Name)
	}
	for _, names := range out {
		sort.Strings(names)
	}
	return out, nil
}

func commitRecord(c *object.Commit, tags []string) history.CommitRecord {
	long := c.Hash.String()
	return history.CommitRecord{
		LongHash:       long,
		ShortHash:      long[:ShortHashLength],
		AuthorName:     c.Author.Name,
		AuthorEmail:    c.Author.Email,
		AuthorTime:     c.Author.When.Unix(),
		CommitterName:  c.Committer.Name,
		CommitterEmail: c.Committer.Email,
		CommitterTime:  c.Committer.When.Unix(),
		Message:        c.Message,
		TagNames:       tags,
	}
}
