package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/ariel-frischer/cz/internal/config"
	clierrors "github.com/ariel-frischer/cz/internal/errors"
	"github.com/ariel-frischer/cz/internal/git"
	"github.com/ariel-frischer/cz/internal/history"
	"github.com/ariel-frischer/cz/internal/message"
	"github.com/ariel-frischer/cz/internal/progress"
	"github.com/ariel-frischer/cz/internal/release"
	"github.com/spf13/cobra"
)

// session holds what a command needs to read the history of a repository.
type session struct {
	cmd    *cobra.Command
	cfg    *config.Configuration
	parser *message.Parser
	// repo is nil when the command runs outside a repository.
	repo *git.Repository
}

// newSession loads the configuration and opens the repository named by
// --repo. With requireRepo unset, a missing repository is tolerated and the
// configuration is read relative to --repo.
func newSession(cmd *cobra.Command, requireRepo bool) (*session, error) {
	repo, projectDir, err := openRepository()
	if err != nil {
		return nil, err
	}
	if repo == nil && requireRepo {
		return nil, clierrors.GitNotRepository()
	}
	s := &session{cmd: cmd, repo: repo}

	cfg, err := loadConfig(cmd, projectDir)
	if err != nil {
		return nil, err
	}
	s.cfg = cfg

	if s.parser, err = cfg.Parser(); err != nil {
		return nil, clierrors.ConfigParseError(err)
	}
	logDebug("[cli] session: project %s, %d commit types", projectDir, len(cfg.Types))
	return s, nil
}

// openRepository opens the repository named by --repo. It returns a nil
// repository outside a repository, and the directory holding .cz/: the
// worktree root, or --repo itself.
func openRepository() (*git.Repository, string, error) {
	repo, err := git.Open(repoPathFlag)
	switch {
	case err == nil:
		if root := repo.Root(); root != "" {
			return repo, root, nil
		}
		return repo, repoPathFlag, nil
	case git.IsNotRepository(err):
		return nil, repoPathFlag, nil
	default:
		return nil, "", fmt.Errorf("opening repository: %w", err)
	}
}

// loadConfig loads the layered configuration for projectDir.
func loadConfig(cmd *cobra.Command, projectDir string) (*config.Configuration, error) {
	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ProjectDir:        projectDir,
		ProjectConfigPath: configPathFlag,
		WarningWriter:     cmd.ErrOrStderr(),
	})
	if err != nil {
		var notFound *config.NotFoundError
		if errors.As(err, &notFound) {
			return nil, clierrors.ConfigFileNotFound(notFound.Path)
		}
		return nil, clierrors.ConfigParseError(err)
	}
	return cfg, nil
}

// newSpinner returns a spinner on the command's error stream.
func (s *session) newSpinner() *progress.Spinner {
	return progress.NewSpinner(s.cmd.ErrOrStderr(), progress.DetectTerminalCapabilitiesFor(os.Stderr))
}

// fetchTags updates the local tags from every remote.
func (s *session) fetchTags(ctx context.Context) error {
	sp := s.newSpinner()
	sp.Start("Fetching tags")
	ok, err := s.repo.FetchTags(ctx)
	if err != nil {
		sp.Fail("Fetching tags failed")
		return fmt.Errorf("fetching tags: %w", err)
	}
	// Unreachable remotes only leave the local tags as they are.
	if ok {
		sp.Succeed("Fetched tags")
	} else {
		sp.Fail("Some remotes could not be fetched, using local tags")
	}
	return nil
}

// tagRegistry collects the tags of the repository.
func (s *session) tagRegistry() (*history.TagRegistry, error) {
	records, err := s.repo.Tags()
	if err != nil {
		return nil, fmt.Errorf("listing tags: %w", err)
	}
	tags, err := history.NewTagRegistry(records)
	if err != nil {
		return nil, fmt.Errorf("registering tags: %w", err)
	}
	logDebug("[cli] registered %d tags", tags.Len())
	return tags, nil
}

// records collects the commit records of from..to.
func (s *session) records(ctx context.Context, from, to string) ([]history.CommitRecord, error) {
	records, err := s.repo.Commits(ctx, from, to)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return nil, err
		}
		return nil, clierrors.InvalidRange(fmt.Sprintf("%s..%s: %v", from, to, err))
	}
	return records, nil
}

// commits builds the commits of from..to, newest first.
func (s *session) commits(ctx context.Context, tags *history.TagRegistry, from, to string) ([]*history.Commit, error) {
	sp := s.newSpinner()
	sp.Start("Reading commit history")

	records, err := s.records(ctx, from, to)
	if err != nil {
		sp.Fail("Reading commit history failed")
		return nil, err
	}

	commits, err := history.NewBuilder(s.parser, tags, s.cfg.Workers).BuildAll(records)
	if err != nil {
		sp.Fail("Reading commit history failed")
		return nil, historyError(err)
	}

	sp.Succeed(fmt.Sprintf("Read %d commits", len(commits)))
	return commits, nil
}

// graph builds the version graph of commits.
func (s *session) graph(commits []*history.Commit) (*release.Graph, error) {
	g, err := release.BuildVersionGraph(commits, s.cfg.Titles())
	if err != nil {
		return nil, historyError(err)
	}
	logDebug("[cli] version graph: %d versions, %d unreleased commits", g.Len(), len(g.Unreleased))
	return g, nil
}

// historyError converts history failures into CLI errors. Only the first
// invalid commit is reported with its remediation.
func historyError(err error) error {
	var ambiguous *history.AmbiguousVersionTagError
	if errors.As(err, &ambiguous) {
		return clierrors.AmbiguousVersionTag(ambiguous)
	}
	var commitErr *history.CommitError
	if errors.As(err, &commitErr) && errors.Is(commitErr.Err, message.ErrInvalidMessage) {
		return clierrors.InvalidCommitMessage("commit "+commitErr.Hash.Short, commitErr.Err)
	}
	return err
}
