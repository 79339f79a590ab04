package git

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/transport"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	"github.com/go-git/go-git/v5/plumbing/transport/ssh"
)

// DefaultFetchTimeout is the default timeout for fetch operations.
const DefaultFetchTimeout = 60 * time.Second

// tagRefSpec fetches every remote tag, replacing local tags of the same name.
const tagRefSpec = config.RefSpec("+refs/tags/*:refs/tags/*")

// FetchTags fetches the tags of all configured remotes so that releases
// tagged elsewhere are known before a changelog or bump is computed.
// It returns true if every fetch succeeded. Failing remotes are reported on
// stderr and do not abort the others; a cancelled context stops early
// without error.
func (r *Repository) FetchTags(ctx context.Context) (bool, error) {
	if err := ctx.Err(); err != nil {
		logDebug("[git] FetchTags: context already cancelled")
		return true, nil
	}

	remotes, err := r.repo.Remotes()
	if err != nil {
		logDebug("[git] FetchTags: no remotes: %v", err)
		return true, nil
	}

	if len(remotes) == 0 {
		logDebug("[git] FetchTags: no remotes configured")
		return true, nil
	}

	allSucceeded := true
	for _, remote := range remotes {
		if err := ctx.Err(); err != nil {
			logDebug("[git] FetchTags: context cancelled, stopping fetch")
			return allSucceeded, nil
		}
		if err := r.fetchRemoteTags(ctx, remote); err != nil {
			fmt.Fprintf(os.Stderr, "[git] Warning: failed to fetch tags from remote '%s': %v\n", remote.Config().Name, err)
			allSucceeded = false
		}
	}

	logDebug("[git] FetchTags: completed, all succeeded: %v", allSucceeded)
	return allSucceeded, nil
}

// fetchRemoteTags fetches tags from a single remote with authentication.
// Skips SSH remotes when no SSH agent is available. Handles timeout gracefully.
func (r *Repository) fetchRemoteTags(ctx context.Context, remote *git.Remote) error {
	remoteConfig := remote.Config()
	if len(remoteConfig.URLs) == 0 {
		return nil
	}

	url := remoteConfig.URLs[0]

	if isSSHURL(url) && !isSSHAgentAvailable() {
		logDebug("[git] skipping fetch from remote '%s': SSH URL without SSH agent available", remoteConfig.Name)
		return nil
	}

	auth := getAuthForURL(url)
	logDebug("[git] fetching tags from remote '%s' (%s)", remoteConfig.Name, url)

	err := r.repo.FetchContext(ctx, &git.FetchOptions{
		RemoteName: remoteConfig.Name,
		Auth:       auth,
		Tags:       git.AllTags,
		RefSpecs:   []config.RefSpec{tagRefSpec},
	})

	if ctx.Err() != nil {
		logDebug("[git] fetch from remote '%s' timed out or cancelled", remoteConfig.Name)
		return nil
	}

	// "already up-to-date" is not an error
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		return nil
	}

	return err
}

// getAuthForURL returns the appropriate authentication method for a remote URL.
// SSH URLs use SSH agent auth, HTTPS URLs use environment credentials.
func getAuthForURL(url string) transport.AuthMethod {
	if isSSHURL(url) {
		auth, err := ssh.NewSSHAgentAuth("git")
		if err != nil {
			logDebug("[git] SSH agent auth failed: %v", err)
			return nil
		}
		return auth
	}

	username := os.Getenv("GIT_USERNAME")
	password := os.Getenv("GIT_PASSWORD")
	if username == "" {
		username = os.Getenv("GITHUB_TOKEN")
		if username != "" {
			password = "" // GitHub token can be used as username with empty password
		}
	}

	if username != "" {
		return &http.BasicAuth{
			Username: username,
			Password: password,
		}
	}

	return nil
}

// isSSHURL checks if a URL is an SSH URL.
// Detects git@ (SCP-style), ssh://, and git+ssh:// schemes.
func isSSHURL(url string) bool {
	return strings.HasPrefix(url, "git@") ||
		strings.HasPrefix(url, "ssh://") ||
		strings.HasPrefix(url, "git+ssh://")
}

// isSSHAgentAvailable checks if an SSH agent is available.
// Returns true only if SSH_AUTH_SOCK is set and non-empty.
func isSSHAgentAvailable() bool {
	sock := strings.TrimSpace(os.Getenv("SSH_AUTH_SOCK"))
	return sock != ""
}
