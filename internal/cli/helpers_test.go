package cli

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// fixtureCommit is one commit of a test repository.
type fixtureCommit struct {
	msg  string
	tags []string
}

var fixtureTime = time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

// newFixtureRepo creates a repository holding commits, oldest first, and
// isolates the user configuration.
func newFixtureRepo(t *testing.T, commits ...fixtureCommit) string {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	wt, err := repo.Worktree()
	require.NoError(t, err)

	for i, c := range commits {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "log.txt"), []byte(fmt.Sprintf("%d\n", i)), 0o644))
		_, err := wt.Add("log.txt")
		require.NoError(t, err)

		sig := &object.Signature{Name: "Jane Doe", Email: "jane@example.com", When: fixtureTime.Add(time.Duration(i) * time.Hour)}
		hash, err := wt.Commit(c.msg, &git.CommitOptions{Author: sig, Committer: sig})
		require.NoError(t, err)

		for _, tag := range c.tags {
			_, err := repo.CreateTag(tag, hash, nil)
			require.NoError(t, err)
		}
	}
	return dir
}

// writeProjectConfig writes .cz/config.yml into dir.
func writeProjectConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, ".cz"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".cz", "config.yml"), []byte(content), 0o644))
}

// resetFlags restores every flag of cmd and its subcommands to its default.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, c := range cmd.Commands() {
		resetFlags(c)
	}
}

// runCLI executes the root command with args and stdin, returning stdout and stderr.
func runCLI(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	resetFlags(rootCmd)

	var stdout, stderr bytes.Buffer
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stderr)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetIn(nil)
		rootCmd.SetArgs(nil)
		resetFlags(rootCmd)
	})

	err := rootCmd.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
