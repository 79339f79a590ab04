// Package cli implements the cz command line: linting commit messages,
// rendering the changelog of a repository and planning the next release.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	clierrors "github.com/ariel-frischer/cz/internal/errors"
	"github.com/ariel-frischer/cz/internal/git"
	"github.com/spf13/cobra"
)

// Command groups for help output.
const (
	GroupCommits       = "commits"
	GroupReleases      = "releases"
	GroupConfiguration = "configuration"
	GroupInternal      = "internal"
)

var (
	configPathFlag string
	repoPathFlag   string
	debugFlag      bool
)

var rootCmd = &cobra.Command{
	Use:   "cz",
	Short: "Conventional commits linter, changelog generator and version bumper",
	Long: `cz checks that commit messages follow the conventional commits grammar
and reads the repository history to build changelogs and compute the
next semantic version.

Commit types, changelog titles, bump rules and footer order are read from
.cz/config.yml (see 'cz config init').

Source: https://github.com/ariel-frischer/cz`,
	Example: `  # Check the message of a commit-msg hook
  cz lint --file .git/COMMIT_EDITMSG

  # Check every commit since the last release
  cz lint --range v1.2.0..

  # Render the changelog
  cz changelog > CHANGELOG.md

  # Print the next version and tag it
  cz bump --tag`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugFlag {
			enableDebugLogging()
		}
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupCommits, Title: "Commit Messages:"},
		&cobra.Group{ID: GroupReleases, Title: "Releases:"},
		&cobra.Group{ID: GroupConfiguration, Title: "Configuration:"},
		&cobra.Group{ID: GroupInternal, Title: "Internal Commands:"},
	)
	rootCmd.SetHelpCommandGroupID(GroupInternal)
	rootCmd.SetCompletionCommandGroupID(GroupInternal)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			fmt.Sprintf("Run '%s --help' for the available flags", cmd.CommandPath()))
	})

	rootCmd.PersistentFlags().StringVarP(&configPathFlag, "config", "c", "", "Project config file (default: .cz/config.yml)")
	rootCmd.PersistentFlags().StringVarP(&repoPathFlag, "repo", "C", ".", "Path inside the git repository to work on")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false, "Log git and CLI operations to stderr")
}

var debugLogger func(format string, args ...any)

func logDebug(format string, args ...any) {
	if debugLogger != nil {
		debugLogger(format, args...)
	}
}

// enableDebugLogging routes the debug hooks of the CLI and git packages to stderr.
func enableDebugLogging() {
	logger := log.New(os.Stderr, "", log.Ltime|log.Lmicroseconds)
	debugLogger = logger.Printf
	git.SetDebugLogger(logger.Printf)
}

// Execute runs the root command. Failures are printed to stderr; use
// ExitCode to turn the returned error into a process exit status.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(err)
	}
	return err
}

// printError reports err unless the command already did.
func printError(err error) {
	var exitErr *ExitError
	if errors.As(err, &exitErr) && exitErr.Err == nil {
		return
	}
	if errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, "interrupted")
		return
	}
	clierrors.PrintSimpleError(err, clierrors.Runtime)
}
