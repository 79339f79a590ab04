package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	clierrors "github.com/ariel-frischer/cz/internal/errors"
	"github.com/ariel-frischer/cz/internal/history"
	"github.com/ariel-frischer/cz/internal/progress"
	"github.com/spf13/cobra"
)

var (
	lintFileFlag  string
	lintRangeFlag string
	lintQuietFlag bool
)

var lintCmd = &cobra.Command{
	Use:   "lint [message]",
	Short: "Check commit messages against the conventional commits grammar",
	Long: `Check commit messages against the conventional commits grammar.

The message is taken from the argument, from --file, or from stdin.
Lines starting with '#' in a --file are dropped the way git drops them,
so the command works as a commit-msg hook.

With --range, every commit of a revision range is checked instead and
all invalid messages are reported.`,
	Example: `  # Check a message
  cz lint "feat(api): add pagination"

  # As a commit-msg hook (.git/hooks/commit-msg)
  cz lint --file "$1"

  # Check every commit since v1.2.0
  cz lint --range v1.2.0..

  # Check a message from stdin
  git log -1 --format=%B | cz lint`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLint,
}

func init() {
	lintCmd.GroupID = GroupCommits
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFileFlag, "file", "f", "", "Read the message from a file (commit-msg hook)")
	lintCmd.Flags().StringVarP(&lintRangeFlag, "range", "r", "", "Check every commit of a revision range <from>..<to>")
	lintCmd.Flags().BoolVarP(&lintQuietFlag, "quiet", "q", false, "Only report invalid messages")
}

func runLint(cmd *cobra.Command, args []string) error {
	sources := 0
	for _, set := range []bool{len(args) == 1, lintFileFlag != "", lintRangeFlag != ""} {
		if set {
			sources++
		}
	}
	if sources > 1 {
		return clierrors.InvalidFlagCombination("[message], --file, --range", "Give the message in exactly one way")
	}

	if lintRangeFlag != "" {
		return runLintRange(cmd, lintRangeFlag)
	}

	text, source, err := readLintMessage(cmd, args)
	if err != nil {
		return err
	}

	s, err := newSession(cmd, false)
	if err != nil {
		return err
	}

	if _, err := s.parser.Parse(text); err != nil {
		return WithExitCode(ExitValidationFailed, clierrors.InvalidCommitMessage(source, err))
	}

	if !lintQuietFlag {
		symbols := progress.SelectSymbols(progress.DetectTerminalCapabilitiesFor(os.Stdout))
		fmt.Fprintf(cmd.OutOrStdout(), "%s commit message is valid\n", symbols.Checkmark)
	}
	return nil
}

// readLintMessage returns the message to lint and a description of its source.
func readLintMessage(cmd *cobra.Command, args []string) (string, string, error) {
	switch {
	case len(args) == 1:
		return args[0], "argument", nil
	case lintFileFlag != "":
		data, err := os.ReadFile(lintFileFlag)
		if err != nil {
			return "", "", clierrors.NewArgumentError(
				fmt.Sprintf("cannot read commit message: %v", err),
				"Pass the path git gives the commit-msg hook, usually .git/COMMIT_EDITMSG",
			)
		}
		return stripComments(string(data)), lintFileFlag, nil
	default:
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), "stdin", nil
	}
}

// stripComments drops comment lines and everything below git's scissors line.
func stripComments(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		if strings.HasPrefix(line, "# ------------------------ >8 ------------------------") {
			break
		}
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

// parseRange splits "<from>..<to>"; either side may be empty.
func parseRange(r string) (string, string, error) {
	from, to, ok := strings.Cut(r, "..")
	if !ok || strings.HasPrefix(to, ".") {
		return "", "", clierrors.InvalidRange(r)
	}
	return from, to, nil
}

func runLintRange(cmd *cobra.Command, r string) error {
	from, to, err := parseRange(r)
	if err != nil {
		return err
	}

	s, err := newSession(cmd, true)
	if err != nil {
		return err
	}

	tags, err := s.tagRegistry()
	if err != nil {
		return err
	}
	records, err := s.records(cmd.Context(), from, to)
	if err != nil {
		return err
	}

	builder := history.NewBuilder(s.parser, tags, s.cfg.Workers)
	invalid := 0
	for _, rec := range records {
		if _, err := builder.Build(rec); err != nil {
			invalid++
			clierrors.FprintError(cmd.ErrOrStderr(), clierrors.InvalidCommitMessage("commit "+rec.ShortHash, err))
			fmt.Fprintln(cmd.ErrOrStderr())
		}
	}

	symbols := progress.SelectSymbols(progress.DetectTerminalCapabilitiesFor(os.Stdout))
	if invalid > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d of %d commits have invalid messages\n", symbols.Failure, invalid, len(records))
		return NewExitError(ExitValidationFailed)
	}
	if !lintQuietFlag {
		fmt.Fprintf(cmd.OutOrStdout(), "%s %d commits checked\n", symbols.Checkmark, len(records))
	}
	return nil
}
