package cli

import (
	"os"
	"path/filepath"
	"testing"

	clierrors "github.com/ariel-frischer/cz/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLintCmd_Message(t *testing.T) {
	dir := newFixtureRepo(t)

	tests := map[string]struct {
		message  string
		wantErr  bool
		wantHint string
	}{
		"valid": {
			message: "feat(api): add pagination",
		},
		"valid with footers": {
			message: "fix!: reject empty ids\n\nIds used to default to zero.\n\nBREAKING CHANGE: empty ids fail\nCloses: #12",
		},
		"unregistered type": {
			message: "feature: add pagination",
			wantErr: true,
		},
		"not conventional": {
			message: "Add pagination",
			wantErr: true,
		},
		"missing blank line": {
			message: "feat: add pagination\nbody right away",
			wantErr: true,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			stdout, _, err := runCLI(t, "", "lint", "-C", dir, tt.message)
			if !tt.wantErr {
				require.NoError(t, err)
				assert.Contains(t, stdout, "commit message is valid")
				return
			}

			require.Error(t, err)
			assert.Equal(t, ExitValidationFailed, ExitCode(err))
			cliErr := clierrors.AsCLIError(err)
			require.NotNil(t, cliErr)
			assert.Equal(t, clierrors.Validation, cliErr.Category)
			assert.Contains(t, cliErr.Message, "invalid commit message (argument)")
			assert.NotEmpty(t, cliErr.Remediation)
		})
	}
}

func TestLintCmd_File(t *testing.T) {
	dir := newFixtureRepo(t)
	path := filepath.Join(t.TempDir(), "COMMIT_EDITMSG")
	content := "fix: handle nil config\n" +
		"# Please enter the commit message for your changes.\n" +
		"#\n" +
		"# ------------------------ >8 ------------------------\n" +
		"diff --git a/x b/x\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	stdout, _, err := runCLI(t, "", "lint", "-C", dir, "--file", path, "--quiet")
	require.NoError(t, err)
	assert.Empty(t, stdout)
}

func TestLintCmd_MissingFile(t *testing.T) {
	dir := newFixtureRepo(t)

	_, _, err := runCLI(t, "", "lint", "-C", dir, "--file", filepath.Join(dir, "missing"))
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}

func TestLintCmd_Stdin(t *testing.T) {
	dir := newFixtureRepo(t)

	stdout, _, err := runCLI(t, "docs: explain flags\n", "lint", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "commit message is valid")

	_, _, err = runCLI(t, "docs explain flags\n", "lint", "-C", dir)
	require.Error(t, err)
	cliErr := clierrors.AsCLIError(err)
	require.NotNil(t, cliErr)
	assert.Contains(t, cliErr.Message, "(stdin)")
}

func TestLintCmd_OutsideRepository(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, _, err := runCLI(t, "", "lint", "-C", t.TempDir(), "chore: tidy")
	require.NoError(t, err)
}

func TestLintCmd_ConflictingSources(t *testing.T) {
	dir := newFixtureRepo(t)

	_, _, err := runCLI(t, "", "lint", "-C", dir, "--range", "..", "feat: x")
	require.Error(t, err)
	assert.Equal(t, ExitInvalidArguments, ExitCode(err))
}

func TestLintCmd_Range(t *testing.T) {
	dir := newFixtureRepo(t,
		fixtureCommit{msg: "feat: initial", tags: []string{"v1.0.0"}},
		fixtureCommit{msg: "fix: crash on start"},
		fixtureCommit{msg: "docs: usage"},
	)

	stdout, _, err := runCLI(t, "", "lint", "-C", dir, "--range", "v1.0.0..")
	require.NoError(t, err)
	assert.Contains(t, stdout, "2 commits checked")

	stdout, _, err = runCLI(t, "", "lint", "-C", dir, "-r", "..HEAD")
	require.NoError(t, err)
	assert.Contains(t, stdout, "3 commits checked")
}

func TestLintCmd_RangeWithInvalidCommits(t *testing.T) {
	dir := newFixtureRepo(t,
		fixtureCommit{msg: "feat: initial"},
		fixtureCommit{msg: "WIP"},
		fixtureCommit{msg: "fix: crash on start"},
		fixtureCommit{msg: "fixed more stuff"},
	)

	stdout, stderr, err := runCLI(t, "", "lint", "-C", dir, "--range", "..")
	require.Error(t, err)
	assert.Equal(t, ExitValidationFailed, ExitCode(err))
	assert.Contains(t, stdout, "2 of 4 commits have invalid messages")
	assert.Contains(t, stderr, "invalid commit message (commit ")
}

func TestLintCmd_InvalidRange(t *testing.T) {
	dir := newFixtureRepo(t, fixtureCommit{msg: "feat: initial"})

	tests := map[string]struct {
		rangeArg string
		wantCode int
	}{
		"missing dots":         {rangeArg: "v1.0.0", wantCode: ExitInvalidArguments},
		"three dots":           {rangeArg: "a...b", wantCode: ExitInvalidArguments},
		"unknown revision":     {rangeArg: "nope..", wantCode: ExitInvalidArguments},
		"unknown end of range": {rangeArg: "..nope", wantCode: ExitInvalidArguments},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			_, _, err := runCLI(t, "", "lint", "-C", dir, "--range", tt.rangeArg)
			require.Error(t, err)
			assert.Equal(t, tt.wantCode, ExitCode(err))
		})
	}
}

func TestLintCmd_RangeOutsideRepository(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	_, _, err := runCLI(t, "", "lint", "-C", t.TempDir(), "--range", "..")
	require.Error(t, err)
	assert.Equal(t, ExitPrerequisiteFailed, ExitCode(err))
}

func TestStripComments(t *testing.T) {
	tests := map[string]struct {
		input string
		want  string
	}{
		"no comments": {
			input: "feat: x\n\nbody",
			want:  "feat: x\n\nbody",
		},
		"comment lines": {
			input: "feat: x\n# comment\n\nbody\n#another",
			want:  "feat: x\n\nbody",
		},
		"scissors": {
			input: "feat: x\n# ------------------------ >8 ------------------------\n+diff",
			want:  "feat: x",
		},
		"issue reference inside a line": {
			input: "fix: x\n\nsee #12",
			want:  "fix: x\n\nsee #12",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, stripComments(tt.input))
		})
	}
}

func TestParseRange(t *testing.T) {
	tests := map[string]struct {
		input    string
		wantFrom string
		wantTo   string
		wantErr  bool
	}{
		"both sides": {input: "v1.0.0..v2.0.0", wantFrom: "v1.0.0", wantTo: "v2.0.0"},
		"open end":   {input: "v1.0.0..", wantFrom: "v1.0.0"},
		"open start": {input: "..HEAD", wantTo: "HEAD"},
		"everything": {input: ".."},
		"no dots":    {input: "v1.0.0", wantErr: true},
		"three dots": {input: "a...b", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			from, to, err := parseRange(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantFrom, from)
			assert.Equal(t, tt.wantTo, to)
		})
	}
}
