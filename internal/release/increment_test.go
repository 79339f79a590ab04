package release

import (
	"testing"

	"github.com/ariel-frischer/cz/internal/history"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextIncrement(t *testing.T) {
	tests := map[string]struct {
		messages []string
		want     Severity
	}{
		"breaking wins":             {messages: []string{"fix: a", "feat: b", "fix!: c"}, want: Major},
		"breaking first":            {messages: []string{"fix!: c", "feat: b", "fix: a"}, want: Major},
		"minor is sticky":           {messages: []string{"feat: a", "fix: b"}, want: Minor},
		"patch then minor":          {messages: []string{"fix: a", "feat: b"}, want: Minor},
		"patch only":                {messages: []string{"fix: a", "perf: b"}, want: Patch},
		"unmapped types":            {messages: []string{"docs: a", "chore: b"}, want: None},
		"unmapped after patch":      {messages: []string{"fix: a", "docs: b"}, want: Patch},
		"no commits":                {messages: nil, want: None},
		"breaking unmapped type":    {messages: []string{"docs!: a"}, want: Major},
		"minor survives many fixes": {messages: []string{"fix: a", "feat: b", "fix: c", "perf: d"}, want: Minor},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var commits []*history.Commit
			for _, m := range tt.messages {
				commits = append(commits, commit(t, m))
			}
			assert.Equal(t, tt.want, NextIncrement(commits, testBump))
		})
	}
}

func TestNextIncrement_IgnoresNoneMapping(t *testing.T) {
	bump := BumpMap{"fix": Patch, "docs": None}
	commits := []*history.Commit{commit(t, "fix: a"), commit(t, "docs: b")}
	assert.Equal(t, Patch, NextIncrement(commits, bump))
}

func TestParseSeverity(t *testing.T) {
	tests := map[string]Severity{"": None, "patch": Patch, "MINOR": Minor, " major ": Major, "none": None}
	for input, want := range tests {
		got, err := ParseSeverity(input)
		require.NoError(t, err)
		assert.Equal(t, want, got)
		if want != None {
			assert.Equal(t, want.String(), got.String())
		}
	}

	_, err := ParseSeverity("huge")
	assert.Error(t, err)
}

func TestSeverity_Apply(t *testing.T) {
	v := mustParse("1.2.3")

	next, ok := Major.Apply(v)
	assert.True(t, ok)
	assert.Equal(t, "2.0.0", next.String())

	next, ok = Minor.Apply(v)
	assert.True(t, ok)
	assert.Equal(t, "1.3.0", next.String())

	next, ok = Patch.Apply(v)
	assert.True(t, ok)
	assert.Equal(t, "1.2.4", next.String())

	_, ok = None.Apply(v)
	assert.False(t, ok)
}
