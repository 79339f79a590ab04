package message

import (
	"testing"

	"github.com/stretchr/testify/require"
)

var defaultTypeNames = []string{
	"feat", "fix", "perf", "refactor", "build", "ci", "docs",
	"style", "test", "wip", "revert", "bump", "chore",
}

func defaultTypes() []CommitType {
	types := make([]CommitType, len(defaultTypeNames))
	for i, name := range defaultTypeNames {
		types[i] = CommitType{Name: name}
	}
	return types
}

func newDefaultParser(t *testing.T) *Parser {
	t.Helper()
	p, err := NewParser(defaultTypes(), DefaultRegistry())
	require.NoError(t, err)
	return p
}
