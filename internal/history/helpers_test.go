package history

import (
	"testing"

	"github.com/ariel-frischer/cz/internal/message"
	"github.com/stretchr/testify/require"
)

func newParser(t *testing.T) *message.Parser {
	t.Helper()
	types := []message.CommitType{{Name: "feat"}, {Name: "fix"}, {Name: "docs"}, {Name: "revert"}}
	p, err := message.NewParser(types, message.DefaultRegistry())
	require.NoError(t, err)
	return p
}

func record(hash, msg string, tags ...string) CommitRecord {
	return CommitRecord{
		LongHash:       hash,
		ShortHash:      hash[:7],
		AuthorName:     "Ada",
		AuthorEmail:    "ada@example.com",
		AuthorTime:     1700000000,
		CommitterName:  "Bob",
		CommitterEmail: "bob@example.com",
		CommitterTime:  1700000100,
		Message:        msg,
		TagNames:       tags,
	}
}
