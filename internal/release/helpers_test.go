package release

import (
	"fmt"
	"testing"

	"github.com/ariel-frischer/cz/internal/history"
	"github.com/ariel-frischer/cz/internal/message"
	"github.com/ariel-frischer/cz/internal/semver"
	"github.com/stretchr/testify/require"
)

// mustParse parses a version known to be valid.
func mustParse(s string) semver.Version {
	v, err := semver.Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

var testParser = func() *message.Parser {
	types := []message.CommitType{
		{Name: "feat"}, {Name: "fix"}, {Name: "perf"}, {Name: "docs"}, {Name: "chore"}, {Name: "revert"},
	}
	p, err := message.NewParser(types, message.DefaultRegistry())
	if err != nil {
		panic(err)
	}
	return p
}()

var testTitles = []Title{
	{Type: message.CommitType{Name: "feat"}, Title: "Features"},
	{Type: message.CommitType{Name: "fix"}, Title: "Bug Fixes"},
	{Type: message.CommitType{Name: "docs"}, Title: "Documentation"},
}

var testBump = BumpMap{"feat": Minor, "fix": Patch, "perf": Patch}

var commitSeq int

// commit builds a commit with the given message and tag names.
func commit(t *testing.T, msg string, tags ...string) *history.Commit {
	t.Helper()
	commitSeq++
	hash := fmt.Sprintf("%040x", commitSeq)
	resolved := map[string]*history.Tag{}
	for _, name := range tags {
		resolved[name] = &history.Tag{Name: name, CommitID: hash}
	}
	rec := history.CommitRecord{LongHash: hash, ShortHash: hash[33:], Message: msg}
	c, err := history.BuildCommit(rec, resolved, testParser)
	require.NoError(t, err)
	return c
}
