package changelog

import (
	"fmt"
	"testing"
	"time"

	"github.com/ariel-frischer/cz/internal/history"
	"github.com/ariel-frischer/cz/internal/message"
	"github.com/ariel-frischer/cz/internal/release"
	"github.com/stretchr/testify/require"
)

const testRepoURL = "https://github.com/acme/widget"

var testParser = func() *message.Parser {
	types := []message.CommitType{{Name: "feat"}, {Name: "fix"}, {Name: "chore"}}
	p, err := message.NewParser(types, message.DefaultRegistry())
	if err != nil {
		panic(err)
	}
	return p
}()

var testTitles = []release.Title{
	{Type: message.CommitType{Name: "feat"}, Title: "Features"},
	{Type: message.CommitType{Name: "fix"}, Title: "Bug Fixes"},
}

var tagTime = time.Date(2026, 3, 14, 22, 30, 0, 0, time.FixedZone("PDT", -7*3600))

// testCommits builds a history of the form produced by the collector, newest first.
func testCommits(t *testing.T, msgs ...[2]string) []*history.Commit {
	t.Helper()
	commits := make([]*history.Commit, 0, len(msgs))
	for i, m := range msgs {
		hash := fmt.Sprintf("%040x", 0xabc0000+i)
		tags := map[string]*history.Tag{}
		if m[1] != "" {
			tags[m[1]] = &history.Tag{
				Name:     m[1],
				CommitID: hash,
				Creator:  history.User{When: tagTime.Add(-time.Duration(i) * 24 * time.Hour)},
			}
		}
		rec := history.CommitRecord{LongHash: hash, ShortHash: hash[33:], Message: m[0]}
		c, err := history.BuildCommit(rec, tags, testParser)
		require.NoError(t, err)
		commits = append(commits, c)
	}
	return commits
}

// testChangelog builds a changelog with two releases and unreleased work.
func testChangelog(t *testing.T, repoURL string) *Changelog {
	t.Helper()
	commits := testCommits(t,
		[2]string{"fix: late fix", ""},
		[2]string{"feat(api)!: new endpoint #12\n\nBREAKING CHANGE: v1 routes removed\nCloses: #3, #4", "v1.1.0"},
		[2]string{"chore: deps", ""},
		[2]string{"fix: crash on start", ""},
		[2]string{"feat: first", "v1.0.0"},
	)
	g, err := release.BuildVersionGraph(commits, testTitles)
	require.NoError(t, err)
	return Build(g, BuildOptions{RepositoryURL: repoURL, IncludeUnreleased: true, Titles: testTitles})
}
