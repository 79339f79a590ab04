package release

import (
	"errors"
	"testing"

	"github.com/ariel-frischer/cz/internal/history"
	"github.com/ariel-frischer/cz/internal/semver"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTag(t *testing.T) {
	v := mustParse("1.2.3")
	assert.Equal(t, "1.2.3", FormatTag("", v))
	assert.Equal(t, "v1.2.3", FormatTag("v{version}", v))
	assert.Equal(t, "release-1.2.3", FormatTag("release-{version}", v))
}

func TestRangeStart(t *testing.T) {
	tags, err := history.NewTagRegistry([]history.TagRecord{
		{ObjectType: "commit", ObjectName: "a", Name: "v1.0.0"},
		{ObjectType: "commit", ObjectName: "b", Name: "1.1.0"},
	})
	require.NoError(t, err)

	from, err := RangeStart(semver.Zero, tags, "v{version}")
	require.NoError(t, err)
	assert.Empty(t, from)

	from, err = RangeStart(mustParse("1.0.0"), tags, "v{version}")
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", from)

	from, err = RangeStart(mustParse("1.1.0"), tags, "v{version}")
	require.NoError(t, err)
	assert.Equal(t, "1.1.0", from)

	_, err = RangeStart(mustParse("2.0.0"), tags, "v{version}")
	var ue *UntaggedVersionError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "v2.0.0", ue.Tag)
}

func TestPlanBump(t *testing.T) {
	tests := map[string]struct {
		current    string
		prerelease string
		messages   []string
		want       string
		wantInc    Severity
		release    bool
	}{
		"minor from commits":      {current: "1.2.3", messages: []string{"fix: a", "feat: b"}, want: "1.3.0", wantInc: Minor, release: true},
		"major from breaking":     {current: "1.2.3", messages: []string{"fix!: a"}, want: "2.0.0", wantInc: Major, release: true},
		"nothing to release":      {current: "1.2.3", messages: []string{"docs: a"}, want: "1.2.3", wantInc: None},
		"first release":           {current: "0.0.0", messages: []string{"feat: a"}, want: "0.1.0", wantInc: Minor, release: true},
		"start prerelease":        {current: "1.2.3", prerelease: "rc", want: "1.2.3-rc.1", release: true},
		"continue prerelease":     {current: "1.2.3-rc.1", prerelease: "rc", want: "1.2.3-rc.2", release: true},
		"switch prerelease token": {current: "1.2.3-alpha.4", prerelease: "rc", want: "1.2.3-rc.1", release: true},
		"finalize prerelease":     {current: "1.2.3-rc.2", messages: []string{"feat: a"}, want: "1.2.3", release: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var commits []*history.Commit
			for _, m := range tt.messages {
				commits = append(commits, commit(t, m))
			}
			g, err := BuildVersionGraph(commits, testTitles)
			require.NoError(t, err)

			plan, err := PlanBump(BumpRequest{
				Current:    mustParse(tt.current),
				Prerelease: tt.prerelease,
				Graph:      g,
				Commits:    commits,
				Bump:       testBump,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, plan.Next.String())
			assert.Equal(t, tt.wantInc, plan.Increment)
			assert.Equal(t, tt.release, plan.Release)
			assert.Equal(t, tt.current, plan.Current.String())
		})
	}
}

func TestPlanBump_RangeWithVersionTags(t *testing.T) {
	commits := []*history.Commit{commit(t, "feat: a"), commit(t, "fix: b", "v1.1.0")}
	g, err := BuildVersionGraph(commits, testTitles)
	require.NoError(t, err)

	_, err = PlanBump(BumpRequest{
		Current: mustParse("1.0.0"),
		From:    "v1.0.0",
		Graph:   g,
		Commits: commits,
		Bump:    testBump,
	})
	var ue *UnreleasedRangeError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, []string{"v1.1.0"}, ue.Versions)
	assert.Contains(t, ue.Error(), "v1.0.0")
}

func TestCurrentVersion(t *testing.T) {
	tests := map[string]struct {
		tags    []string
		want    string
		wantTag string
	}{
		"no tags": {
			want: "0.0.0",
		},
		"no version tags": {
			tags: []string{"latest", "nightly"},
			want: "0.0.0",
		},
		"highest wins": {
			tags:    []string{"v1.2.0", "v1.10.0", "1.9.0", "latest"},
			want:    "1.10.0",
			wantTag: "v1.10.0",
		},
		"release above prerelease": {
			tags:    []string{"2.0.0-rc.1", "2.0.0"},
			want:    "2.0.0",
			wantTag: "2.0.0",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			records := make([]history.TagRecord, len(tt.tags))
			for i, tag := range tt.tags {
				records[i] = history.TagRecord{ObjectType: "commit", ObjectName: "c", Name: tag}
			}
			tags, err := history.NewTagRegistry(records)
			require.NoError(t, err)

			v, tag := CurrentVersion(tags)
			assert.Equal(t, tt.want, v.String())
			assert.Equal(t, tt.wantTag, tag)
		})
	}
}
