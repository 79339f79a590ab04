package history

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ariel-frischer/cz/internal/message"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCommit(t *testing.T) {
	hash := strings.Repeat("a", 40)
	tag := &Tag{Name: "v1.0.0", CommitID: hash}

	c, err := BuildCommit(record(hash, "feat(api)!: x\n\nBREAKING CHANGE: y", "v1.0.0"),
		map[string]*Tag{"v1.0.0": tag}, newParser(t))
	require.NoError(t, err)

	assert.Equal(t, hash, c.Hash.Long)
	assert.Equal(t, "aaaaaaa", c.Hash.Short)
	assert.Equal(t, "Ada", c.Author.Name)
	assert.Equal(t, "bob@example.com", c.Committer.Email)
	assert.Equal(t, int64(1700000100), c.Committer.When.Unix())
	assert.Equal(t, "feat", c.Type().Name)
	assert.Equal(t, "api", c.Scope())
	assert.True(t, c.IsBreaking())
	assert.Same(t, tag, c.Tags["v1.0.0"])
}

func TestBuildCommit_ParseError(t *testing.T) {
	_, err := BuildCommit(record(strings.Repeat("a", 40), "bad message"), nil, newParser(t))
	assert.True(t, errors.Is(err, message.ErrInvalidMessage))
}

func TestBuilder_Build(t *testing.T) {
	hash := strings.Repeat("a", 40)
	reg, err := NewTagRegistry([]TagRecord{tagRecord("v1.0.0", hash)})
	require.NoError(t, err)
	b := NewBuilder(newParser(t), reg, 2)

	c, err := b.Build(record(hash, "fix: x", "v1.0.0"))
	require.NoError(t, err)
	tag, err := VersionTag(c)
	require.NoError(t, err)
	assert.Equal(t, "v1.0.0", tag.Name)

	_, err = b.Build(record(hash, "fix: x", "v2.0.0"))
	var ce *CommitError
	require.True(t, errors.As(err, &ce))
	assert.Equal(t, "aaaaaaa", ce.Hash.Short)
	var ue *UnknownTagError
	assert.True(t, errors.As(err, &ue))
}

func TestBuilder_BuildAllKeepsOrder(t *testing.T) {
	var records []CommitRecord
	for i := 0; i < 50; i++ {
		hash := fmt.Sprintf("%040d", i)
		records = append(records, record(hash, fmt.Sprintf("feat: change %d", i)))
	}

	commits, err := NewBuilder(newParser(t), nil, 4).BuildAll(records)
	require.NoError(t, err)
	require.Len(t, commits, 50)
	for i, c := range commits {
		assert.Equal(t, fmt.Sprintf("change %d", i), c.Message.Subject)
	}
}

func TestBuilder_BuildAllJoinsErrors(t *testing.T) {
	records := []CommitRecord{
		record(strings.Repeat("1", 40), "feat: ok"),
		record(strings.Repeat("2", 40), "nope"),
		record(strings.Repeat("3", 40), "fix: ok"),
		record(strings.Repeat("4", 40), "fix:missing space"),
	}

	for name, workers := range map[string]int{"one worker": 1, "per cpu": 0, "more workers than records": 8} {
		t.Run(name, func(t *testing.T) {
			commits, err := NewBuilder(newParser(t), nil, workers).BuildAll(records)
			require.Error(t, err)
			assert.Nil(t, commits)

			joined, ok := err.(interface{ Unwrap() []error })
			require.True(t, ok)
			errs := joined.Unwrap()
			require.Len(t, errs, 2)

			var first *CommitError
			require.True(t, errors.As(errs[0], &first))
			assert.Equal(t, "2222222", first.Hash.Short)
			var second *CommitError
			require.True(t, errors.As(errs[1], &second))
			assert.Equal(t, "4444444", second.Hash.Short)
		})
	}
}
