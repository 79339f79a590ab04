package changelog

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	c := &Changelog{Versions: []Version{
		{Version: UnreleasedVersion},
		{Version: "v1.1.0"},
		{Version: "1.0.0"},
	}}

	tests := map[string]struct {
		version string
		want    string
		wantErr bool
	}{
		"exact match":        {version: "v1.1.0", want: "v1.1.0"},
		"without v prefix":   {version: "1.1.0", want: "v1.1.0"},
		"uppercase v prefix": {version: "V1.1.0", want: "v1.1.0"},
		"added v prefix":     {version: "v1.0.0", want: "1.0.0"},
		"unreleased":         {version: "Unreleased", want: UnreleasedVersion},
		"surrounding spaces": {version: " 1.1.0 ", want: "v1.1.0"},
		"missing":            {version: "2.0.0", wantErr: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			v, err := c.GetVersion(tt.version)
			if tt.wantErr {
				require.Error(t, err)
				var notFound *VersionNotFoundError
				require.True(t, errors.As(err, &notFound))
				assert.Equal(t, tt.version, notFound.Version)
				assert.Equal(t, []string{UnreleasedVersion, "v1.1.0", "1.0.0"}, notFound.AvailableVersions)
				assert.Contains(t, err.Error(), "available: unreleased, v1.1.0, 1.0.0")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Version)
		})
	}
}

func TestLatest(t *testing.T) {
	c := &Changelog{RepositoryURL: testRepoURL, Versions: []Version{
		{Version: "v3.0.0"}, {Version: "v2.0.0"}, {Version: "v1.0.0"},
	}}

	tests := map[string]struct {
		n    int
		want []string
	}{
		"first two": {n: 2, want: []string{"v3.0.0", "v2.0.0"}},
		"zero":      {n: 0, want: []string{"v3.0.0", "v2.0.0", "v1.0.0"}},
		"too many":  {n: 10, want: []string{"v3.0.0", "v2.0.0", "v1.0.0"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got := c.Latest(tt.n)
			assert.Equal(t, tt.want, got.ListVersions())
			assert.Equal(t, testRepoURL, got.RepositoryURL)
		})
	}
}
