package semver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mustParse parses a version known to be valid.
func mustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

func TestIsValid(t *testing.T) {
	tests := map[string]bool{
		"1.0.0":            true,
		"v1.0.0":           true,
		"0.6.0-rc.1":       true,
		"1.2.3+build.5":    true,
		"v2.0.0-beta+exp":  true,
		"1.0":              false,
		"v1":               false,
		"01.0.0":           false,
		"latest":           false,
		"":                 false,
		"release-1.0.0":    false,
		"1.0.0.0":          false,
		"vv1.0.0":          false,
		"1.0.0-":           false,
		"1.0.0-rc..1":      false,
		"10.20.30-alpha.1": true,
	}

	for input, want := range tests {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, want, IsValid(input))
		})
	}
}

func TestParse(t *testing.T) {
	v, err := Parse("v1.2.3-rc.4+sha.abc")
	require.NoError(t, err)
	assert.Equal(t, Version{Major: 1, Minor: 2, Patch: 3, Prerelease: "rc.4", Build: "sha.abc"}, v)
	assert.Equal(t, "1.2.3-rc.4+sha.abc", v.String())
	assert.Equal(t, "rc", v.PrereleaseToken())

	_, err = Parse("1.2")
	assert.Error(t, err)
}

func TestBump(t *testing.T) {
	v := mustParse("1.2.3-rc.1")

	assert.Equal(t, "2.0.0", v.BumpMajor().String())
	assert.Equal(t, "1.3.0", v.BumpMinor().String())
	assert.Equal(t, "1.2.4", v.BumpPatch().String())
	assert.Equal(t, "1.2.3", v.Finalize().String())
}

func TestBumpPrerelease(t *testing.T) {
	tests := map[string]struct {
		version string
		token   string
		want    string
	}{
		"start rc":          {version: "1.2.3", token: "rc", want: "1.2.3-rc.1"},
		"continue rc":       {version: "1.2.3-rc.1", token: "rc", want: "1.2.3-rc.2"},
		"double digit":      {version: "1.2.3-rc.9", token: "rc", want: "1.2.3-rc.10"},
		"empty token":       {version: "1.2.3", token: "", want: "1.2.3-1"},
		"keeps own token":   {version: "1.2.3-beta.1", token: "rc", want: "1.2.3-beta.2"},
		"no trailing digit": {version: "1.2.3-alpha", token: "rc", want: "1.2.3-alpha.1"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, mustParse(tt.version).BumpPrerelease(tt.token).String())
		})
	}
}

func TestCompare(t *testing.T) {
	assert.Equal(t, -1, mustParse("1.0.0-rc.1").Compare(mustParse("1.0.0")))
	assert.Equal(t, 1, mustParse("1.10.0").Compare(mustParse("1.9.9")))
	assert.Equal(t, 0, mustParse("v1.0.0").Compare(mustParse("1.0.0")))
	assert.True(t, Zero.IsZero())
}

func TestSortDescending(t *testing.T) {
	names := []string{"v1.0.0", "nightly", "v1.10.0", "1.2.0", "v2.0.0-rc.1", "stable"}
	SortDescending(names)
	assert.Equal(t, []string{"v2.0.0-rc.1", "v1.10.0", "1.2.0", "v1.0.0", "nightly", "stable"}, names)
}
