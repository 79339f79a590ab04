package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigShow(t *testing.T) {
	tests := map[string]struct {
		projectConfig string
		env           map[string]string
		want          []string
	}{
		"defaults": {
			want: []string{"tag_format:", "{version}", "- name: feat", "title: Features", "- BREAKING CHANGE"},
		},
		"project config": {
			projectConfig: "tag_format: v{version}\nworkers: 4\n",
			want:          []string{"v{version}", "workers: 4"},
		},
		"environment": {
			projectConfig: "workers: 4\n",
			env:           map[string]string{"CZ_WORKERS": "8"},
			want:          []string{"workers: 8"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := newFixtureRepo(t)
			if tt.projectConfig != "" {
				writeProjectConfig(t, dir, tt.projectConfig)
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			stdout, _, err := runCLI(t, "", "config", "show", "-C", dir)
			require.NoError(t, err)
			for _, want := range tt.want {
				assert.Contains(t, stdout, want)
			}
		})
	}
}

func TestConfigShow_Invalid(t *testing.T) {
	dir := newFixtureRepo(t)
	writeProjectConfig(t, dir, "tag_format: release\n")

	_, _, err := runCLI(t, "", "config", "show", "-C", dir)
	require.Error(t, err)
	assert.Equal(t, ExitConfigurationInvalid, ExitCode(err))
	assert.Contains(t, err.Error(), "tag_format")
}

func TestConfigShow_ExplicitPathMissing(t *testing.T) {
	dir := newFixtureRepo(t)

	_, _, err := runCLI(t, "", "config", "show", "-C", dir, "--config", filepath.Join(dir, "nope.yml"))
	require.Error(t, err)
	assert.Equal(t, ExitConfigurationInvalid, ExitCode(err))
	assert.Contains(t, err.Error(), "config file not found")
}

func TestConfigInit(t *testing.T) {
	dir := newFixtureRepo(t)
	path := filepath.Join(dir, ".cz", "config.yml")

	stdout, _, err := runCLI(t, "", "config", "init", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Wrote "+path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# cz Configuration")

	_, _, err = runCLI(t, "", "config", "init", "-C", dir)
	require.Error(t, err)
	assert.Equal(t, ExitConfigurationInvalid, ExitCode(err))

	_, _, err = runCLI(t, "", "config", "init", "-C", dir, "--force")
	require.NoError(t, err)
}

func TestConfigInit_FromSubdirectory(t *testing.T) {
	dir := newFixtureRepo(t, fixtureCommit{msg: "feat: initial"})
	sub := filepath.Join(dir, "pkg", "deep")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	_, _, err := runCLI(t, "", "config", "init", "-C", sub)
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dir, ".cz", "config.yml"))
}

func TestConfigInit_User(t *testing.T) {
	dir := newFixtureRepo(t)
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	_, _, err := runCLI(t, "", "config", "init", "-C", dir, "--user")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(configHome, "cz", "config.yml"))
	assert.NoFileExists(t, filepath.Join(dir, ".cz", "config.yml"))
}

func TestConfigMigrate(t *testing.T) {
	tests := map[string]struct {
		args        []string
		wantYAML    bool
		wantJSON    bool
		wantBackup  bool
		wantMessage string
	}{
		"migrate": {
			wantYAML:    true,
			wantBackup:  true,
			wantMessage: "Migrated",
		},
		"dry run": {
			args:        []string{"--dry-run"},
			wantJSON:    true,
			wantMessage: "Would migrate",
		},
		"keep json": {
			args:        []string{"--keep-json"},
			wantYAML:    true,
			wantJSON:    true,
			wantMessage: "Migrated",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := newFixtureRepo(t)
			jsonPath := filepath.Join(dir, ".cz", "config.json")
			require.NoError(t, os.MkdirAll(filepath.Dir(jsonPath), 0o755))
			require.NoError(t, os.WriteFile(jsonPath, []byte(`{"tag_format": "v{version}"}`), 0o644))

			stdout, _, err := runCLI(t, "", append([]string{"config", "migrate", "-C", dir}, tt.args...)...)
			require.NoError(t, err)
			assert.Contains(t, stdout, tt.wantMessage)

			yamlPath := filepath.Join(dir, ".cz", "config.yml")
			if tt.wantYAML {
				assert.FileExists(t, yamlPath)
			} else {
				assert.NoFileExists(t, yamlPath)
			}
			if tt.wantJSON {
				assert.FileExists(t, jsonPath)
			} else {
				assert.NoFileExists(t, jsonPath)
			}
			if tt.wantBackup {
				assert.FileExists(t, jsonPath+".bak")
			}
		})
	}
}

func TestConfigMigrate_NothingToMigrate(t *testing.T) {
	dir := newFixtureRepo(t)

	stdout, _, err := runCLI(t, "", "config", "migrate", "-C", dir)
	require.NoError(t, err)
	assert.Contains(t, stdout, "No JSON config found")
}
