// Package config provides hierarchical configuration management for cz using koanf.
// Configuration is loaded with priority: environment variables (CZ_*) > project config
// (.cz/config.yml) > user config (~/.config/cz/config.yml) > defaults. The project config
// may still be the legacy .cz/config.json, which can be migrated to YAML.
package config

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "CZ_"

// TypeConfig registers a commit type.
type TypeConfig struct {
	Name string `koanf:"name" yaml:"name" json:"name" validate:"required,commit_type"`
	// Title registers a changelog section for the type. Types without a
	// title are accepted by the parser but left out of the changelog.
	Title string `koanf:"title" yaml:"title,omitempty" json:"title,omitempty"`
	// Bump is the increment the type calls for: "", "patch" or "minor".
	// Major increments only come from breaking commits.
	Bump        string `koanf:"bump" yaml:"bump,omitempty" json:"bump,omitempty" validate:"omitempty,oneof=patch minor"`
	Description string `koanf:"description" yaml:"description,omitempty" json:"description,omitempty"`
}

// Configuration represents the cz configuration
type Configuration struct {
	// RepositoryURL is the web URL of the repository, used for changelog links.
	// Can be set via CZ_REPOSITORY_URL env var.
	RepositoryURL string `koanf:"repository_url" yaml:"repository_url,omitempty" json:"repository_url,omitempty" validate:"omitempty,url"`

	// TagFormat is the name of release tags, {version} being replaced by the version.
	// Can be set via CZ_TAG_FORMAT env var.
	TagFormat string `koanf:"tag_format" yaml:"tag_format" json:"tag_format" validate:"required,contains={version}"`

	// Workers bounds parallel commit message parsing, 0 meaning one per CPU.
	Workers int `koanf:"workers" yaml:"workers" json:"workers" validate:"min=0,max=64"`

	// Types lists the commit types in registration order.
	Types []TypeConfig `koanf:"types" yaml:"types" json:"types" validate:"required,min=1,unique=Name,dive"`

	// Footers lists the footer prefixes in the order they must appear in a message.
	Footers []string `koanf:"footers" yaml:"footers" json:"footers" validate:"unique,dive,required"`
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ProjectDir is the directory holding .cz/ (default: current directory)
	ProjectDir string
	// ProjectConfigPath overrides the project config path (default: <ProjectDir>/.cz/config.yml)
	ProjectConfigPath string
	// SkipUserConfig ignores the user-level config file
	SkipUserConfig bool
	// WarningWriter receives deprecation warnings (default: os.Stderr)
	WarningWriter io.Writer
	// SkipWarnings suppresses deprecation warnings
	SkipWarnings bool
}

// Load loads configuration from user, project, and environment sources.
// Priority: Environment variables > Project config > User config > Defaults
func Load(projectDir string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ProjectDir: projectDir})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	warningWriter := getWarningWriter(opts.WarningWriter)

	loadDefaults(k)

	if !opts.SkipUserConfig {
		if err := loadUserConfig(k); err != nil {
			return nil, err
		}
	}

	if err := loadProjectConfig(k, opts, warningWriter); err != nil {
		return nil, err
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	return finalizeConfig(k)
}

// getWarningWriter returns the warning writer or defaults to stderr
func getWarningWriter(w io.Writer) io.Writer {
	if w == nil {
		return os.Stderr
	}
	return w
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadUserConfig loads the user-level YAML config if it exists.
func loadUserConfig(k *koanf.Koanf) error {
	userYAMLPath, err := UserConfigPath()
	if err != nil || !fileExists(userYAMLPath) {
		return nil
	}
	if err := loadYAMLConfig(k, userYAMLPath, "user"); err != nil {
		return fmt.Errorf("loading user YAML config: %w", err)
	}
	return nil
}

// loadProjectConfig loads project-level config (YAML preferred, legacy JSON supported).
// An explicit path must exist. Warns if both YAML and JSON exist (YAML used, JSON
// ignored) or if only legacy JSON exists.
func loadProjectConfig(k *koanf.Koanf, opts LoadOptions, warningWriter io.Writer) error {
	if opts.ProjectConfigPath != "" {
		if !fileExists(opts.ProjectConfigPath) {
			return &NotFoundError{Path: opts.ProjectConfigPath}
		}
		if strings.HasSuffix(opts.ProjectConfigPath, ".json") {
			return loadJSONConfig(k, opts.ProjectConfigPath, "project")
		}
		if err := loadYAMLConfig(k, opts.ProjectConfigPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		return nil
	}

	projectYAMLPath := ProjectConfigPath(opts.ProjectDir)
	legacyProjectPath := LegacyProjectConfigPath(opts.ProjectDir)
	projectYAMLExists := fileExists(projectYAMLPath)
	legacyProjectExists := fileExists(legacyProjectPath)

	if projectYAMLExists {
		if err := loadYAMLConfig(k, projectYAMLPath, "project"); err != nil {
			return fmt.Errorf("loading project YAML config: %w", err)
		}
		if legacyProjectExists && !opts.SkipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Legacy JSON config found at %s (ignored, using %s)\n", legacyProjectPath, projectYAMLPath)
			fmt.Fprintf(warningWriter, "  Run 'cz config migrate' to remove the legacy file.\n\n")
		}
	} else if legacyProjectExists {
		if err := loadJSONConfig(k, legacyProjectPath, "project"); err != nil {
			return fmt.Errorf("loading legacy project JSON config: %w", err)
		}
		if !opts.SkipWarnings {
			fmt.Fprintf(warningWriter, "Warning: Using deprecated JSON config at %s\n", legacyProjectPath)
			fmt.Fprintf(warningWriter, "  Run 'cz config migrate' to migrate to YAML format.\n\n")
		}
	}
	return nil
}

// loadYAMLConfig validates and loads a YAML config file
func loadYAMLConfig(k *koanf.Koanf, path, configType string) error {
	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", configType, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadJSONConfig loads a JSON config file
func loadJSONConfig(k *koanf.Koanf, path, configType string) error {
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", configType, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.Provider(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// finalizeConfig unmarshals and validates the merged configuration
func finalizeConfig(k *koanf.Koanf) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := ValidateConfigValues(&cfg, "config"); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// fileExists returns true if the file exists and is readable
func fileExists(path string) bool {
	if path == "" {
		return false
	}
	_, err := os.Stat(path)
	return err == nil
}

// envTransform converts environment variable names to config keys
// Example: CZ_TAG_FORMAT -> tag_format
func envTransform(s string) string {
	return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
}

// NotFoundError reports an explicitly requested config file that does not exist.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config file not found: %s", e.Path)
}
