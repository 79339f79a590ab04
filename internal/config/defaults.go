package config

// GetDefaultConfigTemplate returns a fully commented config template
// that helps users understand all available options
func GetDefaultConfigTemplate() string {
	return `# cz Configuration
# See 'cz config -h' for commands

repository_url: ""                    # Web URL of the repository, used for changelog links
tag_format: "{version}"               # Release tag name, e.g. "v{version}"
workers: 0                            # Parallel message parsing (0 = one per CPU, max 64)

# Commit types in registration order.
#   title: changelog section (types without a title stay out of the changelog)
#   bump:  patch | minor (major only comes from breaking commits)
types:
  - name: feat
    title: Features
    bump: minor
    description: A new feature
  - name: fix
    title: Bug Fixes
    bump: patch
    description: A bug fix
  - name: perf
    title: Performance Improvements
    bump: patch
    description: A code change that improves performance
  - name: refactor
    title: Code Refactoring
    bump: patch
    description: A code change that neither fixes a bug nor adds a feature
  - name: build
    description: Changes that affect the build system or external dependencies
  - name: ci
    description: Changes to CI configuration files and scripts
  - name: docs
    description: Documentation only changes
  - name: style
    description: Changes that do not affect the meaning of the code
  - name: test
    description: Adding missing tests or correcting existing tests
  - name: wip
    description: Work in progress
  - name: revert
    title: Revert
    description: Reverts a previous commit
  - name: bump
    description: A version bump
  - name: chore
    description: Other changes that don't modify src or test files

# Footer prefixes in the order they must appear: BREAKING CHANGE | Closes | Revert Hash
footers:
  - BREAKING CHANGE
  - Closes
  - Revert Hash
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	return map[string]interface{}{
		"repository_url": "",
		"tag_format":     "{version}",
		// workers: 0 lets the history builder use one worker per CPU.
		"workers": 0,
		"types": []map[string]interface{}{
			defaultType("feat", "Features", "minor", "A new feature"),
			defaultType("fix", "Bug Fixes", "patch", "A bug fix"),
			defaultType("perf", "Performance Improvements", "patch", "A code change that improves performance"),
			defaultType("refactor", "Code Refactoring", "patch", "A code change that neither fixes a bug nor adds a feature"),
			defaultType("build", "", "", "Changes that affect the build system or external dependencies"),
			defaultType("ci", "", "", "Changes to CI configuration files and scripts"),
			defaultType("docs", "", "", "Documentation only changes"),
			defaultType("style", "", "", "Changes that do not affect the meaning of the code"),
			defaultType("test", "", "", "Adding missing tests or correcting existing tests"),
			defaultType("wip", "", "", "Work in progress"),
			defaultType("revert", "Revert", "", "Reverts a previous commit"),
			defaultType("bump", "", "", "A version bump"),
			defaultType("chore", "", "", "Other changes that don't modify src or test files"),
		},
		"footers": []string{"BREAKING CHANGE", "Closes", "Revert Hash"},
	}
}

func defaultType(name, title, bump, description string) map[string]interface{} {
	return map[string]interface{}{
		"name":        name,
		"title":       title,
		"bump":        bump,
		"description": description,
	}
}
