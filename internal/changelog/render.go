package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/cz/internal/message"
)

// RenderMarkdown generates a markdown changelog from c: one section per
// version, newest first, with the commits grouped under their type titles and
// a "BREAKING CHANGES" list. With a repository URL, commits, issues and pull
// requests are linked and compare links are appended.
//
// The function is idempotent - given the same input, it produces identical output.
func RenderMarkdown(c *Changelog, w io.Writer) error {
	if err := renderHeader(w); err != nil {
		return fmt.Errorf("rendering header: %w", err)
	}

	for i := range c.Versions {
		if err := renderVersion(&c.Versions[i], c.RepositoryURL, w); err != nil {
			return fmt.Errorf("rendering version %s: %w", c.Versions[i].Version, err)
		}
	}

	if err := renderFooterLinks(c, w); err != nil {
		return fmt.Errorf("rendering footer links: %w", err)
	}

	return nil
}

// RenderMarkdownString is a convenience function that renders to a string.
func RenderMarkdownString(c *Changelog) (string, error) {
	var b strings.Builder
	if err := RenderMarkdown(c, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderHeader writes the document title.
func renderHeader(w io.Writer) error {
	_, err := io.WriteString(w, "# Changelog\n")
	return err
}

// renderVersion writes a single version section with all its changes.
func renderVersion(v *Version, repoURL string, w io.Writer) error {
	if _, err := io.WriteString(w, "\n"+formatVersionHeader(v)+"\n"); err != nil {
		return err
	}

	for _, s := range v.Sections {
		if err := renderSection(&s, repoURL, w); err != nil {
			return err
		}
	}

	if len(v.Notes) > 0 {
		if _, err := io.WriteString(w, "\n### BREAKING CHANGES\n"); err != nil {
			return err
		}
		for _, note := range v.Notes {
			if _, err := io.WriteString(w, "- "+indentContinuation(note)+"\n"); err != nil {
				return err
			}
		}
	}

	return nil
}

// formatVersionHeader formats the version header line.
func formatVersionHeader(v *Version) string {
	if v.IsUnreleased() {
		return "## [Unreleased]"
	}
	return fmt.Sprintf("## [%s] - %s", v.Version, v.Date)
}

// renderSection writes a single commit type section with its entries.
func renderSection(s *Section, repoURL string, w io.Writer) error {
	if _, err := io.WriteString(w, "\n### "+s.Title+"\n"); err != nil {
		return err
	}

	for _, e := range s.Entries {
		if _, err := io.WriteString(w, "- "+formatEntry(e, repoURL)+"\n"); err != nil {
			return err
		}
	}

	return nil
}

// formatEntry renders "**scope:** subject (hash), closes #1".
func formatEntry(e Entry, repoURL string) string {
	var b strings.Builder
	repoURL = strings.TrimSuffix(repoURL, "/")

	if e.Scope != "" {
		b.WriteString("**" + e.Scope + ":** ")
	}
	if e.Breaking {
		b.WriteString("⚠ ")
	}
	b.WriteString(linkPullRequests(e.Subject, repoURL))

	if repoURL != "" && e.LongHash != "" {
		fmt.Fprintf(&b, " ([%s](%s/commit/%s))", e.Hash, repoURL, e.LongHash)
	} else if e.Hash != "" {
		fmt.Fprintf(&b, " (%s)", e.Hash)
	}

	if len(e.Closes) > 0 {
		b.WriteString(", closes " + formatIssues(e.Closes, repoURL))
	}

	return b.String()
}

// linkPullRequests links the #N references of a subject when a repository URL is known.
func linkPullRequests(subject, repoURL string) string {
	if repoURL == "" {
		return subject
	}
	return (&message.Message{Subject: subject}).SubjectMarkdown(repoURL)
}

// formatIssues renders closed issues, as links when a repository URL is known.
func formatIssues(issues []int, repoURL string) string {
	if repoURL != "" {
		return (&message.Closes{Issues: issues}).Markdown(repoURL)
	}
	refs := make([]string, len(issues))
	for i, n := range issues {
		refs[i] = fmt.Sprintf("#%d", n)
	}
	return strings.Join(refs, ", ")
}

// indentContinuation indents the continuation lines of a multi-line note so
// they stay inside the list item.
func indentContinuation(note string) string {
	return strings.ReplaceAll(note, "\n", "\n  ")
}

// renderFooterLinks writes the version comparison links at the end of the file.
func renderFooterLinks(c *Changelog, w io.Writer) error {
	repoURL := strings.TrimSuffix(c.RepositoryURL, "/")
	if len(c.Versions) == 0 || repoURL == "" {
		return nil
	}

	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	for _, v := range c.Versions {
		if link := formatVersionLink(v, repoURL); link != "" {
			if _, err := io.WriteString(w, link+"\n"); err != nil {
				return err
			}
		}
	}
	return nil
}

// formatVersionLink creates a single version comparison link.
func formatVersionLink(v Version, repoURL string) string {
	if v.IsUnreleased() {
		if v.Previous != "" {
			return fmt.Sprintf("[Unreleased]: %s/compare/%s...HEAD", repoURL, v.Previous)
		}
		return ""
	}

	if v.Previous != "" {
		return fmt.Sprintf("[%s]: %s/compare/%s...%s", v.Version, repoURL, v.Previous, v.Version)
	}
	return fmt.Sprintf("[%s]: %s/releases/tag/%s", v.Version, repoURL, v.Version)
}
