package message

import (
	"fmt"
	"regexp"
	"strings"
)

// CommitType is a registered commit type such as "feat" or "fix".
// Types compare by name.
type CommitType struct {
	Name string
}

func (t CommitType) String() string {
	return t.Name
}

// Message is a parsed conventional commit message.
type Message struct {
	Type       CommitType
	Scope      string // empty when the first line has no (scope)
	IsBreaking bool
	Subject    string
	Body       string // empty for single-line messages
	// Footers holds one validated value per footer prefix, in the order
	// the prefixes were first encountered in the message.
	Footers []Footer
}

// Footer returns the footer value registered under prefix, if present.
func (m *Message) Footer(prefix string) (Footer, bool) {
	for _, f := range m.Footers {
		if f.Prefix() == prefix {
			return f, true
		}
	}
	return nil, false
}

// BreakingChange returns the breaking-change footer of the message, if any.
func (m *Message) BreakingChange() (*BreakingChange, bool) {
	for _, f := range m.Footers {
		if bc, ok := f.(*BreakingChange); ok {
			return bc, true
		}
	}
	return nil, false
}

// Closes returns the issue-closing footer of the message, if any.
func (m *Message) Closes() (*Closes, bool) {
	for _, f := range m.Footers {
		if c, ok := f.(*Closes); ok {
			return c, true
		}
	}
	return nil, false
}

// Header returns the first line of the message.
func (m *Message) Header() string {
	var sb strings.Builder
	sb.WriteString(m.Type.Name)
	if m.Scope != "" {
		sb.WriteString("(" + m.Scope + ")")
	}
	if m.IsBreaking {
		sb.WriteString("!")
	}
	sb.WriteString(": ")
	sb.WriteString(m.Subject)
	return sb.String()
}

// String renders the message back into commit message text.
func (m *Message) String() string {
	msg := m.Header()
	if m.Body != "" {
		msg += "\n\n" + m.Body
	}
	if len(m.Footers) > 0 {
		lines := make([]string, len(m.Footers))
		for i, f := range m.Footers {
			lines[i] = f.String()
		}
		msg += "\n\n" + strings.Join(lines, "\n")
	}
	return msg
}

var subjectRefPattern = regexp.MustCompile(`#(\d+)`)

// SubjectMarkdown returns the subject with every #N reference turned into
// a markdown link to the pull request N under url.
func (m *Message) SubjectMarkdown(url string) string {
	url = strings.TrimSuffix(url, "/")
	return subjectRefPattern.ReplaceAllStringFunc(m.Subject, func(ref string) string {
		return fmt.Sprintf("[%s](%s/pull/%s)", ref, url, ref[1:])
	})
}
