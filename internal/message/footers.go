package message

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Built-in footer prefixes.
const (
	BreakingChangePrefix = "BREAKING CHANGE"
	ClosesPrefix         = "Closes"
	RevertHashPrefix     = "Revert Hash"
)

// RevertType is the only commit type a Revert Hash footer is valid on.
const RevertType = "revert"

// BuiltinSpecs returns the built-in footer specs keyed by prefix.
func BuiltinSpecs() map[string]FooterSpec {
	return map[string]FooterSpec{
		BreakingChangePrefix: BreakingChangeSpec(),
		ClosesPrefix:         ClosesSpec(),
		RevertHashPrefix:     RevertHashSpec(),
	}
}

// DefaultRegistry returns a registry with the built-in footers in their
// conventional order: BREAKING CHANGE, Closes, Revert Hash.
func DefaultRegistry() *Registry {
	r, err := NewRegistry(BreakingChangeSpec(), ClosesSpec(), RevertHashSpec())
	if err != nil {
		panic(err)
	}
	return r
}

// BreakingChange is the value of a "BREAKING CHANGE" footer.
type BreakingChange struct {
	// Body is the note text without the prefix.
	Body string
	Raw  string
}

func (b *BreakingChange) Prefix() string { return BreakingChangePrefix }
func (b *BreakingChange) String() string { return b.Raw }

// BreakingChangeSpec describes the BREAKING CHANGE footer: one occurrence,
// any number of lines, only allowed on messages flagged with "!".
// A single-line note is written "BREAKING CHANGE: <text>"; a multi-line note
// has "BREAKING CHANGE:" alone on its first line.
func BreakingChangeSpec() FooterSpec {
	return FooterSpec{
		Prefix:         BreakingChangePrefix,
		MaxOccurrences: 1,
		MaxLines:       0,
		Validate:       validateBreakingChange,
	}
}

func validateBreakingChange(msg *Message, occurrences [][]string) (Footer, error) {
	if !msg.IsBreaking {
		return nil, validationError("breaking-change footer requires the breaking flag (add '!' before ':')")
	}
	lines := occurrences[0]
	raw := strings.Join(lines, "\n")
	head := BreakingChangePrefix + ":"

	if len(lines) == 1 {
		text, ok := strings.CutPrefix(lines[0], head+" ")
		if !ok || strings.TrimSpace(text) == "" {
			return nil, validationError("a single-line note must be written as %q", head+" <text>")
		}
		return &BreakingChange{Body: text, Raw: raw}, nil
	}

	if lines[0] != head {
		return nil, validationError("a multi-line note must start with %q alone on its first line", head)
	}
	return &BreakingChange{Body: strings.Join(lines[1:], "\n"), Raw: raw}, nil
}

// RevertHash is the value of a "Revert Hash" footer.
type RevertHash struct {
	// Hash is the 40-character id of the reverted commit.
	Hash string
	Raw  string
}

func (r *RevertHash) Prefix() string { return RevertHashPrefix }
func (r *RevertHash) String() string { return r.Raw }

var revertHashPattern = regexp.MustCompile(`^` + regexp.QuoteMeta(RevertHashPrefix) + `: ([0-9a-f]{40})$`)

// RevertHashSpec describes the Revert Hash footer: one single-line
// occurrence, only on revert commits.
func RevertHashSpec() FooterSpec {
	return FooterSpec{
		Prefix:         RevertHashPrefix,
		MaxOccurrences: 1,
		MaxLines:       1,
		Validate:       validateRevertHash,
	}
}

func validateRevertHash(msg *Message, occurrences [][]string) (Footer, error) {
	if msg.Type.Name != RevertType {
		return nil, validationError("revert-hash footer is only valid on %q commits", RevertType)
	}
	lines := occurrences[0]
	if len(lines) != 1 {
		return nil, validationError("footer must be a single line")
	}
	m := revertHashPattern.FindStringSubmatch(lines[0])
	if m == nil {
		return nil, validationError("footer text does not match %q", revertHashPattern.String())
	}
	return &RevertHash{Hash: m[1], Raw: lines[0]}, nil
}

// Closes is the value of a "Closes" footer.
type Closes struct {
	// Issues lists the issue numbers in the order they were written.
	Issues []int
	Raw    string
}

func (c *Closes) Prefix() string { return ClosesPrefix }
func (c *Closes) String() string { return c.Raw }

// Markdown renders every issue as a link to url/issues/N, comma separated.
func (c *Closes) Markdown(url string) string {
	url = strings.TrimSuffix(url, "/")
	links := make([]string, len(c.Issues))
	for i, n := range c.Issues {
		links[i] = fmt.Sprintf("[#%d](%s/issues/%d)", n, url, n)
	}
	return strings.Join(links, ", ")
}

var closesPattern = regexp.MustCompile(`^` + regexp.QuoteMeta(ClosesPrefix) + `: #\d+(, #\d+)*$`)

// ClosesSpec describes the Closes footer: one single-line occurrence of the
// form "Closes: #1, #2".
func ClosesSpec() FooterSpec {
	return FooterSpec{
		Prefix:         ClosesPrefix,
		MaxOccurrences: 1,
		MaxLines:       1,
		Validate:       validateCloses,
	}
}

func validateCloses(_ *Message, occurrences [][]string) (Footer, error) {
	lines := occurrences[0]
	if len(lines) != 1 {
		return nil, validationError("footer must be a single line")
	}
	line := lines[0]
	if !closesPattern.MatchString(line) {
		return nil, validationError("footer text does not match %q", closesPattern.String())
	}

	refs := strings.Split(strings.TrimPrefix(line, ClosesPrefix+": "), ", ")
	issues := make([]int, 0, len(refs))
	for _, ref := range refs {
		n, err := strconv.Atoi(strings.TrimPrefix(ref, "#"))
		if err != nil {
			return nil, validationError("invalid issue reference %q", ref)
		}
		issues = append(issues, n)
	}
	return &Closes{Issues: issues, Raw: line}, nil
}
