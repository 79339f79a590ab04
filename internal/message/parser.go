package message

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// Parser parses commit messages against a fixed set of commit types and
// footer specs.
type Parser struct {
	types     map[string]CommitType
	footers   *Registry
	firstLine *regexp.Regexp
	// anyType accepts the first-line shape with any word as type, to tell
	// unregistered types apart from malformed lines.
	anyType *regexp.Regexp
}

// wordPattern is a run of Unicode letters, digits and underscores.
const wordPattern = `[\p{L}\p{N}_]+`

var anyTypePattern = regexp.MustCompile(`^(` + wordPattern + `)(?:\(` + wordPattern + `\))?!?: \S.*$`)

// NewParser creates a Parser for the given commit types and footer registry.
// A nil registry means no footers are recognized.
func NewParser(types []CommitType, footers *Registry) (*Parser, error) {
	if len(types) == 0 {
		return nil, fmt.Errorf("at least one commit type is required")
	}
	if footers == nil {
		footers = &Registry{index: make(map[string]int)}
	}

	byName := make(map[string]CommitType, len(types))
	names := make([]string, 0, len(types))
	for _, t := range types {
		if t.Name == "" {
			return nil, fmt.Errorf("commit type name cannot be empty")
		}
		if _, ok := byName[t.Name]; ok {
			return nil, fmt.Errorf("commit type %q registered twice", t.Name)
		}
		byName[t.Name] = t
		names = append(names, regexp.QuoteMeta(t.Name))
	}

	pattern := `^(?P<type>` + strings.Join(names, "|") + `)` +
		`(?:\((?P<scope>` + wordPattern + `)\))?(?P<breaking>!)?: (?P<subject>\S.*)$`

	return &Parser{
		types:     byName,
		footers:   footers,
		firstLine: regexp.MustCompile(pattern),
		anyType:   anyTypePattern,
	}, nil
}

// Parse parses one raw commit message. Trailing whitespace is ignored.
// Every returned error matches ErrInvalidMessage.
func (p *Parser) Parse(text string) (*Message, error) {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimRightFunc(text, unicode.IsSpace)
	lines := strings.Split(text, "\n")

	msg, err := p.parseFirstLine(lines[0])
	if err != nil {
		return nil, err
	}
	if len(lines) == 1 {
		return msg, nil
	}

	if err := requireBlankLine(lines, 1); err != nil {
		return nil, err
	}

	body, occurrences, order, err := p.classify(lines[2:], 2)
	if err != nil {
		return nil, err
	}
	msg.Body = strings.Join(body, "\n")

	for _, prefix := range order {
		spec, _, _ := p.footers.Lookup(prefix)
		footer, err := spec.Validate(msg, occurrences[prefix])
		if err != nil {
			return nil, footerValidationError(prefix, err)
		}
		msg.Footers = append(msg.Footers, footer)
	}

	return msg, nil
}

func (p *Parser) parseFirstLine(line string) (*Message, error) {
	m := p.firstLine.FindStringSubmatch(line)
	if m == nil {
		if am := p.anyType.FindStringSubmatch(line); am != nil {
			return nil, &GrammarError{
				Kind:    UnregisteredType,
				Line:    0,
				Text:    line,
				Message: fmt.Sprintf("commit type %q is not registered", am[1]),
				Hint:    p.firstLineHint(),
			}
		}
		return nil, &GrammarError{
			Kind:    FirstLine,
			Line:    0,
			Text:    line,
			Message: "first line is not in the conventional commits format",
			Hint:    p.firstLineHint(),
		}
	}

	get := func(name string) string {
		return m[p.firstLine.SubexpIndex(name)]
	}
	return &Message{
		Type:       p.types[get("type")],
		Scope:      get("scope"),
		IsBreaking: get("breaking") != "",
		Subject:    get("subject"),
	}, nil
}

func (p *Parser) firstLineHint() string {
	return fmt.Sprintf(`Regex Pattern:
%s
Success example:
- feat: add a
- feat(module_x): add b
- feat!: add c
- feat!: add d #12
Failure example:
- not_type: add a
- feat : add a
  - Don't include extra space
- feat:add a
  - Please put a space to the right of the colon`, p.firstLine.String())
}

const blankLineHint = `Commit Format:
<type>(<scope>): <subject>
<BLANK LINE>
<body>
<BLANK LINE>
<footer>`

// requireBlankLine checks that lines[pos] is the only blank line between
// its neighbours.
func requireBlankLine(lines []string, pos int) error {
	if (pos != 0 && lines[pos-1] == "") ||
		lines[pos] != "" ||
		(len(lines)-1 > pos && lines[pos+1] == "") {
		return &GrammarError{
			Kind:    BlankLine,
			Line:    pos,
			Text:    lines[pos],
			Message: "exactly one blank line is required after the subject",
			Hint:    blankLineHint,
		}
	}
	return nil
}

// classify splits the lines after the blank separator into body lines and
// footer occurrences. offset is the index of lines[0] within the message.
func (p *Parser) classify(lines []string, offset int) ([]string, map[string][][]string, []string, error) {
	var body []string
	occurrences := make(map[string][][]string)
	var order []string

	current := -1 // registry position of the open footer, -1 while in the body
	committed := 0
	var open []string

	for i, line := range lines {
		lineNo := offset + i

		if idx, ok := p.footers.match(line); ok {
			spec := p.footers.specs[idx]
			if idx < committed {
				return nil, nil, nil, &FooterError{
					Kind:   FooterOrder,
					Prefix: spec.Prefix,
					Line:   lineNo,
					Text:   line,
					Reason: fmt.Sprintf("must come before %q (footer order: %s)",
						p.footers.specs[committed].Prefix, strings.Join(p.footers.Prefixes(), ", ")),
				}
			}
			if len(open) > 0 && open[len(open)-1] == "" {
				return nil, nil, nil, &FooterError{
					Kind:   FooterBlankBefore,
					Prefix: spec.Prefix,
					Line:   lineNo,
					Text:   line,
					Reason: "footers must not be separated by blank lines",
				}
			}
			if spec.MaxOccurrences > 0 && len(occurrences[spec.Prefix]) >= spec.MaxOccurrences {
				return nil, nil, nil, &FooterError{
					Kind:   FooterOccurrences,
					Prefix: spec.Prefix,
					Line:   lineNo,
					Text:   line,
					Reason: fmt.Sprintf("may appear at most %d time(s)", spec.MaxOccurrences),
				}
			}
			if _, seen := occurrences[spec.Prefix]; !seen {
				order = append(order, spec.Prefix)
			}
			if current >= 0 {
				p.store(occurrences, current, open)
			}
			occurrences[spec.Prefix] = append(occurrences[spec.Prefix], nil)
			open = nil
			committed = idx
			current = idx
		}

		if current < 0 {
			body = append(body, line)
			continue
		}

		spec := p.footers.specs[current]
		if line != "" && spec.MaxLines > 0 && len(open) >= spec.MaxLines {
			return nil, nil, nil, &FooterError{
				Kind:   FooterLines,
				Prefix: spec.Prefix,
				Line:   lineNo,
				Text:   line,
				Reason: fmt.Sprintf("an occurrence may span at most %d line(s)", spec.MaxLines),
			}
		}
		open = append(open, line)
	}

	if len(body) > 0 {
		if body[len(body)-1] != "" {
			return nil, nil, nil, &GrammarError{
				Kind:    BodyNotTerminated,
				Line:    offset + len(body) - 1,
				Text:    body[len(body)-1],
				Message: "the body must end with a blank line",
				Hint:    blankLineHint,
			}
		}
		body = body[:len(body)-1]
	}

	if current >= 0 {
		p.store(occurrences, current, open)
		if len(open) > 0 && open[len(open)-1] == "" {
			return nil, nil, nil, &FooterError{
				Kind:   FooterTrailingBlank,
				Prefix: p.footers.specs[current].Prefix,
				Line:   offset + len(lines) - 1,
				Reason: "the last footer must not end with a blank line",
			}
		}
	}

	return body, occurrences, order, nil
}

// store records open as the latest occurrence of the footer at position idx.
func (p *Parser) store(occurrences map[string][][]string, idx int, open []string) {
	prefix := p.footers.specs[idx].Prefix
	occ := occurrences[prefix]
	occ[len(occ)-1] = open
}

// footerValidationError attaches prefix to an error returned by a validator.
func footerValidationError(prefix string, err error) error {
	var fe *FooterError
	if errors.As(err, &fe) {
		out := *fe
		out.Prefix = prefix
		return &out
	}
	return &FooterError{Kind: FooterValidation, Prefix: prefix, Line: -1, Reason: err.Error()}
}
