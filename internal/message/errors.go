package message

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidMessage is matched by every error the Parser returns.
var ErrInvalidMessage = errors.New("invalid commit message")

// GrammarKind identifies which grammar rule a message broke.
type GrammarKind int

const (
	// FirstLine means the subject line does not match <type>(<scope>)!: <subject>.
	FirstLine GrammarKind = iota
	// UnregisteredType means the subject line is well formed but names an unknown type.
	UnregisteredType
	// BlankLine means the subject is not followed by exactly one blank line.
	BlankLine
	// BodyNotTerminated means the body does not end with a blank line.
	BodyNotTerminated
)

// String returns a human-readable name for the grammar kind.
func (k GrammarKind) String() string {
	switch k {
	case FirstLine:
		return "first line"
	case UnregisteredType:
		return "unregistered type"
	case BlankLine:
		return "blank line"
	case BodyNotTerminated:
		return "body"
	default:
		return "grammar"
	}
}

// GrammarError reports a message whose shape does not follow the grammar.
type GrammarError struct {
	Kind GrammarKind
	// Line is the zero-based index of the offending line.
	Line int
	// Text is the offending line.
	Text    string
	Message string
	// Hint is a multi-line usage hint with the accepted pattern and examples.
	Hint string
}

func (e *GrammarError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line+1, e.Message)
}

// Unwrap makes GrammarError match ErrInvalidMessage.
func (e *GrammarError) Unwrap() error {
	return ErrInvalidMessage
}

// FooterKind identifies which footer rule a message broke.
type FooterKind int

const (
	// FooterOrder means a footer appeared before one that precedes it in the registry.
	FooterOrder FooterKind = iota
	// FooterBlankBefore means a new footer follows a blank line inside the previous footer.
	FooterBlankBefore
	// FooterOccurrences means a footer appeared more often than allowed.
	FooterOccurrences
	// FooterLines means a footer occurrence holds more lines than allowed.
	FooterLines
	// FooterTrailingBlank means the last footer ends with a blank line.
	FooterTrailingBlank
	// FooterValidation means a footer validator rejected the footer content.
	FooterValidation
)

// String returns a human-readable name for the footer kind.
func (k FooterKind) String() string {
	switch k {
	case FooterOrder:
		return "order"
	case FooterBlankBefore:
		return "blank line"
	case FooterOccurrences:
		return "occurrences"
	case FooterLines:
		return "lines"
	case FooterTrailingBlank:
		return "trailing blank line"
	case FooterValidation:
		return "validation"
	default:
		return "footer"
	}
}

// FooterError reports a footer block that breaks an ordering, count or
// content rule.
type FooterError struct {
	Kind   FooterKind
	Prefix string
	Line   int // zero-based, -1 when the error is not tied to one line
	// Text is the offending line, if any.
	Text   string
	Reason string
}

func (e *FooterError) Error() string {
	var sb strings.Builder
	if e.Line >= 0 {
		fmt.Fprintf(&sb, "line %d: ", e.Line+1)
	}
	fmt.Fprintf(&sb, "footer %q: %s", e.Prefix, e.Reason)
	return sb.String()
}

// Unwrap makes FooterError match ErrInvalidMessage.
func (e *FooterError) Unwrap() error {
	return ErrInvalidMessage
}

// IsGrammarError returns true if the error is a GrammarError.
func IsGrammarError(err error) bool {
	var ge *GrammarError
	return errors.As(err, &ge)
}

// IsFooterError returns true if the error is a FooterError.
func IsFooterError(err error) bool {
	var fe *FooterError
	return errors.As(err, &fe)
}

// validationError is returned by footer validators; the parser turns it into a
// FooterError carrying the prefix.
func validationError(format string, args ...any) error {
	return &FooterError{Kind: FooterValidation, Line: -1, Reason: fmt.Sprintf(format, args...)}
}
