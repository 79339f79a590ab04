package message

import (
	"fmt"
	"strings"
)

// Footer is a validated footer value stored on a Message.
type Footer interface {
	// Prefix returns the registry prefix the footer was parsed under.
	Prefix() string
	// String returns the footer as it appears in the message.
	String() string
}

// Validator builds a typed footer value from every occurrence of one prefix.
// Each occurrence holds the raw lines it spans, the first line carrying the
// "<prefix>:" marker. The message has its type, flags, subject and body set.
type Validator func(msg *Message, occurrences [][]string) (Footer, error)

// FooterSpec describes one footer kind.
type FooterSpec struct {
	Prefix string
	// MaxOccurrences limits how often the footer may appear; 0 is unbounded.
	MaxOccurrences int
	// MaxLines limits the non-blank lines of one occurrence; 0 is unbounded.
	MaxLines int
	Validate Validator
}

// Registry is an ordered set of footer specifications. The order is the
// order footers must appear in within a message.
type Registry struct {
	specs []FooterSpec
	index map[string]int
}

// NewRegistry creates a registry holding specs in the given order.
func NewRegistry(specs ...FooterSpec) (*Registry, error) {
	r := &Registry{index: make(map[string]int)}
	for _, spec := range specs {
		if err := r.Register(spec); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Register appends spec to the end of the registry.
func (r *Registry) Register(spec FooterSpec) error {
	if strings.TrimSpace(spec.Prefix) == "" {
		return fmt.Errorf("footer prefix cannot be empty")
	}
	if strings.Contains(spec.Prefix, ":") {
		return fmt.Errorf("footer prefix %q cannot contain ':'", spec.Prefix)
	}
	if spec.MaxOccurrences < 0 || spec.MaxLines < 0 {
		return fmt.Errorf("footer %q: limits cannot be negative", spec.Prefix)
	}
	if spec.Validate == nil {
		return fmt.Errorf("footer %q has no validator", spec.Prefix)
	}
	if _, ok := r.index[spec.Prefix]; ok {
		return fmt.Errorf("footer %q already registered", spec.Prefix)
	}
	r.index[spec.Prefix] = len(r.specs)
	r.specs = append(r.specs, spec)
	return nil
}

// Prefixes returns the registered prefixes in registry order.
func (r *Registry) Prefixes() []string {
	out := make([]string, len(r.specs))
	for i, spec := range r.specs {
		out[i] = spec.Prefix
	}
	return out
}

// Lookup returns the spec registered under prefix and its position.
func (r *Registry) Lookup(prefix string) (FooterSpec, int, bool) {
	i, ok := r.index[prefix]
	if !ok {
		return FooterSpec{}, -1, false
	}
	return r.specs[i], i, true
}

// match returns the position of the first spec whose "<prefix>:" starts line.
func (r *Registry) match(line string) (int, bool) {
	for i, spec := range r.specs {
		if strings.HasPrefix(line, spec.Prefix+":") {
			return i, true
		}
	}
	return -1, false
}
