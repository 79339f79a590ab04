package changelog

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// RenderYAML writes c as a YAML document for tools that post-process release notes.
func RenderYAML(c *Changelog, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(c); err != nil {
		return fmt.Errorf("encoding changelog: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encoding changelog: %w", err)
	}
	return nil
}

// LoadYAML reads a changelog written by RenderYAML.
func LoadYAML(r io.Reader) (*Changelog, error) {
	var c Changelog
	if err := yaml.NewDecoder(r).Decode(&c); err != nil {
		return nil, fmt.Errorf("decoding changelog: %w", err)
	}
	return &c, nil
}
