package config

import (
	"fmt"
	"sort"

	"github.com/ariel-frischer/cz/internal/message"
	"github.com/ariel-frischer/cz/internal/release"
)

// KnownFooters returns the footer prefixes that can be listed under "footers", sorted.
func KnownFooters() []string {
	specs := message.BuiltinSpecs()
	names := make([]string, 0, len(specs))
	for name := range specs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func knownFooter(name string) (message.FooterSpec, bool) {
	spec, ok := message.BuiltinSpecs()[name]
	return spec, ok
}

// CommitTypes returns the configured commit types in registration order.
func (c *Configuration) CommitTypes() []message.CommitType {
	types := make([]message.CommitType, len(c.Types))
	for i, t := range c.Types {
		types[i] = message.CommitType{Name: t.Name}
	}
	return types
}

// Titles returns the changelog sections of the types that have a title.
func (c *Configuration) Titles() []release.Title {
	var titles []release.Title
	for _, t := range c.Types {
		if t.Title == "" {
			continue
		}
		titles = append(titles, release.Title{Type: message.CommitType{Name: t.Name}, Title: t.Title})
	}
	return titles
}

// BumpMap returns the increment of every type that calls for one.
func (c *Configuration) BumpMap() (release.BumpMap, error) {
	bump := release.BumpMap{}
	for _, t := range c.Types {
		sev, err := release.ParseSeverity(t.Bump)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", t.Name, err)
		}
		if sev == release.Major {
			return nil, fmt.Errorf("type %q: major increments are reserved for breaking changes", t.Name)
		}
		if sev != release.None {
			bump[t.Name] = sev
		}
	}
	return bump, nil
}

// FooterRegistry returns the configured footers in their required order.
func (c *Configuration) FooterRegistry() (*message.Registry, error) {
	specs := make([]message.FooterSpec, 0, len(c.Footers))
	for _, name := range c.Footers {
		spec, ok := knownFooter(name)
		if !ok {
			return nil, fmt.Errorf("unknown footer %q", name)
		}
		specs = append(specs, spec)
	}
	return message.NewRegistry(specs...)
}

// Parser returns a commit message parser for the configured types and footers.
func (c *Configuration) Parser() (*message.Parser, error) {
	footers, err := c.FooterRegistry()
	if err != nil {
		return nil, fmt.Errorf("building footer registry: %w", err)
	}
	parser, err := message.NewParser(c.CommitTypes(), footers)
	if err != nil {
		return nil, fmt.Errorf("building parser: %w", err)
	}
	return parser, nil
}
