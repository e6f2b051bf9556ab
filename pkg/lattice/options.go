package lattice

import "github.com/nala-lattice/nala-go/pkg/log"

// SectionDefinition names a section and its members in travel order.
type SectionDefinition struct {
	Name    string   `yaml:"name" json:"name"`
	Members []string `yaml:"members" json:"members"`
}

// SectionDefinitions is an ordered list of section definitions.
type SectionDefinitions []SectionDefinition

// Names returns the defined section names in order.
func (d SectionDefinitions) Names() []string {
	out := make([]string, len(d))
	for i, s := range d {
		out[i] = s.Name
	}
	return out
}

// LayoutDefinition names a beam path and its sections in travel order.
type LayoutDefinition struct {
	Name     string   `yaml:"name" json:"name"`
	Sections []string `yaml:"sections" json:"sections"`
}

// LayoutDefinitions lists beam paths and the default one.
type LayoutDefinitions struct {
	Layouts []LayoutDefinition `yaml:"layouts" json:"layouts"`
	Default string             `yaml:"default_layout" json:"default_layout"`
}

// Option configures a Model.
type Option func(*config)

type config struct {
	sections SectionDefinitions
	layouts  LayoutDefinitions
	logger   log.Logger
}

// WithSections supplies explicit section definitions. Machine areas not
// covered by them are still inferred.
func WithSections(defs SectionDefinitions) Option {
	return func(c *config) {
		c.sections = append(SectionDefinitions(nil), defs...)
	}
}

// WithLayouts supplies beam path definitions and the default path.
func WithLayouts(defs LayoutDefinitions) Option {
	return func(c *config) {
		c.layouts = LayoutDefinitions{
			Layouts: append([]LayoutDefinition(nil), defs.Layouts...),
			Default: defs.Default,
		}
	}
}

// WithLogger sets the lattice event logger.
func WithLogger(l log.Logger) Option {
	return func(c *config) {
		if l != nil {
			c.logger = l
		}
	}
}
