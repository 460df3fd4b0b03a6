package domain

import (
	"fmt"
	"regexp"
)

// ProjectConfig holds project-level overrides loaded from .scriptorium.yaml.
// Empty sections fall back to the built-in defaults.
type ProjectConfig struct {
	Structure    Schema                     `yaml:"structure"    json:"structure,omitempty"`
	Templates    map[string]TemplateSpec    `yaml:"templates"    json:"templates,omitempty"`
	Frontmatter  map[string]FrontmatterRule `yaml:"frontmatter"  json:"frontmatter,omitempty"`
	ExcludePaths []string                   `yaml:"exclude_paths" json:"exclude_paths,omitempty"`
}

// DefaultConfig returns a zero-value config that changes nothing.
func DefaultConfig() ProjectConfig {
	return ProjectConfig{}
}

// EffectiveStructure returns the configured schema or the default.
func (c ProjectConfig) EffectiveStructure() Schema {
	if len(c.Structure) > 0 {
		return c.Structure
	}
	return DefaultStructure()
}

// EffectiveTemplates returns the configured template set or the default.
func (c ProjectConfig) EffectiveTemplates() map[string]TemplateSpec {
	if len(c.Templates) > 0 {
		return c.Templates
	}
	return DefaultTemplates()
}

// EffectiveFrontmatterRules returns the configured rules or the default.
func (c ProjectConfig) EffectiveFrontmatterRules() map[string]FrontmatterRule {
	if len(c.Frontmatter) > 0 {
		return c.Frontmatter
	}
	return DefaultFrontmatterRules()
}

// Validate checks the config for invalid values and returns a descriptive
// error. Catches typos before any validation pass runs against them.
func (c ProjectConfig) Validate() error {
	if err := validateSchema(c.Structure, ""); err != nil {
		return err
	}

	for pattern := range c.Frontmatter {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("invalid frontmatter pattern %q: %w", pattern, err)
		}
	}

	return nil
}

func validateSchema(schema Schema, parent string) error {
	for name, node := range schema {
		nodePath := name
		if parent != "" {
			nodePath = parent + "/" + name
		}

		if node.Kind != KindFile && node.Kind != KindDir {
			return fmt.Errorf("schema node %q: unknown type %q (valid: file, dir)", nodePath, node.Kind)
		}
		if node.Kind == KindFile && len(node.Children) > 0 {
			return fmt.Errorf("schema node %q: a file cannot have children", nodePath)
		}
		if err := validateSchema(node.Children, nodePath); err != nil {
			return err
		}
	}
	return nil
}
