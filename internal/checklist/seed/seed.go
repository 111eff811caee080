// Package seed holds the built-in checklist definition used to initialize
// a company that has no template yet.
package seed

import (
	_ "embed"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/fieldcheck/fieldcheck-backend/internal/domain"
)

//go:embed default_template.yaml
var defaultTemplateYAML []byte

type Definition struct {
	Name               string `yaml:"name"`
	Description        string `yaml:"description"`
	VersionName        string `yaml:"version_name"`
	VersionDescription string `yaml:"version_description"`
	Items              []Item `yaml:"items"`
}

type Item struct {
	Section    domain.ChecklistSection `yaml:"section"`
	ItemKey    string                  `yaml:"item_key"`
	Label      string                  `yaml:"label"`
	HelpText   string                  `yaml:"help_text"`
	ItemType   domain.ItemType         `yaml:"item_type"`
	Required   bool                    `yaml:"required"`
	SortOrder  int                     `yaml:"sort_order"`
	Validation *Validation             `yaml:"validation"`
	Options    []Option                `yaml:"options"`
}

type Validation struct {
	Min       *int `yaml:"min" json:"min,omitempty"`
	Max       *int `yaml:"max" json:"max,omitempty"`
	MaxLength *int `yaml:"max_length" json:"max_length,omitempty"`
}

type Option struct {
	Value string `yaml:"value" json:"value"`
	Label string `yaml:"label" json:"label"`
}

// DefaultTemplate parses and sanity-checks the embedded definition.
func DefaultTemplate() (*Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(defaultTemplateYAML, &def); err != nil {
		return nil, fmt.Errorf("parse default checklist definition: %w", err)
	}
	if def.Name == "" || len(def.Items) == 0 {
		return nil, fmt.Errorf("default checklist definition is incomplete")
	}
	seen := make(map[string]bool, len(def.Items))
	for _, it := range def.Items {
		if it.ItemKey == "" || it.Label == "" {
			return nil, fmt.Errorf("default checklist item missing key or label")
		}
		if seen[it.ItemKey] {
			return nil, fmt.Errorf("default checklist item key %q duplicated", it.ItemKey)
		}
		seen[it.ItemKey] = true
	}
	return &def, nil
}
