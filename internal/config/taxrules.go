package config

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/moovely/greener/internal/domain"
	"gopkg.in/yaml.v3"
)

//go:embed data/tax_rules.yaml
var defaultTaxRulesYAML []byte

// DefaultTaxRulesYAML returns the embedded rules file, for use as a template
func DefaultTaxRulesYAML() []byte {
	out := make([]byte, len(defaultTaxRulesYAML))
	copy(out, defaultTaxRulesYAML)
	return out
}

// LoadTaxRules reads tax rules from a YAML file. An empty path returns the
// built-in defaults.
func LoadTaxRules(filename string) (domain.TaxRules, error) {
	if filename == "" {
		return domain.DefaultTaxRules(), nil
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return domain.TaxRules{}, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	rules, err := ParseTaxRules(data)
	if err != nil {
		return domain.TaxRules{}, fmt.Errorf("%s: %w", filename, err)
	}
	return rules, nil
}

// ParseTaxRules decodes and validates a YAML tax rules document
func ParseTaxRules(data []byte) (domain.TaxRules, error) {
	var rules domain.TaxRules
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return domain.TaxRules{}, fmt.Errorf("failed to parse YAML: %w", err)
	}
	if err := rules.Validate(); err != nil {
		return domain.TaxRules{}, fmt.Errorf("tax rules validation failed: %w", err)
	}
	return rules, nil
}
