package rules

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/davmoraru/wayfind/internal/domain"
)

// Loader handles loading and parsing of the disambiguation rules file.
type Loader struct {
	filePath string
}

// NewLoader creates a new rules loader.
func NewLoader(filePath string) *Loader {
	return &Loader{
		filePath: filePath,
	}
}

// Load reads the rules file and maps it to domain keyword rules.
// An empty path returns the built-in default table.
func (l *Loader) Load() ([]domain.KeywordRule, error) {
	if l.filePath == "" {
		return domain.DefaultKeywordRules(), nil
	}

	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read rules file: %w", err)
	}

	var config RulesConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse rules yaml: %w", err)
	}

	mapped, err := mapRules(config)
	if err != nil {
		return nil, err
	}
	return mapped, nil
}

// mapRules converts RulesConfig to []domain.KeywordRule, lowercasing
// keywords and dropping empty entries.
func mapRules(config RulesConfig) ([]domain.KeywordRule, error) {
	mapped := make([]domain.KeywordRule, 0, len(config.Rules))
	for i, props := range config.Rules {
		a := cleanKeywords(props.A)
		b := cleanKeywords(props.B)
		if len(a) == 0 || len(b) == 0 {
			return nil, fmt.Errorf("rule %d must name keywords on both sides", i)
		}
		mapped = append(mapped, domain.KeywordRule{A: a, B: b})
	}
	if len(mapped) == 0 {
		return nil, fmt.Errorf("no valid rules found in rules file")
	}
	return mapped, nil
}

func cleanKeywords(keywords []string) []string {
	out := make([]string, 0, len(keywords))
	for _, k := range keywords {
		k = strings.ToLower(strings.TrimSpace(k))
		if k != "" {
			out = append(out, k)
		}
	}
	return out
}
