package search

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
)

// Selectors names the result-listing markup the pipeline drives. Sites
// shuffle their class names often enough that these stay overridable.
type Selectors struct {
	ResultsContainer string `yaml:"results_container"`
	ResultCards      string `yaml:"result_cards"`
	ProfileLink      string `yaml:"profile_link"`
	HeadlineText     string `yaml:"headline_text"`
}

// DefaultSelectors returns the current production markup.
func DefaultSelectors() Selectors {
	return Selectors{
		ResultsContainer: ".search-results-container",
		ResultCards:      ".search-results-container li",
		ProfileLink:      `a[href*="/in/"]`,
		HeadlineText:     ".entity-result__primary-subtitle",
	}
}

// LoadSelectors reads a YAML override file on top of the defaults.
// An empty path returns the defaults untouched.
func LoadSelectors(path string) (Selectors, error) {
	sel := DefaultSelectors()
	if path == "" {
		return sel, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return sel, fmt.Errorf("selector file unreadable: %w", err)
	}
	if err := yaml.Unmarshal(data, &sel); err != nil {
		return sel, fmt.Errorf("selector file malformed: %w", err)
	}
	return sel, nil
}
