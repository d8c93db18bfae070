package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"variation-manager/core/matrix"

	"gopkg.in/yaml.v3"
)

// facetFile is the on-disk form of a facet set:
//
//	facets:
//	  - kind: SIZE
//	    values: [S, M, L]
//	  - kind: OTHER
//	    customLabel: Finish
//	    values: [Matte, Gloss]
type facetFile struct {
	Facets matrix.FacetSet `yaml:"facets"`
}

// loadFacets reads and validates a YAML facet file. JSON files work as well
// since YAML is a superset.
func loadFacets(path string) (matrix.FacetSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read facets: %w", err)
	}
	var f facetFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse facets %s: %w", path, err)
	}
	if err := f.Facets.Validate(); err != nil {
		return nil, fmt.Errorf("invalid facets in %s: %w", path, err)
	}
	return f.Facets, nil
}

// loadCombinations reads a JSON array of combinations.
func loadCombinations(path string) ([]matrix.Combination, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read combinations: %w", err)
	}
	var combos []matrix.Combination
	if err := json.Unmarshal(data, &combos); err != nil {
		return nil, fmt.Errorf("failed to parse combinations %s: %w", path, err)
	}
	return combos, nil
}

// writeJSONFile writes v to path. The file is only reported as written once it
// has been closed successfully.
func writeJSONFile(path string, v interface{}) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if err := writeJSON(f, v); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
