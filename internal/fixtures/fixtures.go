// Package fixtures is test tooling: it loads the declarative end-to-end
// scenario suite described in spec.md §8 from YAML and hands each
// scenario's pre-built Context to whatever pass wants to exercise it.
// There is no surface parser in this module, so a "literal input" is
// registered directly as AST via a named builder rather than parsed
// from source text — the YAML records expectations, the builder
// registry (see builders.go) supplies the AST.
package fixtures

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one end-to-end entry: a named AST builder plus the set of
// diagnostic codes Run is expected (and not expected) to produce over it.
type Scenario struct {
	ID            string   `yaml:"id"`
	Description   string   `yaml:"description"`
	Builder       string   `yaml:"builder"`
	ExpectCodes   []string `yaml:"expect_codes"`
	ExpectNoCodes []string `yaml:"expect_no_codes"`
}

// suiteFile is the on-disk shape: a flat list under a top-level key, the
// same layout eval_harness uses for its benchmark manifests.
type suiteFile struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// LoadScenarios loads the scenario suite from path and validates that
// every entry names a registered builder.
func LoadScenarios(path string) ([]Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("fixtures: failed to read scenario file: %w", err)
	}
	var suite suiteFile
	if err := yaml.Unmarshal(data, &suite); err != nil {
		return nil, fmt.Errorf("fixtures: failed to parse YAML: %w", err)
	}
	for _, sc := range suite.Scenarios {
		if sc.ID == "" {
			return nil, fmt.Errorf("fixtures: scenario missing required field: id")
		}
		if _, ok := Builders[sc.Builder]; !ok {
			return nil, fmt.Errorf("fixtures: scenario %q names unknown builder %q", sc.ID, sc.Builder)
		}
	}
	return suite.Scenarios, nil
}
