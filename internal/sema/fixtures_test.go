package sema

import (
	"testing"

	"github.com/juniper-lang/frontend/internal/fixtures"
)

// TestScenarioSuite runs every declarative scenario under
// testdata/scenarios.yaml through a fresh Analyzer and checks its
// diagnostics against the expected/forbidden code lists. Each scenario's
// Context comes from a named fixtures.Builder rather than parsed source,
// since this module has no surface parser.
func TestScenarioSuite(t *testing.T) {
	scenarios, err := fixtures.LoadScenarios("../fixtures/testdata/scenarios.yaml")
	if err != nil {
		t.Fatalf("failed to load scenario suite: %v", err)
	}
	if len(scenarios) == 0 {
		t.Fatal("expected at least one scenario")
	}

	for _, sc := range scenarios {
		sc := sc
		t.Run(sc.ID, func(t *testing.T) {
			ctx := fixtures.Builders[sc.Builder]()
			New(ctx).Run()

			for _, code := range sc.ExpectCodes {
				if !hasCode(ctx, code) {
					t.Errorf("%s: expected diagnostic %s, got %v", sc.Description, code, ctx.Diagnostics.All())
				}
			}
			for _, code := range sc.ExpectNoCodes {
				if hasCode(ctx, code) {
					t.Errorf("%s: did not expect diagnostic %s, got %v", sc.Description, code, ctx.Diagnostics.All())
				}
			}
		})
	}
}
