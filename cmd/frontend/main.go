// Command frontend is a thin driver that exercises the front-end
// pipeline end-to-end: for each scenario in a fixture suite it builds a
// Context, runs the Semantic Analyser over it, and prints whatever the
// Diagnostic Engine collected. It exists to drive the pipeline in tests
// and local debugging, not as a shipped product surface — this module
// has no surface parser, so a scenario's "source" is a named Go builder
// rather than a `.src` file read from disk.
package main

import (
	"fmt"
	"os"

	"github.com/juniper-lang/frontend/internal/diag"
	"github.com/juniper-lang/frontend/internal/fixtures"
	"github.com/juniper-lang/frontend/internal/sema"
)

func main() {
	path := "internal/fixtures/testdata/scenarios.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	scenarios, err := fixtures.LoadScenarios(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "frontend: %v\n", err)
		os.Exit(1)
	}

	exitCode := 0
	for _, sc := range scenarios {
		ctx := fixtures.Builders[sc.Builder]()
		sema.New(ctx).Run()

		fmt.Printf("=== %s: %s ===\n", sc.ID, sc.Description)
		if len(ctx.Diagnostics.All()) == 0 {
			fmt.Println("  (no diagnostics)")
		} else {
			diag.Render(os.Stdout, ctx.Diagnostics)
		}
		if ctx.Diagnostics.HasErrors() {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}
