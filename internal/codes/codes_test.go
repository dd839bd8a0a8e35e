package codes

import "testing"

func TestErrorCodeTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		phase    string
		category string
	}{
		{"LOOKUP001", LOOKUP001, "sema", "lookup"},
		{"LOOKUP003", LOOKUP003, "sema", "lookup"},
		{"REDECL003", REDECL003, "sema", "redeclaration"},
		{"REDECL007", REDECL007, "sema", "redeclaration"},
		{"SIG009", SIG009, "overload", "signature"},
		{"SIG010", SIG010, "overload", "signature"},
		{"TYPE004", TYPE004, "sema", "type"},
		{"TYPE013", TYPE013, "sema", "conformance"},
		{"FLOW001", FLOW001, "sema", "flow"},
		{"FLOW004", FLOW004, "sema", "flow"},
		{"DECL005", DECL005, "sema", "declaration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			info, ok := GetErrorInfo(tt.code)
			if !ok {
				t.Fatalf("code %s not registered", tt.code)
			}
			if info.Phase != tt.phase {
				t.Errorf("phase = %s, want %s", info.Phase, tt.phase)
			}
			if info.Category != tt.category {
				t.Errorf("category = %s, want %s", info.Category, tt.category)
			}
		})
	}
}

func TestIsLookupError(t *testing.T) {
	if !IsLookupError(LOOKUP001) {
		t.Error("LOOKUP001 should be a lookup error")
	}
	if IsLookupError(TYPE001) {
		t.Error("TYPE001 should not be a lookup error")
	}
}

func TestIsRedeclarationError(t *testing.T) {
	if !IsRedeclarationError(REDECL007) {
		t.Error("REDECL007 should be a redeclaration error")
	}
	if IsRedeclarationError(FLOW001) {
		t.Error("FLOW001 should not be a redeclaration error")
	}
}

func TestIsFlowError(t *testing.T) {
	if !IsFlowError(FLOW004) {
		t.Error("FLOW004 should be a flow error")
	}
	if IsFlowError(DECL001) {
		t.Error("DECL001 should not be a flow error")
	}
}

func TestUnknownCodeLookup(t *testing.T) {
	if _, ok := GetErrorInfo("NOPE999"); ok {
		t.Error("expected unknown code to be absent from the registry")
	}
}
