package cpc

import "testing"

func TestNewResult(t *testing.T) {
	r := NewResult()

	if r.ValidityStatus != StatusUnknown {
		t.Errorf("ValidityStatus = %q; want %q", r.ValidityStatus, StatusUnknown)
	}
	if r.SymbolValid || r.InSymbolList || r.SchemaValid {
		t.Error("expected all flags false on a fresh result")
	}
	if !r.Clean() {
		t.Error("expected fresh result to be clean")
	}
}

func TestResultWarnings(t *testing.T) {
	t.Run("append preserves order", func(t *testing.T) {
		r := NewResult()
		r.AddWarning(WarnInvalidFormat)
		r.AddWarning(WarnNotInSymbolList)
		r.AddWarning(StatusWarning(StatusUnknown))
		r.AddWarning(WarnNoSchemaParent)

		want := []string{
			"Invalid symbol format",
			"Symbol not found in symbol list",
			"Symbol status: UNKNOWN",
			"Symbol not found in schema hierarchy",
		}
		if len(r.Warnings) != len(want) {
			t.Fatalf("got %d warnings; want %d", len(r.Warnings), len(want))
		}
		for i, w := range want {
			if r.Warnings[i] != w {
				t.Errorf("Warnings[%d] = %q; want %q", i, r.Warnings[i], w)
			}
		}
	})

	t.Run("duplicates are kept", func(t *testing.T) {
		r := NewResult()
		r.AddWarning(WarnInvalidFormat)
		r.AddWarning(WarnInvalidFormat)
		if len(r.Warnings) != 2 {
			t.Errorf("got %d warnings; want 2", len(r.Warnings))
		}
	})
}

func TestResultActive(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   bool
	}{
		{
			name: "fully valid",
			result: Result{
				SymbolValid:    true,
				InSymbolList:   true,
				ValidityStatus: StatusActive,
			},
			want: true,
		},
		{
			name: "inactive status",
			result: Result{
				SymbolValid:    true,
				InSymbolList:   true,
				ValidityStatus: StatusInactive,
			},
			want: false,
		},
		{
			name: "not in symbol list",
			result: Result{
				SymbolValid:    true,
				ValidityStatus: StatusActive,
			},
			want: false,
		},
		{
			name: "bad format",
			result: Result{
				InSymbolList:   true,
				ValidityStatus: StatusActive,
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.result.Active(); got != tt.want {
				t.Errorf("Active() = %v; want %v", got, tt.want)
			}
		})
	}
}

func TestStatusWarning(t *testing.T) {
	if got := StatusWarning("INACTIVE"); got != "Symbol status: INACTIVE" {
		t.Errorf("StatusWarning() = %q", got)
	}
}
