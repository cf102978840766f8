package symbol

import "testing"

func TestDecompose(t *testing.T) {
	tests := []struct {
		name string
		code string
		want Parts
	}{
		{
			name: "full subgroup code",
			code: "A01B1/00",
			want: Parts{Section: "A", Subsection: "A01", Group: "A01B", Subgroup: "A01B1/00"},
		},
		{
			name: "group code",
			code: "A01B",
			want: Parts{Section: "A", Subsection: "A01", Group: "A01B"},
		},
		{
			name: "subsection code",
			code: "A01",
			want: Parts{Section: "A", Subsection: "A01"},
		},
		{
			name: "section code",
			code: "A",
			want: Parts{Section: "A"},
		},
		{
			name: "empty",
			code: "",
			want: Parts{},
		},
		{
			name: "all digits",
			code: "0142",
			want: Parts{},
		},
		{
			name: "Y section",
			code: "Y02E10/50",
			want: Parts{Section: "Y", Subsection: "Y02", Group: "Y02E", Subgroup: "Y02E10/50"},
		},
		{
			name: "digit at position 3 stops at subsection",
			code: "A012",
			want: Parts{Section: "A", Subsection: "A01"},
		},
		{
			name: "letters at positions 1-2 give section only",
			code: "ABC",
			want: Parts{Section: "A"},
		},
		{
			name: "leading digit with slash",
			code: "1/00",
			want: Parts{Subgroup: "1/00"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decompose(tt.code); got != tt.want {
				t.Errorf("Decompose(%q) = %+v; want %+v", tt.code, got, tt.want)
			}
		})
	}
}

func TestDecomposeIdempotent(t *testing.T) {
	codes := []string{"A01B1/00", "A01B", "A01", "A", "H04L67/10", "Y02E10/50"}

	for _, code := range codes {
		first := Decompose(code)

		// Re-decomposing the most specific derived string must agree
		// with the original decomposition.
		again := code
		if first.Subgroup != "" {
			again = first.Subgroup
		}
		second := Decompose(again)
		if first != second {
			t.Errorf("Decompose not idempotent for %q: %+v vs %+v", code, first, second)
		}
	}
}

func TestDecomposeShortCodes(t *testing.T) {
	// Codes shorter than three characters never carry a subsection.
	for _, code := range []string{"A", "A0", "B9", "Z"} {
		if p := Decompose(code); p.Subsection != "" {
			t.Errorf("Decompose(%q).Subsection = %q; want empty", code, p.Subsection)
		}
	}
}

func TestDecomposeSubgroupVerbatim(t *testing.T) {
	// Any code containing a slash is its own subgroup, byte for byte.
	for _, code := range []string{"A01B1/00", "A01B1/002", "X99Z123/4567"} {
		if p := Decompose(code); p.Subgroup != code {
			t.Errorf("Decompose(%q).Subgroup = %q; want input unchanged", code, p.Subgroup)
		}
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"A01B 1/00", "A01B1/00"},
		{"  A01B   1/00  ", "A01B1/00"},
		{"A01B1/00", "A01B1/00"},
		{"\tA 0 1\n", "A01"},
		{"", ""},
		{"   ", ""},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}
