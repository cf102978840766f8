package reference

import (
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestLoadScheme(t *testing.T) {
	t.Run("nodes without symbols pass the parent through", func(t *testing.T) {
		path := writeZip(t, filepath.Join(t.TempDir(), "scheme.zip"), []member{
			{"scheme.xml",
				`<class-scheme>
				  <classification-item>
				    <classification-symbol>A01B</classification-symbol>
				    <classification-item>
				      <classification-item>
				        <classification-symbol>A01B 1/00</classification-symbol>
				      </classification-item>
				    </classification-item>
				  </classification-item>
				</class-scheme>`},
		})

		parents, err := loadScheme(path, zap.NewNop())
		if err != nil {
			t.Fatal(err)
		}
		// The intermediate item has no symbol; its child still hangs off
		// the nearest symbol-bearing ancestor.
		if got := parents["A01B1/00"]; got != "A01B" {
			t.Errorf("parent of A01B1/00 = %q; want A01B", got)
		}
	})

	t.Run("duplicate child keeps last occurrence", func(t *testing.T) {
		path := writeZip(t, filepath.Join(t.TempDir(), "scheme.zip"), []member{
			{"scheme.xml",
				`<class-scheme>
				  <classification-item>
				    <classification-symbol>A01B</classification-symbol>
				    <classification-item>
				      <classification-symbol>A01B 1/00</classification-symbol>
				    </classification-item>
				  </classification-item>
				  <classification-item>
				    <classification-symbol>A01C</classification-symbol>
				    <classification-item>
				      <classification-symbol>A01B 1/00</classification-symbol>
				    </classification-item>
				  </classification-item>
				</class-scheme>`},
		})

		parents, err := loadScheme(path, zap.NewNop())
		if err != nil {
			t.Fatal(err)
		}
		if got := parents["A01B1/00"]; got != "A01C" {
			t.Errorf("parent of duplicated child = %q; want last occurrence A01C", got)
		}
	})

	t.Run("malformed member is skipped, others load", func(t *testing.T) {
		path := writeZip(t, filepath.Join(t.TempDir(), "scheme.zip"), []member{
			{"broken.xml", `<class-scheme><classification-item>`},
			{"good.xml",
				`<class-scheme>
				  <classification-item>
				    <classification-symbol>B</classification-symbol>
				    <classification-item>
				      <classification-symbol>B01</classification-symbol>
				    </classification-item>
				  </classification-item>
				</class-scheme>`},
		})

		parents, err := loadScheme(path, zap.NewNop())
		if err != nil {
			t.Fatalf("one malformed member must not be fatal, got %v", err)
		}
		if got := parents["B01"]; got != "B" {
			t.Errorf("parent of B01 = %q; want B", got)
		}
	})

	t.Run("non-xml members are ignored", func(t *testing.T) {
		path := writeZip(t, filepath.Join(t.TempDir(), "scheme.zip"), []member{
			{"notes.txt", "irrelevant"},
		})

		parents, err := loadScheme(path, zap.NewNop())
		if err != nil {
			t.Fatal(err)
		}
		if len(parents) != 0 {
			t.Errorf("got %d relations; want 0", len(parents))
		}
	})
}

func TestSchemeRelationsPure(t *testing.T) {
	tree := schemeNode{
		Symbol: "A01",
		Items: []schemeNode{
			{Symbol: "A01B", Items: []schemeNode{
				{Symbol: "A01B 1/00"},
				{Symbol: "A01B 1/02"},
			}},
		},
	}

	rels := schemeRelations(tree, "")
	want := []relation{
		{child: "A01B", parent: "A01"},
		{child: "A01B1/00", parent: "A01B"},
		{child: "A01B1/02", parent: "A01B"},
	}
	if len(rels) != len(want) {
		t.Fatalf("got %d relations; want %d", len(rels), len(want))
	}
	for i := range want {
		if rels[i] != want[i] {
			t.Errorf("rels[%d] = %+v; want %+v", i, rels[i], want[i])
		}
	}

	// The root gains a parent when the walk starts with ancestor context.
	withRoot := schemeRelations(tree, "A")
	if withRoot[0] != (relation{child: "A01", parent: "A"}) {
		t.Errorf("first relation = %+v; want A01 -> A", withRoot[0])
	}
}
