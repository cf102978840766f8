package reference

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"

	"github.com/gocpc/cpc/symbol"
)

// schemeNode mirrors the nested classification-item tree of the scheme
// XML. The symbol-bearing child element is optional at every level.
type schemeNode struct {
	Symbol string       `xml:"classification-symbol"`
	Items  []schemeNode `xml:"classification-item"`
}

// relation is one child-to-parent edge of the scheme hierarchy.
type relation struct {
	child  string
	parent string
}

// loadScheme reads every XML member of the scheme archive into a
// child-to-parent map. A member that fails to parse is logged and skipped;
// the remaining members still load. A missing archive returns an empty map
// and no error.
//
// Relations are applied in document traversal order, so a child appearing
// under more than one parent keeps the last occurrence.
func loadScheme(path string, logger *zap.Logger) (map[string]string, error) {
	parents := make(map[string]string)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		logger.Warn("scheme archive not found", zap.String("path", path))
		return parents, nil
	}

	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open scheme archive %s: %w", path, err)
	}
	defer zr.Close()

	for _, member := range zr.File {
		if !strings.HasSuffix(member.Name, ".xml") {
			continue
		}

		root, err := readSchemeMember(member)
		if err != nil {
			logger.Error("skipping malformed scheme member",
				zap.String("member", member.Name),
				zap.Error(err))
			continue
		}

		for _, rel := range schemeRelations(*root, "") {
			parents[rel.child] = rel.parent
		}
	}

	logger.Info("loaded scheme hierarchy",
		zap.String("path", path),
		zap.Int("relations", len(parents)))
	return parents, nil
}

func readSchemeMember(member *zip.File) (*schemeNode, error) {
	rc, err := member.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	var root schemeNode
	if err := xml.NewDecoder(rc).Decode(&root); err != nil {
		return nil, err
	}
	return &root, nil
}

// schemeRelations walks a subtree and returns its child-to-parent edges as
// a local slice; the caller merges slices into the final map. A node with
// a symbol becomes the parent context for its descendants; a node without
// one passes the ancestor context through unchanged.
func schemeRelations(n schemeNode, parent string) []relation {
	var rels []relation

	context := parent
	if code := symbol.Normalize(n.Symbol); code != "" {
		if parent != "" {
			rels = append(rels, relation{child: code, parent: parent})
		}
		context = code
	}

	for _, item := range n.Items {
		rels = append(rels, schemeRelations(item, context)...)
	}
	return rels
}
