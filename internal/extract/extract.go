package extract

import (
	"strings"

	"artcat/internal/catalog"
)

// Extractor turns one artifact file's content into candidate records.
// A file may yield zero, one or many records; a construct no strategy
// recognizes is skipped. A non-nil error means the file itself was
// unparseable and is reported as one extraction error.
type Extractor interface {
	Kind() catalog.Kind
	Extract(content, path, origin string) ([]catalog.Record, error)
}

// ForKind selects the extraction strategy for a kind. Kinds without a
// file-backed strategy (Workflow, Output, Tab come from seed config)
// return nil.
func ForKind(kind catalog.Kind, cats *Categorizer) Extractor {
	switch kind {
	case catalog.KindTool:
		return &ToolExtractor{cats: cats}
	case catalog.KindCommand:
		return &CommandExtractor{cats: cats}
	case catalog.KindScript:
		return &ScriptExtractor{cats: cats}
	case catalog.KindValidator:
		return &ValidatorExtractor{cats: cats}
	case catalog.KindSchema:
		return &SchemaExtractor{}
	case catalog.KindResourceSheet:
		return &SheetExtractor{cats: cats}
	default:
		return nil
	}
}

// truncate caps s at max runes; a cut string ends in an ellipsis and
// still fits the cap.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-3]) + "..."
}

// stripEmphasis removes markdown bold/italic markers.
func stripEmphasis(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "*", "")
	return strings.TrimSpace(s)
}
