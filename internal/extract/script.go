package extract

import (
	"path/filepath"
	"strings"

	"artcat/internal/catalog"
)

// scriptHeaderLines is how deep into a script the extractor looks for
// a docstring or leading comment.
const scriptHeaderLines = 5

// ReservedScriptPrefix marks internal modules that are not inventoried.
const ReservedScriptPrefix = "__"

type ScriptExtractor struct {
	cats *Categorizer
}

func (e *ScriptExtractor) Kind() catalog.Kind { return catalog.KindScript }

func (e *ScriptExtractor) Extract(content, path, origin string) ([]catalog.Record, error) {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ReservedScriptPrefix) {
		return nil, nil
	}

	desc := scriptDescription(content)
	if desc == "" {
		stem := strings.TrimSuffix(name, filepath.Ext(name))
		desc = "script: " + stem
	}

	return []catalog.Record{{
		Kind:        catalog.KindScript,
		Origin:      origin,
		Category:    e.cats.Categorize(name, desc, origin),
		Name:        name,
		Description: desc,
		Status:      catalog.StatusActive,
		SourcePath:  path,
	}}, nil
}

// scriptDescription takes the first docstring or comment line found in
// the script header.
func scriptDescription(content string) string {
	lines := strings.Split(content, "\n")
	if len(lines) > scriptHeaderLines {
		lines = lines[:scriptHeaderLines]
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		var text string
		switch {
		case strings.Contains(trimmed, `"""`):
			text = strings.ReplaceAll(trimmed, `"""`, "")
		case strings.Contains(trimmed, "'''"):
			text = strings.ReplaceAll(trimmed, "'''", "")
		case strings.HasPrefix(trimmed, "#!"):
			continue
		case strings.HasPrefix(trimmed, "#"):
			text = strings.TrimPrefix(trimmed, "#")
		case strings.HasPrefix(trimmed, "//"):
			text = strings.TrimPrefix(trimmed, "//")
		default:
			continue
		}

		if text = strings.TrimSpace(text); text != "" {
			return text
		}
	}

	return ""
}
