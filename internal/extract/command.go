package extract

import (
	"path/filepath"
	"strings"

	"artcat/internal/catalog"
)

const commandDescLimit = 100

// CommandExtractor builds one record per markdown command file: the
// name is the file stem with a slash prefix, the description comes
// from front matter or the first substantive line of the body.
type CommandExtractor struct {
	cats *Categorizer
}

func (e *CommandExtractor) Kind() catalog.Kind { return catalog.KindCommand }

func (e *CommandExtractor) Extract(content, path, origin string) ([]catalog.Record, error) {
	stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	name := "/" + stem

	meta, body := ParseFrontMatter(content)
	desc := FrontMatterString(meta, "description")
	if desc == "" {
		desc = firstBodyLine(body)
	}
	desc = truncate(stripEmphasis(desc), commandDescLimit)

	return []catalog.Record{{
		Kind:        catalog.KindCommand,
		Origin:      origin,
		Category:    e.cats.Categorize(name, desc, origin),
		Name:        name,
		Description: desc,
		Status:      catalog.StatusActive,
		SourcePath:  path,
	}}, nil
}

// firstBodyLine returns the first non-blank line that is neither a
// heading nor a front-matter delimiter.
func firstBodyLine(body string) string {
	for _, line := range strings.Split(body, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "---") {
			continue
		}
		return trimmed
	}
	return ""
}
