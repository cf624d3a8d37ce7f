package extract

import (
	"regexp"
	"strings"

	"artcat/internal/catalog"
)

const validatorDescLimit = 100

var (
	validatorClassRe = regexp.MustCompile(`^\s*class\s+([A-Za-z_][A-Za-z0-9_]*Validator)\b`)
	docstringOpenRe  = regexp.MustCompile(`^\s*(?:"""|''')\s*(.*)$`)
)

// ValidatorExtractor finds class declarations whose name carries the
// Validator suffix and reads the first docstring line below each as
// its description.
type ValidatorExtractor struct {
	cats *Categorizer
}

func (e *ValidatorExtractor) Kind() catalog.Kind { return catalog.KindValidator }

func (e *ValidatorExtractor) Extract(content, path, origin string) ([]catalog.Record, error) {
	lines := strings.Split(content, "\n")

	var records []catalog.Record
	for i, line := range lines {
		m := validatorClassRe.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		name := m[1]

		desc := classDocstring(lines, i+1)
		if desc == "" {
			subject := strings.ToLower(strings.TrimSuffix(name, "Validator"))
			desc = "Validator for " + subject
		}
		desc = truncate(desc, validatorDescLimit)

		records = append(records, catalog.Record{
			Kind:        catalog.KindValidator,
			Origin:      origin,
			Category:    e.cats.Categorize(name, desc, origin),
			Name:        name,
			Description: desc,
			Status:      catalog.StatusActive,
			SourcePath:  path,
		})
	}

	return records, nil
}

// classDocstring returns the first line of a docstring opening at or
// just below the class declaration. It gives up at the first
// substantive statement.
func classDocstring(lines []string, from int) string {
	for i := from; i < len(lines) && i < from+3; i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}

		m := docstringOpenRe.FindStringSubmatch(lines[i])
		if m == nil {
			return ""
		}

		first := strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(m[1], `"""`, ""), "'''", ""))
		if first != "" {
			return first
		}

		// Opening quotes alone: the text starts on the next line.
		for j := i + 1; j < len(lines); j++ {
			text := strings.TrimSpace(lines[j])
			if strings.HasPrefix(text, `"""`) || strings.HasPrefix(text, "'''") {
				return ""
			}
			if text != "" {
				return strings.TrimSpace(strings.ReplaceAll(strings.ReplaceAll(text, `"""`, ""), "'''", ""))
			}
		}
		return ""
	}

	return ""
}
