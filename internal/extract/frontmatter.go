package extract

import (
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ParseFrontMatter splits a markdown document into its YAML front
// matter (delimited by --- lines) and body. A missing or unparseable
// front matter block yields an empty map and the full content as body.
func ParseFrontMatter(content string) (map[string]any, string) {
	if !strings.HasPrefix(content, "---") {
		return map[string]any{}, content
	}

	parts := strings.SplitN(content, "---", 3)
	if len(parts) < 3 {
		return map[string]any{}, content
	}

	meta := map[string]any{}
	if err := yaml.Unmarshal([]byte(parts[1]), &meta); err != nil {
		return map[string]any{}, content
	}
	if meta == nil {
		meta = map[string]any{}
	}

	return meta, parts[2]
}

// FrontMatterString reads a front-matter value as a string, covering
// the scalar types yaml.v3 produces for unquoted values.
func FrontMatterString(meta map[string]any, key string) string {
	v, ok := meta[key]
	if !ok {
		return ""
	}

	switch val := v.(type) {
	case string:
		return strings.TrimSpace(val)
	case time.Time:
		return val.Format(time.RFC3339)
	default:
		return ""
	}
}
