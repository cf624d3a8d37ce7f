package extract

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"artcat/internal/catalog"
)

// SchemaSuffix is the naming convention schema files must match.
const SchemaSuffix = "-schema.json"

// SchemaExtractor builds one record per JSON schema file. The
// description comes from the document's top-level description key; the
// category from the parent directory name.
type SchemaExtractor struct{}

func (e *SchemaExtractor) Kind() catalog.Kind { return catalog.KindSchema }

func (e *SchemaExtractor) Extract(content, path, origin string) ([]catalog.Record, error) {
	var doc map[string]any
	if err := json.Unmarshal([]byte(content), &doc); err != nil {
		return nil, fmt.Errorf("parse schema: %w", err)
	}

	name := filepath.Base(path)
	subject := strings.TrimSuffix(name, SchemaSuffix)

	desc, _ := doc["description"].(string)
	if desc == "" {
		desc = "JSON Schema for " + subject
	}

	category := capitalize(filepath.Base(filepath.Dir(path)))

	return []catalog.Record{{
		Kind:        catalog.KindSchema,
		Origin:      origin,
		Category:    category,
		Name:        name,
		Description: desc,
		Status:      catalog.StatusActive,
		SourcePath:  path,
	}}, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
