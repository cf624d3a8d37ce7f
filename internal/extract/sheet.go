package extract

import (
	"path/filepath"
	"strings"

	"artcat/internal/catalog"
)

const (
	// SheetSuffix is the naming convention resource sheets must match.
	SheetSuffix = "-RESOURCE-SHEET.md"

	sheetDescLimit = 200
	summaryHeading = "## Executive Summary"
)

// SheetExtractor reads resource-sheet markdown: subject, category and
// status come from front matter with filename fallbacks, the
// description from the first sentence under the summary heading.
type SheetExtractor struct {
	cats *Categorizer
}

func (e *SheetExtractor) Kind() catalog.Kind { return catalog.KindResourceSheet }

func (e *SheetExtractor) Extract(content, path, origin string) ([]catalog.Record, error) {
	meta, _ := ParseFrontMatter(content)

	subject := FrontMatterString(meta, "subject")
	if subject == "" {
		stem := strings.TrimSuffix(filepath.Base(path), SheetSuffix)
		subject = strings.ReplaceAll(stem, "-", " ")
	}

	category := FrontMatterString(meta, "category")
	if category == "" {
		category = e.cats.Categorize(subject, "", origin)
	}

	status := normalizeSheetStatus(FrontMatterString(meta, "status"))

	desc := FrontMatterString(meta, "description")
	if desc == "" {
		desc = summaryDescription(content)
	}
	if desc == "" {
		desc = "Resource sheet for " + subject
	}

	return []catalog.Record{{
		Kind:        catalog.KindResourceSheet,
		Origin:      origin,
		Category:    category,
		Name:        subject,
		Description: desc,
		Status:      status,
		SourcePath:  path,
	}}, nil
}

// normalizeSheetStatus maps sheet conventions onto the status enum.
// Sheets historically use APPROVED where the table uses active.
func normalizeSheetStatus(s string) catalog.Status {
	switch strings.ToLower(s) {
	case "draft":
		return catalog.StatusDraft
	case "deprecated":
		return catalog.StatusDeprecated
	default:
		return catalog.StatusActive
	}
}

// summaryDescription collects the paragraph under the summary heading
// and cuts it down to its first sentence.
func summaryDescription(content string) string {
	var collected []string
	inSummary := false

	for _, line := range strings.Split(content, "\n") {
		if strings.Contains(line, summaryHeading) {
			inSummary = true
			continue
		}
		if !inSummary {
			continue
		}
		if strings.HasPrefix(line, "##") {
			break
		}
		trimmed := strings.TrimSpace(line)
		if trimmed != "" && !strings.HasPrefix(trimmed, "#") {
			collected = append(collected, trimmed)
		}
	}

	if len(collected) == 0 {
		return ""
	}

	text := strings.Join(collected, " ")
	if dot := strings.Index(text, "."); dot >= 0 {
		text = text[:dot]
	}
	return truncate(text, sheetDescLimit)
}
