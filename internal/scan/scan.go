package scan

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"artcat/internal/catalog"
	"artcat/internal/config"
	"artcat/internal/extract"
	"artcat/internal/logger"
	"artcat/internal/stamp"
	"artcat/internal/tabfile"
)

var log = logger.ForComponent("scan")

// Aggregator runs every per-kind extractor across the configured roots
// and collects one candidate record set per pass. It holds no state
// between passes.
type Aggregator struct {
	cfg     *config.Config
	cats    *extract.Categorizer
	stamper *stamp.Resolver
}

func New(cfg *config.Config) *Aggregator {
	return &Aggregator{
		cfg:     cfg,
		cats:    extract.NewCategorizer(cfg.Categories),
		stamper: stamp.NewResolver(time.Duration(cfg.GitTimeout)),
	}
}

// Scan walks all roots for all kinds. Absent roots contribute zero
// records; per-file failures become extraction errors, never aborts.
func (a *Aggregator) Scan(ctx context.Context) catalog.ScanResult {
	var result catalog.ScanResult

	a.scanKind(ctx, &result, catalog.KindTool, a.cfg.Roots.Tools, "*.py", false)
	a.scanKind(ctx, &result, catalog.KindCommand, a.cfg.Roots.Commands, "*.md", false)
	a.scanKind(ctx, &result, catalog.KindScript, a.cfg.Roots.Scripts, "*.py", true)
	a.scanKind(ctx, &result, catalog.KindValidator, a.cfg.Roots.Validators, "*.py", false)
	a.scanKind(ctx, &result, catalog.KindSchema, a.cfg.Roots.Schemas, "*"+extract.SchemaSuffix, true)
	a.scanKind(ctx, &result, catalog.KindResourceSheet, a.cfg.Roots.Sheets, "*"+extract.SheetSuffix, true)

	a.addSeeds(&result)

	log.Info("scan pass complete", "records", len(result.Records), "errors", len(result.Errors))
	return result
}

func (a *Aggregator) scanKind(ctx context.Context, result *catalog.ScanResult, kind catalog.Kind, roots []config.Root, defaultPattern string, recursive bool) {
	ext := extract.ForKind(kind, a.cats)
	if ext == nil || len(roots) == 0 {
		return
	}

	for _, root := range roots {
		pattern := root.Pattern
		if pattern == "" {
			pattern = defaultPattern
		}

		files := a.rootFiles(root, pattern, recursive)
		for _, file := range files {
			a.extractFile(ctx, result, ext, file, root.Origin)
		}
	}
}

// rootFiles lists the artifact files one root contributes. A missing
// root is zero records, not an error. A root may also name a single
// file directly, the tool-source case.
func (a *Aggregator) rootFiles(root config.Root, pattern string, recursive bool) []string {
	info, err := os.Stat(root.Path)
	if err != nil {
		log.Debug("root absent, skipping", "path", root.Path, "origin", root.Origin)
		return nil
	}

	if !info.IsDir() {
		return []string{root.Path}
	}

	var files []string
	if recursive {
		_ = filepath.WalkDir(root.Path, func(p string, d fs.DirEntry, err error) error {
			if err != nil || d.IsDir() {
				return nil
			}
			if match, _ := doublestar.Match(pattern, d.Name()); match {
				files = append(files, p)
			}
			return nil
		})
	} else {
		entries, err := os.ReadDir(root.Path)
		if err != nil {
			log.Debug("root unreadable, skipping", "path", root.Path, "error", err)
			return nil
		}
		for _, entry := range entries {
			if entry.IsDir() {
				continue
			}
			if match, _ := doublestar.Match(pattern, entry.Name()); match {
				files = append(files, filepath.Join(root.Path, entry.Name()))
			}
		}
	}

	sort.Strings(files)
	return files
}

func (a *Aggregator) extractFile(ctx context.Context, result *catalog.ScanResult, ext extract.Extractor, path, origin string) {
	content, _, err := tabfile.ReadFileAsUTF8(path)
	if err != nil {
		result.Errors = append(result.Errors, catalog.ExtractionError{Path: path, Reason: err.Error()})
		return
	}

	records, err := ext.Extract(content, path, origin)
	if err != nil {
		result.Errors = append(result.Errors, catalog.ExtractionError{Path: path, Reason: err.Error()})
		return
	}

	if len(records) == 0 {
		return
	}

	// One resolution covers every record the file yields.
	created, updated := a.stamper.Resolve(ctx, path)

	for _, rec := range records {
		normalized, err := catalog.Normalize(rec)
		if err != nil {
			result.Errors = append(result.Errors, catalog.ExtractionError{Path: path, Reason: err.Error()})
			continue
		}

		normalized.Created = created
		normalized.Updated = updated
		result.Records = append(result.Records, normalized)
	}
}

// addSeeds appends the configured static records (workflows, output
// formats, dashboard tabs) that have no file to extract from. Their
// timestamps stay empty.
func (a *Aggregator) addSeeds(result *catalog.ScanResult) {
	for _, seed := range a.cfg.Seeds {
		normalized, err := catalog.Normalize(seed)
		if err != nil {
			result.Errors = append(result.Errors, catalog.ExtractionError{Path: seed.SourcePath, Reason: "seed record: " + err.Error()})
			continue
		}
		result.Records = append(result.Records, normalized)
	}
}
