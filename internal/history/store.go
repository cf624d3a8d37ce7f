package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"artcat/internal/catalog"
)

// Run is the persisted summary of one pipeline run.
type Run struct {
	ID               string
	StartedAt        time.Time
	Duration         time.Duration
	TotalRecords     int
	ExtractionErrors int
	MergeWarnings    int
	OutputPath       string
	CountsByKind     map[catalog.Kind]int
}

// Store keeps run summaries in a local sqlite database so the shape of
// the inventory over time stays queryable.
type Store struct {
	db *sql.DB
	mu sync.Mutex
}

func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create history dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, err
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, err
		}
	}

	store := &Store{db: db}
	if err := store.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return store, nil
}

func (s *Store) initSchema() error {
	schema := GetSchema()

	var clean []string
	for _, line := range strings.Split(schema, "\n") {
		trimmed := strings.TrimSpace(line)
		if !strings.HasPrefix(trimmed, "--") && trimmed != "" {
			clean = append(clean, line)
		}
	}

	if _, err := s.db.Exec(strings.Join(clean, "\n")); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}

	_, _ = s.db.Exec(`INSERT OR IGNORE INTO schema_version (version) VALUES (?)`, GetSchemaVersion())
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) RecordRun(run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
		INSERT INTO runs (id, started_at, duration_ms, total_records, extraction_errors, merge_warnings, output_path)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.StartedAt.UTC(), run.Duration.Milliseconds(), run.TotalRecords, run.ExtractionErrors, run.MergeWarnings, run.OutputPath)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.Prepare(`INSERT INTO run_counts (run_id, kind, count) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare stmt: %w", err)
	}
	defer stmt.Close()

	for kind, count := range run.CountsByKind {
		if _, err := stmt.Exec(run.ID, string(kind), count); err != nil {
			return fmt.Errorf("insert count %s: %w", kind, err)
		}
	}

	return tx.Commit()
}

func (s *Store) ListRuns(limit int) ([]Run, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(`
		SELECT id, started_at, duration_ms, total_records, extraction_errors, merge_warnings, output_path
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var run Run
		var durationMS int64
		var outputPath sql.NullString

		if err := rows.Scan(&run.ID, &run.StartedAt, &durationMS, &run.TotalRecords, &run.ExtractionErrors, &run.MergeWarnings, &outputPath); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}

		run.Duration = time.Duration(durationMS) * time.Millisecond
		if outputPath.Valid {
			run.OutputPath = outputPath.String
		}

		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range runs {
		counts, err := s.runCounts(runs[i].ID)
		if err != nil {
			return nil, err
		}
		runs[i].CountsByKind = counts
	}

	return runs, nil
}

func (s *Store) runCounts(runID string) (map[catalog.Kind]int, error) {
	rows, err := s.db.Query(`SELECT kind, count FROM run_counts WHERE run_id = ?`, runID)
	if err != nil {
		return nil, fmt.Errorf("run counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[catalog.Kind]int)
	for rows.Next() {
		var kind string
		var count int
		if err := rows.Scan(&kind, &count); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[catalog.Kind(kind)] = count
	}

	return counts, rows.Err()
}
