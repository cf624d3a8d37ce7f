package history

const SchemaVersion = 1

const schemaSQL = `
-- Schema version tracking
CREATE TABLE IF NOT EXISTS schema_version (
    version INTEGER PRIMARY KEY
);

-- One row per pipeline run
CREATE TABLE IF NOT EXISTS runs (
    id TEXT PRIMARY KEY,
    started_at DATETIME NOT NULL,
    duration_ms INTEGER NOT NULL,
    total_records INTEGER NOT NULL,
    extraction_errors INTEGER NOT NULL,
    merge_warnings INTEGER NOT NULL,
    output_path TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at);

-- Per-kind record counts for one run
CREATE TABLE IF NOT EXISTS run_counts (
    run_id TEXT NOT NULL REFERENCES runs(id) ON DELETE CASCADE,
    kind TEXT NOT NULL,
    count INTEGER NOT NULL,
    PRIMARY KEY (run_id, kind)
);
`

func GetSchema() string {
	return schemaSQL
}

func GetSchemaVersion() int {
	return SchemaVersion
}
