package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"artcat/internal/catalog"
)

// Duration is a time.Duration that YAML can read in the "5s" form.
// Bare integers are taken as nanoseconds.
type Duration time.Duration

func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, err := time.ParseDuration(s)
		if err != nil {
			return fmt.Errorf("parse duration %q: %w", s, err)
		}
		*d = Duration(parsed)
		return nil
	}

	var n int64
	if err := value.Decode(&n); err != nil {
		return fmt.Errorf("parse duration: %w", err)
	}
	*d = Duration(n)
	return nil
}

// Root points one extractor at one directory (or file, for tool
// sources) and names the origin its records belong to.
type Root struct {
	Origin  string `yaml:"origin"`
	Path    string `yaml:"path"`
	Pattern string `yaml:"pattern,omitempty"`
}

type Roots struct {
	Tools      []Root `yaml:"tools"`
	Commands   []Root `yaml:"commands"`
	Scripts    []Root `yaml:"scripts"`
	Validators []Root `yaml:"validators"`
	Schemas    []Root `yaml:"schemas"`
	Sheets     []Root `yaml:"sheets"`
}

// CategoryRule is one (predicate, result) pair in the ordered
// classification table. The first rule whose field contains any of the
// listed substrings wins.
type CategoryRule struct {
	Field    string   `yaml:"field"` // name, description or origin
	Contains []string `yaml:"contains"`
	Category string   `yaml:"category"`
}

type ScaffoldDir struct {
	Parent  string   `yaml:"parent"`
	Subdirs []string `yaml:"subdirs"`
}

// GenOutput describes one artifact produced by the external analysis
// CLI: the arguments to pass and the file its stdout lands in.
type GenOutput struct {
	Name    string   `yaml:"name"`
	Args    []string `yaml:"args"`
	OutFile string   `yaml:"out_file"`
}

type GenConfig struct {
	CLI     string      `yaml:"cli"`
	Timeout Duration    `yaml:"timeout"`
	Outputs []GenOutput `yaml:"outputs"`
}

type HistoryConfig struct {
	Enabled bool   `yaml:"enabled"`
	DBPath  string `yaml:"db_path"`
}

type WatchConfig struct {
	DebounceWindow Duration `yaml:"debounce_window"`
	MaxBatchSize   int      `yaml:"max_batch_size"`
	IgnorePatterns []string `yaml:"ignore_patterns"`
}

type Config struct {
	LogLevel    string `yaml:"log_level"`
	LogFormat   string `yaml:"log_format"`
	TablePath   string `yaml:"table_path"`
	LocalOrigin string `yaml:"local_origin"`

	// TolerancePct bounds how far a new table's row count may drift
	// from the prior table's before validation flags it.
	TolerancePct int `yaml:"tolerance_pct"`

	GitTimeout Duration `yaml:"git_timeout"`

	Roots      Roots            `yaml:"roots"`
	Categories []CategoryRule   `yaml:"categories"`
	Seeds      []catalog.Record `yaml:"seeds"`

	Scaffold []ScaffoldDir `yaml:"scaffold"`
	Gen      GenConfig     `yaml:"gen"`
	History  HistoryConfig `yaml:"history"`
	Watch    WatchConfig   `yaml:"watch"`
}

func Default() *Config {
	return &Config{
		LogLevel:     "info",
		LogFormat:    "text",
		TablePath:    "tools-and-commands.csv",
		LocalOrigin:  "local",
		TolerancePct: 25,
		GitTimeout:   Duration(5 * time.Second),
		Categories:   defaultCategories(),
		Scaffold:     defaultScaffold(),
		Gen:          defaultGen(),
		History: HistoryConfig{
			Enabled: true,
			DBPath:  ".artcat/history.db",
		},
		Watch: WatchConfig{
			DebounceWindow: Duration(300 * time.Millisecond),
			MaxBatchSize:   100,
			IgnorePatterns: []string{
				"**/.git/**",
				"**/node_modules/**",
				"**/__pycache__/**",
				"**/dist/**",
				"**/build/**",
				"**/vendor/**",
			},
		},
	}
}

func defaultCategories() []CategoryRule {
	return []CategoryRule{
		{Field: "name", Contains: []string{"persona"}, Category: "Personas"},
		{Field: "name", Contains: []string{"doc", "template"}, Category: "Documentation"},
		{Field: "name", Contains: []string{"test", "coverage", "flaky"}, Category: "Testing"},
		{Field: "name", Contains: []string{"workorder", "session", "plan"}, Category: "Workflow"},
		{Field: "name", Contains: []string{"audit", "check", "validate"}, Category: "Quality"},
		{Field: "description", Contains: []string{"workflow"}, Category: "Workflow"},
		{Field: "name", Contains: []string{"generate", "create"}, Category: "Generators"},
		{Field: "name", Contains: []string{"scan", "parse", "extract"}, Category: "Scanners"},
		{Field: "name", Contains: []string{"export", "diagram"}, Category: "Exporters"},
	}
}

func defaultScaffold() []ScaffoldDir {
	return []ScaffoldDir{
		{Parent: ".coderef", Subdirs: []string{"reports/complexity", "diagrams", "exports"}},
		{Parent: "coderef", Subdirs: []string{"workorder", "archived", "standards", "documents", "reference", "user", "notes"}},
	}
}

func defaultGen() GenConfig {
	return GenConfig{
		CLI:     "coderef",
		Timeout: Duration(2 * time.Minute),
		Outputs: []GenOutput{
			{Name: "index", Args: []string{"scan", "--json"}, OutFile: ".coderef/index.json"},
			{Name: "graph", Args: []string{"graph", "--format", "json"}, OutFile: ".coderef/graph.json"},
			{Name: "mermaid", Args: []string{"graph", "--format", "mermaid"}, OutFile: ".coderef/diagrams/graph.mmd"},
			{Name: "dot", Args: []string{"graph", "--format", "dot"}, OutFile: ".coderef/diagrams/graph.dot"},
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path, when
// one is given.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	return cfg, nil
}
