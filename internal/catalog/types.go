package catalog

type Kind string

const (
	KindTool          Kind = "Tool"
	KindCommand       Kind = "Command"
	KindScript        Kind = "Script"
	KindWorkflow      Kind = "Workflow"
	KindOutput        Kind = "Output"
	KindValidator     Kind = "Validator"
	KindSchema        Kind = "Schema"
	KindResourceSheet Kind = "ResourceSheet"
	KindTab           Kind = "Tab"
)

var Kinds = []Kind{
	KindTool,
	KindCommand,
	KindScript,
	KindWorkflow,
	KindOutput,
	KindValidator,
	KindSchema,
	KindResourceSheet,
	KindTab,
}

func (k Kind) Valid() bool {
	for _, known := range Kinds {
		if k == known {
			return true
		}
	}
	return false
}

type Status string

const (
	StatusActive     Status = "active"
	StatusDeprecated Status = "deprecated"
	StatusDraft      Status = "draft"
	StatusAlias      Status = "alias"
)

var Statuses = []Status{StatusActive, StatusDeprecated, StatusDraft, StatusAlias}

func (s Status) Valid() bool {
	for _, known := range Statuses {
		if s == known {
			return true
		}
	}
	return false
}

// Record is the canonical unit of inventory. Timestamps are RFC 3339
// strings and stay empty until resolved.
type Record struct {
	Kind        Kind   `yaml:"kind"`
	Origin      string `yaml:"origin"`
	Category    string `yaml:"category"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Status      Status `yaml:"status"`
	SourcePath  string `yaml:"path"`
	Created     string `yaml:"created,omitempty"`
	Updated     string `yaml:"updated,omitempty"`
}

// Key identifies a record across scans. At most one record per key
// survives in any final table.
type Key struct {
	Kind   Kind
	Origin string
	Name   string
}

func (r Record) Key() Key {
	return Key{Kind: r.Kind, Origin: r.Origin, Name: r.Name}
}

// ScanResult is the ephemeral output of one scan pass. It is never
// persisted directly; it always goes through reconciliation.
type ScanResult struct {
	Records []Record
	Errors  []ExtractionError
}
