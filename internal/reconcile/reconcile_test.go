package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artcat/internal/catalog"
)

func TestReconcileInsertsNewRecords(t *testing.T) {
	cand := []catalog.Record{
		{Kind: catalog.KindTool, Origin: "ci", Name: "ping", Status: catalog.StatusActive},
	}

	result := Reconcile(nil, cand, "local")
	require.Len(t, result.Table, 1)
	assert.Equal(t, 1, result.Stats.Inserted)
	assert.Empty(t, result.Warnings)
}

func TestReconcileMergePrecedence(t *testing.T) {
	prior := []catalog.Record{{
		Kind: catalog.KindTool, Origin: "ci", Name: "ping",
		Category: "Curated", Description: "Hand-written description",
		Status: catalog.StatusDeprecated, SourcePath: "old/server.py",
		Created: "2020-01-01T00:00:00Z", Updated: "2020-01-01T00:00:00Z",
	}}

	cand := []catalog.Record{{
		Kind: catalog.KindTool, Origin: "ci", Name: "ping",
		Description: "Fresh description",
		SourcePath:  "src/server.py",
		Updated:     "2024-01-01T00:00:00Z",
	}}

	result := Reconcile(prior, cand, "local")
	require.Len(t, result.Table, 1)
	assert.Equal(t, 1, result.Stats.Merged)

	rec := result.Table[0]
	assert.Equal(t, "Fresh description", rec.Description)
	assert.Equal(t, "src/server.py", rec.SourcePath)
	assert.Equal(t, "2024-01-01T00:00:00Z", rec.Updated)

	// Fields the candidate left empty keep their prior values.
	assert.Equal(t, "Curated", rec.Category)
	assert.Equal(t, catalog.StatusDeprecated, rec.Status)
	assert.Equal(t, "2020-01-01T00:00:00Z", rec.Created)
}

func TestReconcileRetainsPriorOnlyRecords(t *testing.T) {
	prior := []catalog.Record{
		{Kind: catalog.KindScript, Origin: "local", Name: "gone.py", Status: catalog.StatusActive},
	}

	result := Reconcile(prior, nil, "local")
	require.Len(t, result.Table, 1)
	assert.Equal(t, "gone.py", result.Table[0].Name)
}

func TestReconcileAliasRule(t *testing.T) {
	cand := []catalog.Record{
		{Kind: catalog.KindCommand, Origin: "local", Name: "/build", Status: catalog.StatusActive},
		{Kind: catalog.KindCommand, Origin: "ci", Name: "/build", Category: "Release",
			Description: "Build and publish artifacts", Status: catalog.StatusActive},
	}

	result := Reconcile(nil, cand, "local")
	require.Len(t, result.Table, 2)
	assert.Equal(t, 1, result.Stats.Aliased)

	var local catalog.Record
	for _, rec := range result.Table {
		if rec.Origin == "local" {
			local = rec
		}
	}

	assert.Equal(t, catalog.StatusAlias, local.Status)
	assert.Equal(t, "Release", local.Category)
	assert.Equal(t, "Alias for ci - Build and publish artifacts", local.Description)
}

func TestReconcileAliasKeepsExistingDescription(t *testing.T) {
	cand := []catalog.Record{
		{Kind: catalog.KindCommand, Origin: "local", Name: "/build",
			Description: "Local wrapper", Status: catalog.StatusActive},
		{Kind: catalog.KindCommand, Origin: "ci", Name: "/build", Status: catalog.StatusActive},
	}

	result := Reconcile(nil, cand, "local")

	for _, rec := range result.Table {
		if rec.Origin == "local" {
			assert.Equal(t, catalog.StatusAlias, rec.Status)
			assert.Equal(t, "Local wrapper", rec.Description)
		}
	}
}

func TestReconcileDedupeLastWins(t *testing.T) {
	prior := []catalog.Record{
		{Kind: catalog.KindTool, Origin: "ci", Name: "ping", Description: "first"},
	}
	// A second row with the same key, as two independently built tables
	// concatenated would produce.
	prior = append(prior, catalog.Record{Kind: catalog.KindTool, Origin: "ci", Name: "ping", Description: "second"})

	result := Reconcile(prior, nil, "local")
	require.Len(t, result.Table, 1)
	assert.Equal(t, "second", result.Table[0].Description)
	assert.Equal(t, 1, result.Stats.Deduped)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "duplicate key")
}

func TestReconcileSortOrder(t *testing.T) {
	cand := []catalog.Record{
		{Kind: catalog.KindTool, Origin: "ci", Category: "B", Name: "b"},
		{Kind: catalog.KindCommand, Origin: "local", Category: "A", Name: "/z"},
		{Kind: catalog.KindCommand, Origin: "ci", Category: "A", Name: "/a"},
		{Kind: catalog.KindTool, Origin: "ci", Category: "A", Name: "a"},
	}

	result := Reconcile(nil, cand, "unused")

	var got []string
	for _, rec := range result.Table {
		got = append(got, string(rec.Kind)+"/"+rec.Origin+"/"+rec.Category+"/"+rec.Name)
	}
	assert.Equal(t, []string{
		"Command/ci/A//a",
		"Command/local/A//z",
		"Tool/ci/A/a",
		"Tool/ci/B/b",
	}, got)
}

func TestReconcileIdempotent(t *testing.T) {
	cand := []catalog.Record{
		{Kind: catalog.KindTool, Origin: "ci", Name: "ping", Description: "Ping", Status: catalog.StatusActive},
		{Kind: catalog.KindCommand, Origin: "local", Name: "/build", Status: catalog.StatusActive},
		{Kind: catalog.KindCommand, Origin: "ci", Name: "/build", Category: "Release", Status: catalog.StatusActive},
	}

	once := Reconcile(nil, cand, "local")
	twice := Reconcile(once.Table, cand, "local")

	assert.Equal(t, once.Table, twice.Table)
}
