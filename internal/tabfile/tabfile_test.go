package tabfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artcat/internal/catalog"
)

func TestWriteReadRoundTrip(t *testing.T) {
	records := []catalog.Record{
		{
			Kind: catalog.KindTool, Origin: "ci", Category: "Scanners",
			Name: "scan_files", Description: "Scans files, with a comma",
			Status: catalog.StatusActive, SourcePath: "src/server.py",
			Created: "2024-01-02T03:04:05Z", Updated: "2024-06-07T08:09:10Z",
		},
		{
			Kind: catalog.KindCommand, Origin: "local", Category: "Workflow",
			Name: "/plan", Description: "Plans \"things\"",
			Status: catalog.StatusAlias, SourcePath: "commands/plan.md",
		},
	}

	path := filepath.Join(t.TempDir(), "table.csv")
	require.NoError(t, Write(path, records))

	table, err := Read(path)
	require.NoError(t, err)
	assert.Empty(t, table.Warnings)
	assert.Equal(t, records, table.Records)
}

func TestReadLegacySevenColumn(t *testing.T) {
	content := "Type,Server,Category,Name,Description,Status,Path\n" +
		"Tool,ci,General,ping,Ping the server,active,src/server.py\n"

	path := filepath.Join(t.TempDir(), "legacy.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := Read(path)
	require.NoError(t, err)
	require.Len(t, table.Records, 1)

	rec := table.Records[0]
	assert.Equal(t, "ping", rec.Name)
	assert.Equal(t, "", rec.Created)
	assert.Equal(t, "", rec.Updated)
}

func TestReadDropsMalformedRows(t *testing.T) {
	content := "Type,Server,Category,Name,Description,Status,Path\n" +
		"Tool,ci,General,ping,Ping,active,src/a.py\n" +
		"Tool,ci,broken\n"

	path := filepath.Join(t.TempDir(), "mixed.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	table, err := Read(path)
	require.NoError(t, err)
	assert.Len(t, table.Records, 1)
	require.Len(t, table.Warnings, 1)
	assert.Contains(t, table.Warnings[0], "got 3")
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.csv"))
	assert.Error(t, err)
}

func TestReadRowsSkipsHeader(t *testing.T) {
	content := "Type,Server,Category,Name,Description,Status,Path\n" +
		"Tool,ci,General,ping,Ping,active,src/a.py\n"

	path := filepath.Join(t.TempDir(), "rows.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	rows, err := ReadRows(path)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "ping", rows[0][3])
}
