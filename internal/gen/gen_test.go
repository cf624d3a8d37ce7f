package gen

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"artcat/internal/config"
)

func TestRunWritesCommandOutput(t *testing.T) {
	root := t.TempDir()

	cfg := config.GenConfig{
		CLI:     "echo",
		Timeout: config.Duration(10 * time.Second),
		Outputs: []config.GenOutput{
			{Name: "index", Args: []string{"indexed", "symbols"}, OutFile: "reports/index.txt"},
		},
	}

	outcome := New(cfg).Run(context.Background(), root, false)
	require.Empty(t, outcome.Errors)
	require.Len(t, outcome.Written, 1)

	data, err := os.ReadFile(filepath.Join(root, "reports", "index.txt"))
	require.NoError(t, err)
	assert.Equal(t, "indexed symbols", strings.TrimSpace(string(data)))
}

func TestRunSkipsExistingDestinations(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "index.txt")
	require.NoError(t, os.WriteFile(dest, []byte("keep me"), 0644))

	cfg := config.GenConfig{
		CLI:     "echo",
		Outputs: []config.GenOutput{{Name: "index", Args: []string{"new"}, OutFile: "index.txt"}},
	}

	outcome := New(cfg).Run(context.Background(), root, false)
	assert.Len(t, outcome.Skipped, 1)
	assert.Empty(t, outcome.Written)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "keep me", string(data))
}

func TestRunDryRun(t *testing.T) {
	root := t.TempDir()

	cfg := config.GenConfig{
		CLI:     "echo",
		Outputs: []config.GenOutput{{Name: "index", Args: []string{"x"}, OutFile: "index.txt"}},
	}

	outcome := New(cfg).Run(context.Background(), root, true)
	assert.Len(t, outcome.Planned, 1)

	_, err := os.Stat(filepath.Join(root, "index.txt"))
	assert.True(t, os.IsNotExist(err))
}

func TestRunReportsFailures(t *testing.T) {
	root := t.TempDir()

	cfg := config.GenConfig{
		CLI:     "definitely-not-a-real-binary",
		Outputs: []config.GenOutput{{Name: "index", Args: nil, OutFile: "index.txt"}},
	}

	outcome := New(cfg).Run(context.Background(), root, false)
	require.Len(t, outcome.Errors, 1)
	assert.Contains(t, outcome.Errors[0], "index")
}

func TestStripProgressNoise(t *testing.T) {
	in := []byte("clean line\n⠋ spinning...\nanother clean line\n")
	out := string(stripProgressNoise(in))
	assert.Equal(t, "clean line\nanother clean line\n", out)
}
