package scaffold

import (
	"fmt"
	"os"
	"path/filepath"

	"artcat/internal/catalog"
	"artcat/internal/config"
	"artcat/internal/logger"
)

var log = logger.ForComponent("scaffold")

// Result reports what one scaffold pass did, or would do in dry-run.
type Result struct {
	Created []string
	Skipped []string
	Planned []string
	Errors  []string
}

func (r Result) OK() bool {
	return len(r.Errors) == 0
}

// Apply creates the configured directory layout under projectRoot.
// Pre-existing directories are reported and left untouched; dry-run
// reports intended actions without touching the filesystem.
func Apply(projectRoot string, layout []config.ScaffoldDir, dryRun bool) (Result, error) {
	var result Result

	root, err := filepath.Abs(projectRoot)
	if err != nil {
		return result, catalog.Fatal("resolve project root", err)
	}

	if _, err := os.Stat(root); err != nil {
		if dryRun {
			log.Warn("project root does not exist", "path", root)
		} else {
			return result, catalog.Fatal("project root", err)
		}
	}

	for _, dir := range layout {
		parent := filepath.Join(root, dir.Parent)
		targets := append([]string{parent}, subdirPaths(parent, dir.Subdirs)...)

		for _, target := range targets {
			if dryRun {
				result.Planned = append(result.Planned, target)
				continue
			}

			if _, err := os.Stat(target); err == nil {
				result.Skipped = append(result.Skipped, target)
				continue
			}

			if err := os.MkdirAll(target, 0755); err != nil {
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", target, err))
				continue
			}
			result.Created = append(result.Created, target)
		}
	}

	log.Info("scaffold pass complete",
		"created", len(result.Created),
		"skipped", len(result.Skipped),
		"planned", len(result.Planned),
		"errors", len(result.Errors))
	return result, nil
}

func subdirPaths(parent string, subdirs []string) []string {
	out := make([]string, 0, len(subdirs))
	for _, sub := range subdirs {
		out = append(out, filepath.Join(parent, filepath.FromSlash(sub)))
	}
	return out
}
