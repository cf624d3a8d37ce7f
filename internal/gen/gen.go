package gen

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"artcat/internal/config"
	"artcat/internal/logger"
)

var log = logger.ForComponent("gen")

// Runner wraps the external analysis CLI. Each configured output is
// produced by one subprocess invocation whose stdout is written
// verbatim to the named file; existing destinations are skipped.
type Runner struct {
	cfg config.GenConfig
}

func New(cfg config.GenConfig) *Runner {
	return &Runner{cfg: cfg}
}

type Outcome struct {
	Written []string
	Skipped []string
	Planned []string
	Errors  []string
}

func (r *Runner) Run(ctx context.Context, projectRoot string, dryRun bool) Outcome {
	var out Outcome

	for _, output := range r.cfg.Outputs {
		dest := filepath.Join(projectRoot, filepath.FromSlash(output.OutFile))

		if _, err := os.Stat(dest); err == nil {
			log.Debug("destination exists, skipping", "name", output.Name, "path", dest)
			out.Skipped = append(out.Skipped, dest)
			continue
		}

		if dryRun {
			out.Planned = append(out.Planned, dest)
			continue
		}

		data, err := r.invoke(ctx, projectRoot, output.Args)
		if err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %v", output.Name, err))
			continue
		}
		if len(bytes.TrimSpace(data)) == 0 {
			log.Debug("no output, skipping", "name", output.Name)
			out.Skipped = append(out.Skipped, dest)
			continue
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %v", output.Name, err))
			continue
		}
		if err := os.WriteFile(dest, stripProgressNoise(data), 0644); err != nil {
			out.Errors = append(out.Errors, fmt.Sprintf("%s: %v", output.Name, err))
			continue
		}

		log.Info("output written", "name", output.Name, "path", dest, "bytes", len(data))
		out.Written = append(out.Written, dest)
	}

	return out
}

func (r *Runner) invoke(ctx context.Context, dir string, args []string) ([]byte, error) {
	timeout := time.Duration(r.cfg.Timeout)
	if timeout <= 0 {
		timeout = 2 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, r.cfg.CLI, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%s %s: %w (%s)", r.cfg.CLI, strings.Join(args, " "), err, strings.TrimSpace(stderr.String()))
	}

	return stdout.Bytes(), nil
}

// stripProgressNoise drops lines that open with non-ASCII bytes,
// typically spinner and emoji chatter the wrapped CLI mixes into its
// report output.
func stripProgressNoise(data []byte) []byte {
	lines := bytes.Split(data, []byte("\n"))
	kept := make([][]byte, 0, len(lines))

	for _, line := range lines {
		probe := line
		if len(probe) > 20 {
			probe = probe[:20]
		}
		noisy := false
		for _, b := range probe {
			if b > 0x7F {
				noisy = true
				break
			}
		}
		if !noisy {
			kept = append(kept, line)
		}
	}

	return bytes.Join(kept, []byte("\n"))
}
