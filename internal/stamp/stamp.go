package stamp

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"artcat/internal/extract"
	"artcat/internal/logger"
)

var log = logger.ForComponent("stamp")

// Resolver derives created/updated timestamps for an artifact. The
// chain runs git history, then front-matter date (created only), then
// filesystem metadata, which always answers. Both results are RFC 3339
// and never empty.
type Resolver struct {
	gitTimeout time.Duration
	now        func() time.Time
}

func NewResolver(gitTimeout time.Duration) *Resolver {
	if gitTimeout <= 0 {
		gitTimeout = 5 * time.Second
	}
	return &Resolver{gitTimeout: gitTimeout, now: time.Now}
}

func (r *Resolver) Resolve(ctx context.Context, path string) (created, updated string) {
	created = r.gitCreated(ctx, path)
	updated = r.gitUpdated(ctx, path)

	if created == "" {
		created = frontMatterDate(path)
	}

	fsCreated, fsUpdated := r.fileTimes(path)
	if created == "" {
		created = fsCreated
	}
	if updated == "" {
		updated = fsUpdated
	}

	return created, updated
}

// gitCreated asks git for the commit that added the path. The earliest
// entry is the last output line. Any failure, including the deadline,
// is treated as no answer.
func (r *Resolver) gitCreated(ctx context.Context, path string) string {
	out := r.git(ctx, path, "log", "--diff-filter=A", "--format=%aI", "--", filepath.Base(path))
	if out == "" {
		return ""
	}
	lines := strings.Split(out, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}

func (r *Resolver) gitUpdated(ctx context.Context, path string) string {
	return r.git(ctx, path, "log", "-1", "--format=%aI", "--", filepath.Base(path))
}

func (r *Resolver) git(ctx context.Context, path string, args ...string) string {
	ctx, cancel := context.WithTimeout(ctx, r.gitTimeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = filepath.Dir(path)

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		log.Debug("git query failed", "path", path, "error", err)
		return ""
	}

	return strings.TrimSpace(stdout.String())
}

// frontMatterDate reads an author-asserted date from the artifact's
// front matter. There is no updated equivalent by convention.
func frontMatterDate(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}

	meta, _ := extract.ParseFrontMatter(string(data))
	return extract.FrontMatterString(meta, "date")
}

// fileTimes is the universal backstop. Go exposes no portable creation
// time, so the modification time stands in for both; a stat failure
// falls back to now, keeping the no-empty postcondition.
func (r *Resolver) fileTimes(path string) (created, updated string) {
	info, err := os.Stat(path)
	if err != nil {
		now := r.now().Format(time.RFC3339)
		return now, now
	}

	mod := info.ModTime().Format(time.RFC3339)
	return mod, mod
}
