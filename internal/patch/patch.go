// Package patch applies targeted, idempotent edits to text configuration
// files: anchored line replacement, marker-guarded block appends, and
// conditional line insertion. All writes go through a temp file and an
// atomic rename so an interrupted run never leaves a half-written config.
package patch

import (
	"errors"
	"fmt"
	"os"
	"regexp"
	"strings"

	"github.com/hostprep/hostprep/internal/ports"
)

// Outcome describes what a patch operation did.
type Outcome string

const (
	// OutcomeChanged means the file was modified.
	OutcomeChanged Outcome = "changed"
	// OutcomeNoop means the file was already in the desired state.
	OutcomeNoop Outcome = "noop"
)

// ErrAnchorNotFound is returned when an anchored edit cannot locate its
// anchor line. Callers surface this as a skip, not a failure: the target
// may already be in a different but acceptable state.
var ErrAnchorNotFound = errors.New("anchor not found")

const defaultMode os.FileMode = 0o644

// Patcher applies idempotent edits to text files.
type Patcher struct {
	fs ports.FileSystem
}

// New creates a Patcher over the given filesystem.
func New(fs ports.FileSystem) *Patcher {
	return &Patcher{fs: fs}
}

// ReplaceLine replaces every line matching anchor with replacement.
// The anchors used in practice match exactly one line. The rest of the file
// is preserved byte for byte. A missing file is an error; a present file
// with no matching line returns ErrAnchorNotFound. Re-running after success
// is a no-op.
func (p *Patcher) ReplaceLine(path string, anchor *regexp.Regexp, replacement string) (Outcome, error) {
	path = ports.ExpandPath(path)

	data, err := p.fs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	lines := strings.Split(string(data), "\n")
	matched := false
	changed := false
	for i, line := range lines {
		if !anchor.MatchString(line) {
			continue
		}
		matched = true
		if line != replacement {
			lines[i] = replacement
			changed = true
		}
	}

	if !matched {
		return "", fmt.Errorf("%w: %s in %s", ErrAnchorNotFound, anchor.String(), path)
	}
	if !changed {
		return OutcomeNoop, nil
	}

	return OutcomeChanged, p.write(path, strings.Join(lines, "\n"))
}

// AppendBlock appends a marker line followed by block unless the marker is
// already present. Presence of the marker is the idempotency check. A
// missing file is created fresh.
func (p *Patcher) AppendBlock(path, marker, block string) (Outcome, error) {
	path = ports.ExpandPath(path)

	var content string
	data, err := p.fs.ReadFile(path)
	switch {
	case err == nil:
		content = string(data)
	case errors.Is(err, os.ErrNotExist):
		content = ""
	default:
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	if strings.Contains(content, marker) {
		return OutcomeNoop, nil
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += marker + "\n" + block
	if !strings.HasSuffix(content, "\n") {
		content += "\n"
	}

	return OutcomeChanged, p.write(path, content)
}

// EnsureLine appends line if no line of the file exactly matches probe.
// A missing file is an error: there is nothing to extend.
func (p *Patcher) EnsureLine(path, probe, line string) (Outcome, error) {
	path = ports.ExpandPath(path)

	data, err := p.fs.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}

	content := string(data)
	for _, existing := range strings.Split(content, "\n") {
		if existing == probe {
			return OutcomeNoop, nil
		}
	}

	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += line + "\n"

	return OutcomeChanged, p.write(path, content)
}

// write persists content atomically, preserving the mode of an existing
// target.
func (p *Patcher) write(path, content string) error {
	mode := defaultMode
	if info, err := p.fs.GetFileInfo(path); err == nil {
		mode = info.Mode.Perm()
	}
	return p.fs.WriteFileAtomic(path, []byte(content), mode)
}
