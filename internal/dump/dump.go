// Package dump writes decoded debug payload fields to flat files so a
// developer can inspect a session returned by the web IDE without any
// tooling beyond a text editor.
package dump

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/MarkTrayford/CPIDebugLocal/pkg/payload"
)

// Writer dumps payload fields into per-session directories under a
// base directory. Output is transient working material, not a store:
// nothing is ever read back and existing dumps are overwritten.
type Writer struct {
	baseDir string
}

// NewWriter creates a dump writer rooted at baseDir.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// Write dumps the payload into a directory named after the session ID.
// Scalar fields become one file each; headers and properties become
// key=value line files with keys sorted for stable diffs. Returns the
// session directory path.
func (w *Writer) Write(sessionID string, p *payload.DebugPayload) (string, error) {
	dir := filepath.Join(w.baseDir, sessionID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating dump directory: %w", err)
	}

	files := map[string]string{
		"script.groovy":  p.Script,
		"input.txt":      p.ScriptInput,
		"session.txt":    p.CurrentSessionType,
		"function.txt":   p.FunctionName,
		"headers.txt":    formatPairs(p.Headers),
		"properties.txt": formatPairs(p.Properties),
	}
	for name, content := range files {
		path := filepath.Join(dir, name)
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return "", fmt.Errorf("writing %s: %w", name, err)
		}
	}

	return dir, nil
}

// formatPairs renders a string map as key=value lines, sorted by key.
func formatPairs(m map[string]string) string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for _, k := range keys {
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(m[k])
		b.WriteByte('\n')
	}
	return b.String()
}
