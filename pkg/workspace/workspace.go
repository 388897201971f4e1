// Package workspace manages the scratch directory a single discovery run
// owns: the pip download destination and the captured log file.
//
// The lifecycle is deliberately asymmetric. On a clean run the workspace
// is removed; when discovery is partial the workspace is kept so the raw
// downloader log stays inspectable for a postmortem.
package workspace

import (
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// logFileName is the fixed name of the captured downloader log inside a
// workspace.
const logFileName = "pip-download-output.txt"

// Workspace is a uniquely named scratch directory owned by one discovery
// run. It is never shared between invocations.
type Workspace struct {
	dir  string
	kept bool
}

// New creates a fresh workspace under root, named prefix-<uuid>.
// If root is empty, the system temporary directory is used.
func New(root, prefix string) (*Workspace, error) {
	if root == "" {
		root = os.TempDir()
	}
	dir := filepath.Join(root, prefix+"-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// LogPath returns the path of the captured downloader log inside the
// workspace. The file is created by the downloader invocation, not here.
func (w *Workspace) LogPath() string {
	return filepath.Join(w.dir, logFileName)
}

// Keep marks the workspace as retained. Subsequent Remove calls become
// no-ops, leaving the directory and its log on disk.
func (w *Workspace) Keep() {
	w.kept = true
}

// Kept reports whether the workspace was marked as retained.
func (w *Workspace) Kept() bool {
	return w.kept
}

// Remove deletes the workspace directory unless Keep was called.
func (w *Workspace) Remove() error {
	if w.kept {
		return nil
	}
	return os.RemoveAll(w.dir)
}
