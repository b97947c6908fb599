package release

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Workspace is the ephemeral staging directory that owns all
// downloaded and extracted bytes for one run. It never outlives the
// run: callers defer Close immediately after NewWorkspace succeeds, so
// removal happens on every exit path.
type Workspace struct {
	dir string
}

// NewWorkspace creates a fresh uniquely named workspace under the
// system temp directory.
func NewWorkspace() (*Workspace, error) {
	dir := filepath.Join(os.TempDir(), "ftty-install-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory path.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path joins path elements onto the workspace directory.
func (w *Workspace) Path(elem ...string) string {
	return filepath.Join(append([]string{w.dir}, elem...)...)
}

// Close removes the workspace and everything in it. Safe to call on
// a workspace whose directory is already gone.
func (w *Workspace) Close() error {
	if err := os.RemoveAll(w.dir); err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	return nil
}
