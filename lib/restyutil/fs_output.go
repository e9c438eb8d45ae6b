package restyutil

import (
	devenv "frsmenu/dev/env"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// FilesystemOutput writes every instrumented message to its own file under a
// fresh per-run directory.
type FilesystemOutput struct {
	directory string
}

// NewFilesystemOutput creates <dir>/<run id>/. `dir` may start with
// "<dev_state>".
func NewFilesystemOutput(dir string) (FilesystemOutput, error) {
	dir, err := devenv.ResolvePath(dir)
	if err != nil {
		return FilesystemOutput{}, err
	}
	dir = filepath.Join(dir, uuid.NewString())
	err = os.MkdirAll(dir, 0700)
	if err != nil {
		return FilesystemOutput{}, err
	}
	return FilesystemOutput{directory: dir}, nil
}

func (o FilesystemOutput) Directory() string {
	return o.directory
}

func (o FilesystemOutput) Write(id string, contents string) {
	err := os.WriteFile(filepath.Join(o.directory, id+".txt"), []byte(contents), 0600)
	if err != nil {
		slog.Warn("failed to write message info file", "id", id, "err", err)
	}
}
