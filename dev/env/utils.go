package devenv

import (
	"bufio"
	"bytes"
	"frsmenu/lib/configutil"
	"os"
	"path/filepath"
	"strings"
)

const (
	moduleName     = "frsmenu"
	stateDirPrefix = "<dev_state>"
)

// declaresModule reports whether dir holds the go.mod of this module.
func declaresModule(dir string) bool {
	mod, err := os.ReadFile(filepath.Join(dir, "go.mod"))
	if err != nil {
		return false
	}
	scanner := bufio.NewScanner(bytes.NewReader(mod))
	for scanner.Scan() {
		name, ok := strings.CutPrefix(strings.TrimSpace(scanner.Text()), "module ")
		if ok {
			return strings.TrimSpace(name) == moduleName
		}
	}
	return false
}

// WorkspaceRoot is the closest parent of the cwd that holds this module.
func WorkspaceRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}
	for !declaresModule(dir) {
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", os.ErrNotExist
		}
		dir = parent
	}
	return dir, nil
}

// GetStateFilePath points into the gitignored dev/.state directory.
func GetStateFilePath(name string) (string, error) {
	root, err := WorkspaceRoot()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, "dev", ".state", filepath.FromSlash(name)), nil
}

func GetStateConfig[T any](name string) (T, error) {
	path, err := GetStateFilePath(name)
	if err != nil {
		var empty T
		return empty, err
	}
	return configutil.ReadConfig[T](path)
}

// ResolvePath expands a leading "<dev_state>" and creates the state directory
// on the way. Other paths are returned as is.
func ResolvePath(path string) (string, error) {
	rest, ok := strings.CutPrefix(path, stateDirPrefix)
	if !ok {
		return path, nil
	}
	resolved, err := GetStateFilePath(strings.TrimPrefix(rest, "/"))
	if err != nil {
		return "", err
	}
	err = os.MkdirAll(filepath.Dir(resolved), 0o755)
	if err != nil {
		return "", err
	}
	return resolved, nil
}
