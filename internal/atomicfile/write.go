// Package atomicfile provides crash-safe file writing using temporary files
// and atomic renames.

package atomicfile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
)

// Write atomically replaces path with data using a temporary-file-and-rename
// strategy and reports whether the bytes differ from what path held before
// (a missing file counts as changed). The file is rewritten either way, so
// permissions and modification time always reflect the latest run. If any
// step fails the temp file is removed.
func Write(path string, data []byte, perm os.FileMode) (changed bool, err error) {
	changed = !Same(path, data)

	f, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp.*")
	if err != nil {
		return changed, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := f.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = f.Write(data); err != nil {
		f.Close()
		return changed, fmt.Errorf("write temp file: %w", err)
	}
	if err = f.Sync(); err != nil {
		f.Close()
		return changed, fmt.Errorf("sync temp file: %w", err)
	}
	if err = f.Close(); err != nil {
		return changed, fmt.Errorf("close temp file: %w", err)
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		return changed, fmt.Errorf("chmod temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return changed, fmt.Errorf("rename temp file: %w", err)
	}
	return changed, nil
}

// Same reports whether the file at path exists and holds exactly data.
func Same(path string, data []byte) bool {
	existing, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	return bytes.Equal(existing, data)
}
