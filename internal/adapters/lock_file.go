package adapters

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"project-updater/internal/ports"
	"project-updater/internal/types"
)

// LockFileAdapter persists lock records as <shortName>.lock JSON files
// inside the target directory.
type LockFileAdapter struct{}

func NewLockFileAdapter() LockFileAdapter {
	return LockFileAdapter{}
}

// LockFilePath is where the lock record of packageName lives in dir.
func LockFilePath(dir string, packageName string) string {
	return filepath.Join(dir, types.ShortName(packageName)+".lock")
}

func (a LockFileAdapter) Read(dir string, packageName string) (types.LockRecord, bool, error) {
	path := LockFilePath(dir, packageName)
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return types.LockRecord{}, false, nil
	}
	if err != nil {
		return types.LockRecord{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read lock file").
			WithCause(err)
	}
	var record types.LockRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return types.LockRecord{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid lock file " + path).
			WithCause(err)
	}
	return record, true, nil
}

func (a LockFileAdapter) Write(dir string, packageName string, pkg types.Package, appliedAt time.Time) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	encoder.SetEscapeHTML(false)
	encoder.SetIndent("", "    ")
	if err := encoder.Encode(types.NewLockRecord(pkg, appliedAt)); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode lock record").
			WithCause(err)
	}
	return writeFileAtomic(LockFilePath(dir, packageName), buf.Bytes(), 0o644)
}

// writeFileAtomic writes through a temp file in the same directory and
// renames it over path, so readers see the old or the new content only.
func writeFileAtomic(path string, data []byte, perm fs.FileMode) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create temp lock file").
			WithCause(err)
	}
	tmpPath := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpPath)
		}
	}()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write lock file").
			WithCause(err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to sync lock file").
			WithCause(err)
	}
	if err := tmp.Close(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to close lock file").
			WithCause(err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to set lock file permissions").
			WithCause(err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to replace lock file").
			WithCause(err)
	}
	committed = true
	return nil
}

var _ ports.LockStorePort = LockFileAdapter{}
