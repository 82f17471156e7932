package ports

import (
	"time"

	"project-updater/internal/types"
)

// LockStorePort owns the lock record of a target directory. Write
// replaces the record atomically.
type LockStorePort interface {
	Read(dir string, packageName string) (types.LockRecord, bool, error)
	Write(dir string, packageName string, pkg types.Package, appliedAt time.Time) error
}
