package types

import "time"

// LockDatetimeLayout is the timestamp format stored in lock files.
const LockDatetimeLayout = "2006-01-02 15:04:05"

type LockRecord struct {
	Name     string `json:"name"`
	Version  string `json:"version"`
	Datetime string `json:"datetime"`
}

func NewLockRecord(pkg Package, appliedAt time.Time) LockRecord {
	return LockRecord{
		Name:     pkg.Name,
		Version:  pkg.Version,
		Datetime: appliedAt.Format(LockDatetimeLayout),
	}
}

// ArchiveJob tracks one fetched archive through extraction.
type ArchiveJob struct {
	Path      string
	TargetDir string
	State     ArchiveState
}
