package core

import "project-updater/internal/types"

// IsCurrent reports whether the lock record already names the resolved
// package at exactly the same normalized version.
func IsCurrent(resolved types.Package, lock types.LockRecord, present bool) bool {
	if !present {
		return false
	}
	return lock.Name == resolved.Name && lock.Version == resolved.Version
}
