package ports

import (
	"context"

	"project-updater/internal/types"
)

// ArchiveFetcherPort retrieves the distribution archive of a package
// into a local file next to targetDir and returns its path.
type ArchiveFetcherPort interface {
	Fetch(ctx context.Context, pkg types.Package, targetDir string) (string, error)
}

// ArchiveApplierPort extracts a fetched archive. Cleanup never fails.
type ArchiveApplierPort interface {
	Apply(ctx context.Context, job *types.ArchiveJob) error
	Cleanup(ctx context.Context, path string)
}
