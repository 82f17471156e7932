package app

import (
	"context"

	"github.com/rs/zerolog/log"

	"project-updater/internal/types"
)

// SelfUpdate fetches and extracts the resolved package into the project
// directory and records it in the lock file. It returns only once the
// whole pipeline has finished.
func (s Service) SelfUpdate(ctx context.Context, req UpdateRequest) (SelfUpdateResult, error) {
	res, err := s.resolve(ctx, req)
	if err != nil {
		return SelfUpdateResult{}, err
	}
	pkg := res.Selection.Package
	result := SelfUpdateResult{
		Package:   pkg,
		TargetDir: res.Dir,
		Lock:      res.Lock,
		Advisory:  res.Selection.Advisory,
	}
	if res.current() {
		return result, nil
	}

	if err := s.apply(ctx, pkg, res.Dir); err != nil {
		return SelfUpdateResult{}, err
	}
	appliedAt := s.now()
	if err := s.Locks.Write(res.Dir, pkg.Name, pkg, appliedAt); err != nil {
		return SelfUpdateResult{}, err
	}
	result.Applied = true
	result.Lock = types.NewLockRecord(pkg, appliedAt)
	return result, nil
}

// apply fetches and extracts the archive. The fetched file is removed on
// every path once it exists.
func (s Service) apply(ctx context.Context, pkg types.Package, dir string) error {
	path, err := s.Fetcher.Fetch(ctx, pkg, dir)
	if err != nil {
		return err
	}
	defer s.Applier.Cleanup(ctx, path)

	job := &types.ArchiveJob{Path: path, TargetDir: dir, State: types.ArchiveStatePending}
	if err := s.Applier.Apply(ctx, job); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("archive", path).Msg("failed to apply archive")
		return err
	}
	return nil
}
