package app

import "context"

// CheckUpdate reports whether the resolved package differs from the
// locked one. It never writes anything.
func (s Service) CheckUpdate(ctx context.Context, req UpdateRequest) (CheckUpdateResult, error) {
	res, err := s.resolve(ctx, req)
	if err != nil {
		return CheckUpdateResult{}, err
	}
	return CheckUpdateResult{
		Package:     res.Selection.Package,
		Current:     res.current(),
		Lock:        res.Lock,
		LockPresent: res.LockPresent,
		Advisory:    res.Selection.Advisory,
	}, nil
}
