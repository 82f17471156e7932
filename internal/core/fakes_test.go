package core

import (
	"context"

	"project-updater/internal/types"
)

type fakeSource struct {
	name     string
	packages []types.Package
	err      error
	calls    int
}

func (f *fakeSource) Name() string {
	return f.name
}

func (f *fakeSource) FindPackages(_ context.Context, name string) ([]types.Package, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.packages, nil
}

func releases(name string, versions ...string) []types.Package {
	out := make([]types.Package, 0, len(versions))
	for _, version := range versions {
		out = append(out, types.Package{
			Name:          name,
			PrettyVersion: version,
			Dist: types.Dist{
				Type: types.DistTypeZip,
				URL:  "https://example.test/" + name + "/" + version + ".zip",
			},
		})
	}
	return out
}
