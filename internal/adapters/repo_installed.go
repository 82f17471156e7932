package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"project-updater/internal/ports"
	"project-updater/internal/shared"
	"project-updater/internal/types"
)

// InstalledRelativePath locates the installed-package index inside a
// project directory.
var InstalledRelativePath = filepath.Join("vendor", "composer", "installed.json")

// InstalledRepositoryAdapter exposes the packages already installed in
// a project. A missing index is an empty repository.
type InstalledRepositoryAdapter struct {
	Path   string
	mu     sync.Mutex
	cached []composerPackage
	loaded bool
}

type installedFile struct {
	Packages []composerPackage `json:"packages"`
}

func NewInstalledRepositoryAdapter(projectDir string) *InstalledRepositoryAdapter {
	return &InstalledRepositoryAdapter{Path: filepath.Join(projectDir, InstalledRelativePath)}
}

func (a *InstalledRepositoryAdapter) Name() string {
	return "installed " + a.Path
}

func (a *InstalledRepositoryAdapter) FindPackages(_ context.Context, name string) ([]types.Package, error) {
	installed, err := a.load()
	if err != nil {
		return nil, err
	}
	var out []types.Package
	for _, entry := range installed {
		if !strings.EqualFold(entry.Name, name) || strings.TrimSpace(entry.Version) == "" {
			continue
		}
		out = append(out, types.Package{
			Name:          shared.NormalizePackageName(entry.Name),
			PrettyVersion: entry.Version,
			Dist:          entry.Dist,
		})
	}
	return out, nil
}

func (a *InstalledRepositoryAdapter) load() ([]composerPackage, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loaded {
		return a.cached, nil
	}
	data, err := os.ReadFile(a.Path)
	if errors.Is(err, fs.ErrNotExist) {
		a.loaded = true
		return nil, nil
	}
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read installed packages").
			WithCause(err)
	}
	packages, err := decodeInstalled(data)
	if err != nil {
		return nil, err
	}
	a.cached = packages
	a.loaded = true
	return packages, nil
}

// decodeInstalled accepts both the object form with a "packages" list
// and the older bare list form.
func decodeInstalled(data []byte) ([]composerPackage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, nil
	}
	if trimmed[0] == '[' {
		var packages []composerPackage
		if err := json.Unmarshal(trimmed, &packages); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid installed packages format").
				WithCause(err)
		}
		return packages, nil
	}
	var file installedFile
	if err := json.Unmarshal(trimmed, &file); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid installed packages format").
			WithCause(err)
	}
	return file.Packages, nil
}

var _ ports.PackageSourcePort = (*InstalledRepositoryAdapter)(nil)
