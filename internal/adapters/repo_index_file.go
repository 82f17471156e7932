package adapters

import (
	"context"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"project-updater/internal/ports"
	"project-updater/internal/shared"
	"project-updater/internal/types"
)

// RepoIndexFileAdapter serves packages from a YAML repository index
// stored on disk or behind an HTTP URL. The index is loaded once.
type RepoIndexFileAdapter struct {
	Location string
	http     httpRetryConfig
	mu       sync.Mutex
	cached   types.RepoIndexFile
	loaded   bool
}

func NewRepoIndexFileAdapter(location string, cfg HTTPConfig) *RepoIndexFileAdapter {
	return &RepoIndexFileAdapter{Location: location, http: normalizeHTTPConfig(cfg)}
}

func (a *RepoIndexFileAdapter) Name() string {
	return "index " + a.Location
}

func (a *RepoIndexFileAdapter) FindPackages(ctx context.Context, name string) ([]types.Package, error) {
	index, err := a.load(ctx)
	if err != nil {
		return nil, err
	}
	keys := make([]string, 0, len(index.Packages))
	for key := range index.Packages {
		if strings.EqualFold(key, name) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	var out []types.Package
	for _, key := range keys {
		for _, entry := range index.Packages[key] {
			if strings.TrimSpace(entry.Version) == "" {
				continue
			}
			dist := entry.Dist
			dist.URL = a.resolveDistURL(dist.URL)
			out = append(out, types.Package{
				Name:          shared.NormalizePackageName(key),
				PrettyVersion: entry.Version,
				Dist:          dist,
			})
		}
	}
	return out, nil
}

func (a *RepoIndexFileAdapter) load(ctx context.Context) (types.RepoIndexFile, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.loaded {
		return a.cached, nil
	}
	data, err := a.read(ctx)
	if err != nil {
		return types.RepoIndexFile{}, err
	}
	var idx types.RepoIndexFile
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return types.RepoIndexFile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid repo index format").
			WithCause(err)
	}
	if idx.Packages == nil {
		idx.Packages = map[string][]types.RepoIndexVersion{}
	}
	a.cached = idx
	a.loaded = true
	return idx, nil
}

func (a *RepoIndexFileAdapter) read(ctx context.Context) ([]byte, error) {
	if path, local := shared.LocalPath(a.Location); local {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("repo index file not found").
				WithCause(err)
		}
		return data, nil
	}
	resp, err := doRequest(ctx, a.Location, a.http)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to fetch repo index").
			WithCause(statusError(resp, a.Location))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read repo index").
			WithCause(err)
	}
	return data, nil
}

// resolveDistURL makes relative dist paths relative to a local index.
func (a *RepoIndexFileAdapter) resolveDistURL(url string) string {
	path, local := shared.LocalPath(a.Location)
	if !local {
		return url
	}
	return shared.ResolveRelative(filepath.Dir(path), url)
}

var _ ports.PackageSourcePort = (*RepoIndexFileAdapter)(nil)
