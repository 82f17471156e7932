package adapters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"project-updater/internal/ports"
	"project-updater/internal/shared"
	"project-updater/internal/types"
)

// PackagistURL is the default public Composer repository.
const PackagistURL = "https://repo.packagist.org"

const unsetMarker = "__unset"

// ComposerRepositoryAdapter reads Composer repository metadata: the
// per-package v2 metadata files when the root advertises a
// metadata-url, otherwise the packages inlined in packages.json.
type ComposerRepositoryAdapter struct {
	URL  string
	http httpRetryConfig
	mu   sync.Mutex
	root *composerRoot
}

type composerRoot struct {
	MetadataURL string          `json:"metadata-url"`
	Packages    json.RawMessage `json:"packages"`
}

type composerMetadata struct {
	Packages map[string][]map[string]json.RawMessage `json:"packages"`
	Minified string                                  `json:"minified"`
}

type composerPackage struct {
	Name    string     `json:"name"`
	Version string     `json:"version"`
	Dist    types.Dist `json:"dist"`
}

func NewComposerRepositoryAdapter(baseURL string, cfg HTTPConfig) *ComposerRepositoryAdapter {
	return &ComposerRepositoryAdapter{
		URL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http: normalizeHTTPConfig(cfg),
	}
}

func (a *ComposerRepositoryAdapter) Name() string {
	return "composer " + a.URL
}

func (a *ComposerRepositoryAdapter) FindPackages(ctx context.Context, name string) ([]types.Package, error) {
	root, err := a.loadRoot(ctx)
	if err != nil {
		return nil, err
	}
	lookup := shared.NormalizePackageName(name)
	if strings.TrimSpace(root.MetadataURL) == "" {
		return inlinePackages(root.Packages, lookup)
	}
	var out []types.Package
	for _, suffix := range []string{"", "~dev"} {
		location, err := a.resolve(strings.ReplaceAll(root.MetadataURL, "%package%", lookup+suffix))
		if err != nil {
			return nil, err
		}
		data, found, err := a.fetch(ctx, location)
		if err != nil {
			return nil, err
		}
		if !found {
			continue
		}
		pkgs, err := parseComposerMetadata(data, lookup)
		if err != nil {
			return nil, err
		}
		out = append(out, pkgs...)
	}
	return out, nil
}

func (a *ComposerRepositoryAdapter) loadRoot(ctx context.Context) (*composerRoot, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.root != nil {
		return a.root, nil
	}
	location, err := a.resolve("packages.json")
	if err != nil {
		return nil, err
	}
	data, found, err := a.fetch(ctx, location)
	if err != nil {
		return nil, err
	}
	root := &composerRoot{}
	if found {
		if err := json.Unmarshal(data, root); err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("invalid composer repository root").
				WithCause(err)
		}
	}
	if !found || (root.MetadataURL == "" && len(root.Packages) == 0) {
		root.MetadataURL = "/p2/%package%.json"
	}
	a.root = root
	return root, nil
}

// resolve maps a repository-relative reference to a URL or local path.
func (a *ComposerRepositoryAdapter) resolve(ref string) (string, error) {
	if path, local := shared.LocalPath(a.URL); local {
		return filepath.Join(path, filepath.FromSlash(strings.TrimPrefix(ref, "/"))), nil
	}
	base, err := url.Parse(a.URL + "/")
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid composer repository url").
			WithCause(err)
	}
	target, err := url.Parse(ref)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid composer metadata reference").
			WithCause(err)
	}
	return base.ResolveReference(target).String(), nil
}

// fetch reads a local file or downloads a URL. Missing resources are
// reported through the boolean rather than as an error.
func (a *ComposerRepositoryAdapter) fetch(ctx context.Context, location string) ([]byte, bool, error) {
	if !isHTTPURL(location) {
		data, err := os.ReadFile(location)
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		if err != nil {
			return nil, false, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read composer metadata").
				WithCause(err)
		}
		return data, true, nil
	}
	resp, err := doRequest(ctx, location, a.http)
	if err != nil {
		return nil, false, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to fetch composer metadata").
			WithCause(statusError(resp, location))
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read composer metadata").
			WithCause(err)
	}
	return data, true, nil
}

func parseComposerMetadata(data []byte, name string) ([]types.Package, error) {
	var metadata composerMetadata
	if err := json.Unmarshal(data, &metadata); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid composer metadata").
			WithCause(err)
	}
	var out []types.Package
	for _, key := range sortedKeys(metadata.Packages) {
		if !strings.EqualFold(key, name) {
			continue
		}
		versions := metadata.Packages[key]
		if metadata.Minified != "" {
			versions = expandMinified(versions)
		}
		for _, fields := range versions {
			pkg, err := decodeComposerPackage(fields)
			if err != nil {
				return nil, err
			}
			if pkg.Name == "" {
				pkg.Name = key
			}
			out = append(out, pkg)
		}
	}
	return out, nil
}

// expandMinified undoes the composer/2.0 minification where each entry
// only lists the fields that changed from the previous one.
func expandMinified(versions []map[string]json.RawMessage) []map[string]json.RawMessage {
	expanded := make([]map[string]json.RawMessage, 0, len(versions))
	var last map[string]json.RawMessage
	for _, fields := range versions {
		next := map[string]json.RawMessage{}
		for key, value := range last {
			next[key] = value
		}
		for key, value := range fields {
			if bytes.Equal(bytes.TrimSpace(value), []byte(`"`+unsetMarker+`"`)) {
				delete(next, key)
				continue
			}
			next[key] = value
		}
		expanded = append(expanded, next)
		last = next
	}
	return expanded
}

func decodeComposerPackage(fields map[string]json.RawMessage) (types.Package, error) {
	encoded, err := json.Marshal(fields)
	if err != nil {
		return types.Package{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to re-encode composer package").
			WithCause(err)
	}
	var decoded composerPackage
	if err := json.Unmarshal(encoded, &decoded); err != nil {
		return types.Package{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid composer package entry").
			WithCause(err)
	}
	return types.Package{
		Name:          shared.NormalizePackageName(decoded.Name),
		PrettyVersion: decoded.Version,
		Dist:          decoded.Dist,
	}, nil
}

// inlinePackages reads the name -> version -> package map some static
// repositories embed directly in packages.json.
func inlinePackages(raw json.RawMessage, name string) ([]types.Package, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil, nil
	}
	var inline map[string]map[string]composerPackage
	if err := json.Unmarshal(trimmed, &inline); err != nil {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid inline composer packages").
			WithCause(err)
	}
	var out []types.Package
	for _, key := range sortedKeys(inline) {
		if !strings.EqualFold(key, name) {
			continue
		}
		versions := inline[key]
		for _, version := range sortedKeys(versions) {
			entry := versions[version]
			if entry.Version == "" {
				entry.Version = version
			}
			if entry.Name == "" {
				entry.Name = key
			}
			out = append(out, types.Package{
				Name:          shared.NormalizePackageName(entry.Name),
				PrettyVersion: entry.Version,
				Dist:          entry.Dist,
			})
		}
	}
	return out, nil
}

func sortedKeys[V any](values map[string]V) []string {
	keys := make([]string, 0, len(values))
	for key := range values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var _ ports.PackageSourcePort = (*ComposerRepositoryAdapter)(nil)
