package adapters

import (
	"context"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"project-updater/internal/ports"
	"project-updater/internal/shared"
	"project-updater/internal/types"
)

// ArchiveFetcherAdapter downloads or copies a package's dist archive
// into a hidden file next to the target directory.
type ArchiveFetcherAdapter struct {
	http httpRetryConfig
}

func NewArchiveFetcherAdapter(cfg HTTPConfig) ArchiveFetcherAdapter {
	return ArchiveFetcherAdapter{http: normalizeHTTPConfig(cfg)}
}

func (a ArchiveFetcherAdapter) Fetch(ctx context.Context, pkg types.Package, targetDir string) (string, error) {
	dist := pkg.Dist
	if strings.TrimSpace(dist.URL) == "" {
		return "", types.NewFetchError(fmt.Sprintf("package %s has no dist url", pkg.PrettyString()), nil)
	}
	if dist.Type != "" && dist.Type != types.DistTypeZip {
		return "", types.NewFetchError(fmt.Sprintf("unsupported dist type %q for %s", dist.Type, pkg.PrettyString()), nil)
	}
	verifier, err := newChecksumVerifier(dist.Shasum)
	if err != nil {
		return "", err
	}

	body, err := a.open(ctx, dist.URL)
	if err != nil {
		return "", err
	}
	defer body.Close()

	absTarget, err := filepath.Abs(targetDir)
	if err != nil {
		return "", types.NewFetchError("failed to resolve target directory", err)
	}
	tmp, err := os.CreateTemp(filepath.Dir(absTarget), "."+types.ShortName(pkg.Name)+"-*.zip")
	if err != nil {
		return "", types.NewFetchError("failed to create archive file", err)
	}
	path := tmp.Name()

	var writer io.Writer = tmp
	if verifier != nil {
		writer = io.MultiWriter(tmp, verifier.hash)
	}
	written, copyErr := io.Copy(writer, body)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		_ = os.Remove(path)
		if copyErr == nil {
			copyErr = closeErr
		}
		return "", types.NewFetchError("failed to download "+dist.URL, copyErr)
	}
	if verifier != nil {
		if err := verifier.verify(); err != nil {
			_ = os.Remove(path)
			return "", err
		}
	}
	log.Ctx(ctx).Debug().
		Str("package", pkg.PrettyString()).
		Str("path", path).
		Int64("bytes", written).
		Msg("archive fetched")
	return path, nil
}

func (a ArchiveFetcherAdapter) open(ctx context.Context, location string) (io.ReadCloser, error) {
	if isHTTPURL(location) {
		resp, err := doRequest(ctx, location, a.http)
		if err != nil {
			return nil, types.NewFetchError("failed to download "+location, err)
		}
		if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
			statusErr := statusError(resp, location)
			resp.Body.Close()
			return nil, types.NewFetchError("failed to download "+location, statusErr)
		}
		return resp.Body, nil
	}
	path, ok := shared.LocalPath(location)
	if !ok {
		return nil, types.NewFetchError("unsupported dist url "+location, nil)
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, types.NewFetchError("failed to open "+location, err)
	}
	return file, nil
}

type checksumVerifier struct {
	hash     hash.Hash
	expected string
}

// newChecksumVerifier picks the algorithm from the digest length. An
// empty shasum disables verification.
func newChecksumVerifier(shasum string) (*checksumVerifier, error) {
	expected := strings.ToLower(strings.TrimSpace(shasum))
	switch len(expected) {
	case 0:
		return nil, nil
	case sha1.Size * 2:
		return &checksumVerifier{hash: sha1.New(), expected: expected}, nil
	case sha256.Size * 2:
		return &checksumVerifier{hash: sha256.New(), expected: expected}, nil
	default:
		return nil, types.NewFetchError(fmt.Sprintf("unsupported dist shasum %q", shasum), nil)
	}
}

func (v *checksumVerifier) verify() error {
	actual := hex.EncodeToString(v.hash.Sum(nil))
	if actual != v.expected {
		return types.NewFetchError(fmt.Sprintf("checksum mismatch: expected %s, got %s", v.expected, actual), nil)
	}
	return nil
}

var _ ports.ArchiveFetcherPort = ArchiveFetcherAdapter{}
