package adapters

import (
	"archive/zip"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"project-updater/internal/ports"
	"project-updater/internal/types"
)

// ZipArchiveAdapter extracts zip archives into a target directory.
type ZipArchiveAdapter struct {
	// FoldsCase reports whether dir lives on a case-insensitive
	// filesystem. Nil disables collision checks.
	FoldsCase func(dir string) bool
}

func NewZipArchiveAdapter() ZipArchiveAdapter {
	return ZipArchiveAdapter{FoldsCase: probeCaseInsensitive}
}

func (a ZipArchiveAdapter) Apply(ctx context.Context, job *types.ArchiveJob) error {
	job.State = types.ArchiveStatePending
	if err := a.extract(ctx, job.Path, job.TargetDir); err != nil {
		job.State = types.ArchiveStateFailed
		return err
	}
	job.State = types.ArchiveStateExtracted
	return nil
}

func (a ZipArchiveAdapter) extract(ctx context.Context, path string, targetDir string) error {
	info, err := os.Stat(path)
	if err != nil || info.Size() == 0 {
		return types.NewArchiveCorruptedError(path)
	}

	reader, err := zip.OpenReader(path)
	if reader != nil {
		defer reader.Close()
	}
	// Insecure entry names are rejected per entry during extraction.
	if err != nil && (reader == nil || !errors.Is(err, zip.ErrInsecurePath)) {
		return openError(classifyOpenError(err), path, err)
	}

	if a.FoldsCase != nil && a.FoldsCase(targetDir) {
		if err := findCaseCollision(reader.File, targetDir); err != nil {
			return types.NewExtractionError(types.ExtractionCaseCollision, 0, caseCollisionMessage, err)
		}
	}
	if err := extractEntries(reader.File, targetDir); err != nil {
		return types.NewExtractionError(types.ExtractionWriteFailed, zipCodeWrite, extractFailedMessage, err)
	}
	log.Ctx(ctx).Debug().
		Str("archive", path).
		Str("target", targetDir).
		Int("entries", len(reader.File)).
		Msg("archive extracted")
	return nil
}

// Cleanup removes the archive file. Failures are logged and dropped.
func (a ZipArchiveAdapter) Cleanup(ctx context.Context, path string) {
	if path == "" {
		return
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Ctx(ctx).Debug().Err(err).Str("archive", path).Msg("failed to remove archive")
	}
}

func extractEntries(files []*zip.File, targetDir string) error {
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return err
	}
	links := make(map[string]struct{})
	for _, file := range files {
		if file.Mode()&fs.ModeSymlink != 0 {
			links[filepath.Clean(filepath.FromSlash(file.Name))] = struct{}{}
		}
	}
	for _, file := range files {
		if err := extractEntry(file, targetDir, links); err != nil {
			return err
		}
	}
	return nil
}

// extractEntry writes one entry. Entries nested under a link from the
// same archive are rejected since the link could move them elsewhere.
func extractEntry(file *zip.File, targetDir string, links map[string]struct{}) error {
	name := filepath.FromSlash(file.Name)
	if !filepath.IsLocal(name) {
		return &fs.PathError{Op: "extract", Path: file.Name, Err: fs.ErrInvalid}
	}
	for dir := filepath.Dir(filepath.Clean(name)); dir != "."; dir = filepath.Dir(dir) {
		if _, ok := links[dir]; ok {
			return &fs.PathError{Op: "extract", Path: file.Name, Err: fs.ErrInvalid}
		}
	}
	dest := filepath.Join(targetDir, name)
	if file.FileInfo().IsDir() {
		return os.MkdirAll(dest, 0o755)
	}
	if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
		return err
	}
	if file.Mode()&fs.ModeSymlink != 0 {
		return extractSymlink(file, name, dest)
	}
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()

	perm := file.Mode().Perm()
	if perm == 0 {
		perm = 0o644
	}
	out, err := os.OpenFile(dest, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, perm)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

const maxLinkTargetBytes = 4096

// extractSymlink recreates a link entry. The link target must resolve
// inside the extraction directory.
func extractSymlink(file *zip.File, name string, dest string) error {
	src, err := file.Open()
	if err != nil {
		return err
	}
	defer src.Close()
	raw, err := io.ReadAll(io.LimitReader(src, maxLinkTargetBytes))
	if err != nil {
		return err
	}
	linkTarget := filepath.FromSlash(string(raw))
	if linkTarget == "" || filepath.IsAbs(linkTarget) || !filepath.IsLocal(filepath.Join(filepath.Dir(name), linkTarget)) {
		return &fs.PathError{Op: "symlink", Path: file.Name, Err: fs.ErrInvalid}
	}
	if err := os.Remove(dest); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}
	return os.Symlink(linkTarget, dest)
}

// findCaseCollision reports two entries that would land on the same
// path of a case-insensitive filesystem.
func findCaseCollision(files []*zip.File, targetDir string) error {
	seen := make(map[string]string, len(files))
	for _, file := range files {
		name := strings.TrimSuffix(file.Name, "/")
		folded := strings.ToLower(name)
		if previous, ok := seen[folded]; ok && previous != name {
			return &fs.PathError{
				Op:   "extract",
				Path: filepath.Join(targetDir, filepath.FromSlash(name)),
				Err:  fmt.Errorf("%w: collides with %s", fs.ErrExist, previous),
			}
		}
		seen[folded] = name
	}
	return nil
}

// probeCaseInsensitive creates a lowercase probe file in dir and checks
// whether its uppercase spelling resolves to it.
func probeCaseInsensitive(dir string) bool {
	probeDir := dir
	if _, err := os.Stat(probeDir); err != nil {
		probeDir = filepath.Dir(dir)
	}
	probe, err := os.CreateTemp(probeDir, ".case-probe-")
	if err != nil {
		return false
	}
	name := probe.Name()
	probe.Close()
	defer os.Remove(name)

	upper := filepath.Join(filepath.Dir(name), strings.ToUpper(filepath.Base(name)))
	if upper == name {
		return false
	}
	_, err = os.Stat(upper)
	return err == nil
}

var _ ports.ArchiveApplierPort = ZipArchiveAdapter{}
