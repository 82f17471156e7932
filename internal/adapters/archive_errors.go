package adapters

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"syscall"

	"project-updater/internal/types"
)

// Archive backend codes, numbered the way libzip numbers them.
const (
	zipCodeCorrupted = -1
	zipCodeSeek      = 4
	zipCodeRead      = 5
	zipCodeWrite     = 6
	zipCodeNoEnt     = 9
	zipCodeExists    = 10
	zipCodeOpen      = 11
	zipCodeMemory    = 14
	zipCodeInval     = 18
	zipCodeNoZip     = 19
	zipCodeIncons    = 21
)

const extractFailedMessage = "There was an error extracting the ZIP file, it is either corrupted or using an invalid format."

const caseCollisionMessage = "The archive may contain identical file names with different capitalization (which fails on case insensitive filesystems)"

type zipCodeEntry struct {
	kind     types.ExtractionKind
	template string
}

// zipCodeTable maps every known open failure code to its extraction kind
// and message. Templates take the archive path.
var zipCodeTable = map[int]zipCodeEntry{
	zipCodeExists: {types.ExtractionAlreadyExists, "File '%s' already exists."},
	zipCodeIncons: {types.ExtractionInconsistent, "Zip archive '%s' is inconsistent."},
	zipCodeInval:  {types.ExtractionInvalidArgument, "Invalid argument (%s)"},
	zipCodeMemory: {types.ExtractionAllocation, "Malloc failure (%s)"},
	zipCodeNoEnt:  {types.ExtractionNotFound, "No such zip file: '%s'"},
	zipCodeNoZip:  {types.ExtractionNotAnArchive, "'%s' is not a zip archive."},
	zipCodeOpen:   {types.ExtractionOpenFailure, "Can't open zip file: %s"},
	zipCodeRead:   {types.ExtractionReadError, "Zip read error (%s)"},
	zipCodeSeek:   {types.ExtractionSeekError, "Zip seek error (%s)"},
	zipCodeWrite:  {types.ExtractionWriteFailed, "Zip write error (%s)"},
}

// openError builds the extraction error for a failed open of path.
func openError(code int, path string, cause error) *types.UpdateError {
	if code == zipCodeCorrupted {
		return types.NewArchiveCorruptedError(path)
	}
	entry, ok := zipCodeTable[code]
	if !ok {
		msg := fmt.Sprintf("'%s' is not a valid zip archive, got error code: %d", path, code)
		return types.NewExtractionError(types.ExtractionUnknownCode, code, msg, cause)
	}
	return types.NewExtractionError(entry.kind, code, fmt.Sprintf(entry.template, path), cause)
}

// classifyOpenError turns an archive/zip or filesystem failure into a
// backend code.
func classifyOpenError(err error) int {
	var errno syscall.Errno
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return zipCodeNoEnt
	case errors.Is(err, fs.ErrExist):
		return zipCodeExists
	case errors.Is(err, fs.ErrPermission):
		return zipCodeOpen
	case errors.Is(err, zip.ErrFormat):
		return zipCodeNoZip
	case errors.Is(err, zip.ErrChecksum), errors.Is(err, zip.ErrAlgorithm):
		return zipCodeIncons
	case errors.Is(err, io.ErrUnexpectedEOF), errors.Is(err, io.EOF):
		return zipCodeRead
	case errors.Is(err, fs.ErrInvalid):
		return zipCodeInval
	case errors.As(err, &errno) && errno == syscall.ENOMEM:
		return zipCodeMemory
	case errors.As(err, &errno) && errno == syscall.ESPIPE:
		return zipCodeSeek
	}
	var pathErr *fs.PathError
	if errors.As(err, &pathErr) {
		switch pathErr.Op {
		case "seek":
			return zipCodeSeek
		case "read":
			return zipCodeRead
		case "open":
			return zipCodeOpen
		}
	}
	return 0
}
