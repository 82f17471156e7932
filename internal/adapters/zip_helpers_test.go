package adapters

import (
	"archive/zip"
	"io/fs"
	"os"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeZip creates a zip archive at path holding files in name order.
func writeZip(t *testing.T, path string, files map[string]string) {
	t.Helper()
	out, err := os.Create(path)
	require.NoError(t, err)
	writer := zip.NewWriter(out)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	require.NoError(t, out.Close())
}

// writeZipWithLinks creates a zip archive holding regular files plus
// symlink entries mapping link name to link target.
func writeZipWithLinks(t *testing.T, path string, files map[string]string, links map[string]string) {
	t.Helper()
	out, err := os.Create(path)
	require.NoError(t, err)
	writer := zip.NewWriter(out)
	for _, name := range sortedKeys(files) {
		entry, err := writer.Create(name)
		require.NoError(t, err)
		_, err = entry.Write([]byte(files[name]))
		require.NoError(t, err)
	}
	for _, name := range sortedKeys(links) {
		header := &zip.FileHeader{Name: name, Method: zip.Store}
		header.SetMode(fs.ModeSymlink | 0o777)
		entry, err := writer.CreateHeader(header)
		require.NoError(t, err)
		_, err = entry.Write([]byte(links[name]))
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	require.NoError(t, out.Close())
}
