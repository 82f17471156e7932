package adapters

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-updater/internal/types"
)

func TestLockFilePath(t *testing.T) {
	assert.Equal(t, filepath.Join("/srv/app", "widget.lock"), LockFilePath("/srv/app", "acme/widget"))
	assert.Equal(t, filepath.Join("/srv/app", "widget.lock"), LockFilePath("/srv/app", "widget"))
	assert.Equal(t, filepath.Join("/srv/app", "b/c.lock"), LockFilePath("/srv/app", "a/b/c"))
}

func TestLockFileAdapter_ReadAbsent(t *testing.T) {
	record, present, err := NewLockFileAdapter().Read(t.TempDir(), "acme/widget")
	require.NoError(t, err)
	assert.False(t, present)
	assert.Equal(t, types.LockRecord{}, record)
}

func TestLockFileAdapter_WriteThenRead(t *testing.T) {
	dir := t.TempDir()
	adapter := NewLockFileAdapter()
	pkg := types.Package{Name: "acme/widget", Version: "1.0.0", PrettyVersion: "v1.0.0"}
	appliedAt := time.Date(2026, 3, 14, 9, 26, 53, 0, time.Local)

	require.NoError(t, adapter.Write(dir, pkg.Name, pkg, appliedAt))

	data, err := os.ReadFile(filepath.Join(dir, "widget.lock"))
	require.NoError(t, err)
	want := "{\n    \"name\": \"acme/widget\",\n    \"version\": \"1.0.0\",\n    \"datetime\": \"2026-03-14 09:26:53\"\n}\n"
	if diff := cmp.Diff(want, string(data)); diff != "" {
		t.Fatalf("unexpected lock file (-want +got):\n%s", diff)
	}

	record, present, err := adapter.Read(dir, pkg.Name)
	require.NoError(t, err)
	require.True(t, present)
	if diff := cmp.Diff(types.LockRecord{Name: "acme/widget", Version: "1.0.0", Datetime: "2026-03-14 09:26:53"}, record); diff != "" {
		t.Fatalf("unexpected lock record (-want +got):\n%s", diff)
	}
}

func TestLockFileAdapter_WriteOverwritesAndLeavesNoTemp(t *testing.T) {
	dir := t.TempDir()
	adapter := NewLockFileAdapter()
	first := types.Package{Name: "acme/widget", Version: "1.0.0"}
	second := types.Package{Name: "acme/widget", Version: "1.1.0"}
	now := time.Now()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "widget.lock"), []byte(`{"name":"acme/widget","version":"0.9.0","datetime":"x","extra":"a much longer previous content"}`), 0o644))
	require.NoError(t, adapter.Write(dir, first.Name, first, now))
	require.NoError(t, adapter.Write(dir, second.Name, second, now))

	record, present, err := adapter.Read(dir, "acme/widget")
	require.NoError(t, err)
	require.True(t, present)
	assert.Equal(t, "1.1.0", record.Version)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "widget.lock", entries[0].Name())
}

func TestLockFileAdapter_WriteMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "missing")
	err := NewLockFileAdapter().Write(dir, "acme/widget", types.Package{Name: "acme/widget", Version: "1.0.0"}, time.Now())
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInternal, errbuilder.CodeOf(err))
}

func TestLockFileAdapter_ReadMalformed(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "widget.lock"), []byte("{not json"), 0o644))

	_, _, err := NewLockFileAdapter().Read(dir, "acme/widget")
	require.Error(t, err)
	assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
