package adapters

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const widgetIndex = `
packages:
  acme/widget:
    - version: "1.0.0"
      dist:
        type: zip
        url: dist/widget-1.0.0.zip
    - version: "1.1.0-beta"
      dist:
        type: zip
        url: https://dist.test/widget-1.1.0-beta.zip
  acme/gadget:
    - version: "3.0.0"
`

func TestRepoIndexFileAdapter_FindPackages(t *testing.T) {
	dir := t.TempDir()
	indexPath := filepath.Join(dir, "repo-index.yaml")
	require.NoError(t, os.WriteFile(indexPath, []byte(widgetIndex), 0o644))

	adapter := NewRepoIndexFileAdapter(indexPath, HTTPConfig{})

	t.Run("known package", func(t *testing.T) {
		found, err := adapter.FindPackages(context.Background(), "ACME/Widget")
		require.NoError(t, err)
		want := []versionRow{
			{"acme/widget", "1.0.0", filepath.Join(dir, "dist", "widget-1.0.0.zip")},
			{"acme/widget", "1.1.0-beta", "https://dist.test/widget-1.1.0-beta.zip"},
		}
		if diff := cmp.Diff(want, versionRows(found)); diff != "" {
			t.Fatalf("unexpected packages (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown package", func(t *testing.T) {
		found, err := adapter.FindPackages(context.Background(), "acme/nonexistent")
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestRepoIndexFileAdapter_HTTP(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(widgetIndex))
	}))
	defer server.Close()

	found, err := NewRepoIndexFileAdapter(server.URL+"/repo-index.yaml", HTTPConfig{Retries: 1}).FindPackages(context.Background(), "acme/widget")
	require.NoError(t, err)
	require.Len(t, found, 2)
	assert.Equal(t, "dist/widget-1.0.0.zip", found[0].Dist.URL, "remote indexes keep dist urls as written")
}

func TestRepoIndexFileAdapter_Errors(t *testing.T) {
	dir := t.TempDir()
	invalid := filepath.Join(dir, "invalid.yaml")
	require.NoError(t, os.WriteFile(invalid, []byte("packages: [not, a, map"), 0o644))

	tests := []struct {
		name     string
		location string
		wantCode errbuilder.ErrCode
	}{
		{"missing file", filepath.Join(dir, "missing.yaml"), errbuilder.CodeNotFound},
		{"invalid yaml", invalid, errbuilder.CodeInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRepoIndexFileAdapter(tt.location, HTTPConfig{}).FindPackages(context.Background(), "acme/widget")
			require.Error(t, err)
			if diff := cmp.Diff(tt.wantCode, errbuilder.CodeOf(err)); diff != "" {
				t.Fatalf("unexpected code (-want +got):\n%s", diff)
			}
		})
	}
}
