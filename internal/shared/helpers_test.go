package shared

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizePackageName(t *testing.T) {
	assert.Equal(t, "acme/widget", NormalizePackageName("  Acme/Widget "))
}

func TestLocalPath(t *testing.T) {
	tests := []struct {
		name      string
		location  string
		wantPath  string
		wantLocal bool
	}{
		{name: "bare path", location: "dist/widget.zip", wantPath: "dist/widget.zip", wantLocal: true},
		{name: "file scheme", location: "file:///tmp/widget.zip", wantPath: "/tmp/widget.zip", wantLocal: true},
		{name: "https url", location: "https://example.com/widget.zip", wantPath: "", wantLocal: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path, local := LocalPath(tt.location)
			assert.Equal(t, tt.wantPath, path)
			assert.Equal(t, tt.wantLocal, local)
		})
	}
}

func TestResolveRelative(t *testing.T) {
	assert.Equal(t, filepath.Join("/repo", "dist/widget.zip"), ResolveRelative("/repo", "dist/widget.zip"))
	assert.Equal(t, "/abs/widget.zip", ResolveRelative("/repo", "/abs/widget.zip"))
	assert.Equal(t, "https://example.com/a.zip", ResolveRelative("/repo", "https://example.com/a.zip"))
}

func TestHTTPStatusError(t *testing.T) {
	err := HTTPStatusError(404, "https://example.com")
	assert.EqualError(t, err, "status=404 url=https://example.com")
	err = HTTPStatusErrorWithBody(500, "https://example.com", "boom")
	assert.EqualError(t, err, "status=500 url=https://example.com response=boom")
}
