package adapters

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"project-updater/internal/types"
)

func writeManifest(t *testing.T, dir string, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultManifestName), []byte(content), 0o644))
}

func TestProjectManifestAdapter_LoadProject(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{
  "name": "Acme/Project",
  "minimum-stability": "beta",
  "repositories": [
    {"type": "composer", "url": "https://repo.acme.test"},
    {"type": "index", "url": "repo-index.yaml"},
    {"type": "vcs", "url": "https://github.com/acme/widget"},
    {"packagist.org": false}
  ],
  "extra": {
    "self-update-plugin": {
      "package": "acme/widget",
      "require": "^1.0"
    }
  }
}`)

	project, found, err := NewProjectManifestAdapter("").LoadProject(dir)
	require.NoError(t, err)
	require.True(t, found)

	want := types.Project{
		Dir:              dir,
		Name:             "acme/project",
		MinimumStability: types.StabilityBeta,
		Repositories: []types.RepositoryConfig{
			{Type: types.RepositoryTypeComposer, URL: "https://repo.acme.test"},
			{Type: types.RepositoryTypeIndex, URL: "repo-index.yaml"},
		},
		DisablePackagist: true,
		SelfUpdate:       types.SelfUpdateConfig{Package: "acme/widget", Require: "^1.0"},
	}
	if diff := cmp.Diff(want, project); diff != "" {
		t.Fatalf("unexpected project (-want +got):\n%s", diff)
	}
}

func TestProjectManifestAdapter_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{"require": {"php": ">=8.1"}}`)

	project, found, err := NewProjectManifestAdapter(DefaultManifestName).LoadProject(dir)
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, types.PlaceholderProjectName, project.Name)
	assert.Equal(t, types.StabilityStable, project.MinimumStability)
	assert.False(t, project.DisablePackagist)
	assert.Empty(t, project.Repositories)
	assert.Equal(t, types.SelfUpdateConfig{}, project.SelfUpdate)
}

func TestProjectManifestAdapter_KeyedRepositories(t *testing.T) {
	dir := t.TempDir()
	writeManifest(t, dir, `{
  "name": "acme/project",
  "repositories": {
    "packagist.org": false,
    "acme": {"type": "composer", "url": "https://repo.acme.test"}
  }
}`)

	project, _, err := NewProjectManifestAdapter("").LoadProject(dir)
	require.NoError(t, err)
	assert.True(t, project.DisablePackagist)
	assert.Equal(t, []types.RepositoryConfig{{Type: types.RepositoryTypeComposer, URL: "https://repo.acme.test"}}, project.Repositories)
}

func TestProjectManifestAdapter_Missing(t *testing.T) {
	_, found, err := NewProjectManifestAdapter("").LoadProject(t.TempDir())
	require.NoError(t, err)
	assert.False(t, found)
}

func TestProjectManifestAdapter_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", `{"name": `},
		{"invalid stability", `{"name": "acme/project", "minimum-stability": "nightly"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeManifest(t, dir, tt.content)
			_, _, err := NewProjectManifestAdapter("").LoadProject(dir)
			require.Error(t, err)
			assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}
