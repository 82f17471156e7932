package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"project-updater/tests/testutil"
)

// buildUpdater compiles the command once per test so exit codes reach
// the test unchanged.
func buildUpdater(t *testing.T) string {
	t.Helper()
	binary := filepath.Join(t.TempDir(), "project-updater")
	cmd := exec.Command("go", "build", "-o", binary, "./cmd/project-updater")
	cmd.Dir = testutil.RepoRoot(t)
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	require.NoError(t, err, string(out))
	return binary
}

func runUpdater(t *testing.T, binary string, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command(binary, args...)
	cmd.Env = append(os.Environ(), "PROJECT_UPDATER_LOG_LEVEL=warn")
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func writeProject(t *testing.T) string {
	t.Helper()
	projectDir := t.TempDir()
	testutil.WriteZip(t, filepath.Join(projectDir, "dists", "widget-2.1.0.zip"), map[string]string{
		"README.md": "widget 2.1.0\n",
	})
	testutil.WriteFile(t, filepath.Join(projectDir, "repo-index.yaml"), `packages:
  acme/widget:
    - version: 2.0.0
      dist:
        type: zip
        url: dists/widget-2.0.0.zip
    - version: 2.1.0
      dist:
        type: zip
        url: dists/widget-2.1.0.zip
`)
	testutil.WriteFile(t, filepath.Join(projectDir, "composer.json"), `{
    "name": "acme/project",
    "repositories": [
        {"type": "index", "url": "repo-index.yaml"},
        {"packagist.org": false}
    ],
    "extra": {"self-update-plugin": {"package": "acme/widget", "require": "^2.0"}}
}
`)
	return projectDir
}

func TestSelfUpdateCommandE2E(t *testing.T) {
	binary := buildUpdater(t)
	projectDir := writeProject(t)

	out, err := runUpdater(t, binary, "--working-dir", projectDir, "check-update")
	require.NoError(t, err, out)
	require.Contains(t, out, "A new version 2.1.0 of acme/widget is now available")
	require.NoFileExists(t, filepath.Join(projectDir, "widget.lock"))

	out, err = runUpdater(t, binary, "--working-dir", projectDir, "self-update")
	require.NoError(t, err, out)
	require.Contains(t, out, "Project has been patched with version 2.1.0 for acme/widget")
	require.FileExists(t, filepath.Join(projectDir, "widget.lock"))
	require.FileExists(t, filepath.Join(projectDir, "README.md"))

	out, err = runUpdater(t, binary, "--working-dir", projectDir, "self-update")
	require.NoError(t, err, out)
	require.Contains(t, out, "Project is already patched with version 2.1.0 for acme/widget")
}

func TestSelfUpdateCommandExitCodesE2E(t *testing.T) {
	binary := buildUpdater(t)
	projectDir := writeProject(t)

	out, err := runUpdater(t, binary, "--working-dir", projectDir, "self-update", "^9.0")
	var exitErr *exec.ExitError
	require.ErrorAs(t, err, &exitErr, out)
	require.Equal(t, 4, exitErr.ExitCode())
	require.Contains(t, out, "acme/widget")

	// 2.0.0 is listed but its archive was never published.
	out, err = runUpdater(t, binary, "--working-dir", projectDir, "self-update", "2.0.0")
	require.ErrorAs(t, err, &exitErr, out)
	require.Equal(t, 5, exitErr.ExitCode())
	require.NoFileExists(t, filepath.Join(projectDir, "widget.lock"))
}
