package ports

import "project-updater/internal/types"

// ProjectContextPort loads the project manifest found in dir. The
// boolean is false when dir holds no manifest.
type ProjectContextPort interface {
	LoadProject(dir string) (types.Project, bool, error)
}
