package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"project-updater/internal/core"
	"project-updater/internal/ports"
	"project-updater/internal/types"
)

type resolution struct {
	Dir         string
	Selection   core.SelectResult
	Lock        types.LockRecord
	LockPresent bool
}

func (r resolution) current() bool {
	return core.IsCurrent(r.Selection.Package, r.Lock, r.LockPresent)
}

// resolve runs the steps both commands share: load the project, pick
// the target, select one package and read its lock record.
func (s Service) resolve(ctx context.Context, req UpdateRequest) (resolution, error) {
	workDir := strings.TrimSpace(req.WorkDir)
	if workDir == "" {
		workDir = "."
	}
	dir, err := filepath.Abs(workDir)
	if err != nil {
		return resolution{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("invalid working directory").
			WithCause(err)
	}

	project, found, err := s.Project.LoadProject(dir)
	if err != nil {
		return resolution{}, err
	}
	var projectRef *types.Project
	minStability := types.StabilityStable
	if found {
		projectRef = &project
		minStability = project.MinimumStability
	}

	target, err := core.ResolveTarget(projectRef, req.Package, req.Version)
	if err != nil {
		return resolution{}, err
	}
	log.Ctx(ctx).Info().
		Str("package", target.Name).
		Str("version", target.VersionToken).
		Msg("searching for package")

	requirement, err := core.InterpretVersion(target.VersionToken, minStability)
	if err != nil {
		return resolution{}, err
	}
	repository, err := s.repositorySet(ctx, projectRef)
	if err != nil {
		return resolution{}, err
	}
	selection, err := core.NewSelector(repository).Select(ctx, target.Name, requirement)
	if err != nil {
		return resolution{}, err
	}

	lock, present, err := s.Locks.Read(dir, selection.Package.Name)
	if err != nil {
		return resolution{}, err
	}
	return resolution{
		Dir:         dir,
		Selection:   selection,
		Lock:        lock,
		LockPresent: present,
	}, nil
}

func (s Service) repositorySet(ctx context.Context, project *types.Project) (core.RepositorySet, error) {
	if project == nil {
		remote, err := s.Repositories.DefaultSources()
		if err != nil {
			return core.RepositorySet{}, err
		}
		set := core.NewRepositorySet(nil, remote)
		log.Ctx(ctx).Info().Msg("no project manifest found, searching packages from " + strings.Join(set.Names(), ", "))
		return set, nil
	}
	remote, err := s.Repositories.ProjectSources(*project)
	if err != nil {
		return core.RepositorySet{}, err
	}
	local := []ports.PackageSourcePort{s.Repositories.InstalledSource(*project)}
	return core.NewRepositorySet(local, remote), nil
}
