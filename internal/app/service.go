package app

import (
	"time"

	"project-updater/internal/adapters"
	"project-updater/internal/ports"
)

// Service is the updater shared by the check-update and self-update
// commands.
type Service struct {
	Project      ports.ProjectContextPort
	Repositories ports.RepositoryFactoryPort
	Locks        ports.LockStorePort
	Fetcher      ports.ArchiveFetcherPort
	Applier      ports.ArchiveApplierPort
	Clock        func() time.Time
}

type ServiceConfig struct {
	ManifestName        string
	DefaultRepositories []string
	HTTP                adapters.HTTPConfig
}

func NewService(cfg ServiceConfig) Service {
	return Service{
		Project:      adapters.NewProjectManifestAdapter(cfg.ManifestName),
		Repositories: adapters.NewRepositoryFactoryAdapter(cfg.HTTP, cfg.DefaultRepositories),
		Locks:        adapters.NewLockFileAdapter(),
		Fetcher:      adapters.NewArchiveFetcherAdapter(cfg.HTTP),
		Applier:      adapters.NewZipArchiveAdapter(),
		Clock:        time.Now,
	}
}

func (s Service) now() time.Time {
	if s.Clock == nil {
		return time.Now()
	}
	return s.Clock()
}
