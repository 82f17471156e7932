package adapters

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"project-updater/internal/ports"
	"project-updater/internal/shared"
	"project-updater/internal/types"
)

// DefaultManifestName is the project manifest looked up in the working
// directory.
const DefaultManifestName = "composer.json"

const selfUpdateConfigKey = "extra.self-update-plugin"

// ProjectManifestAdapter reads the fields the updater needs from a
// Composer-style JSON manifest.
type ProjectManifestAdapter struct {
	FileName string
}

func NewProjectManifestAdapter(fileName string) ProjectManifestAdapter {
	if strings.TrimSpace(fileName) == "" {
		fileName = DefaultManifestName
	}
	return ProjectManifestAdapter{FileName: fileName}
}

func (a ProjectManifestAdapter) LoadProject(dir string) (types.Project, bool, error) {
	path := filepath.Join(dir, a.FileName)
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return types.Project{}, false, nil
	}
	manifest := viper.New()
	manifest.SetConfigFile(path)
	manifest.SetConfigType("json")
	if err := manifest.ReadInConfig(); err != nil {
		return types.Project{}, false, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to read project manifest").
			WithCause(err)
	}

	name := shared.NormalizePackageName(manifest.GetString("name"))
	if name == "" {
		name = types.PlaceholderProjectName
	}
	minimum := types.StabilityStable
	if raw := strings.TrimSpace(manifest.GetString("minimum-stability")); raw != "" {
		parsed, ok := types.ParseStability(raw)
		if !ok {
			return types.Project{}, false, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid minimum-stability %q", raw))
		}
		minimum = parsed
	}
	repositories, disablePackagist := parseRepositories(manifest.Get("repositories"))

	return types.Project{
		Dir:              dir,
		Name:             name,
		MinimumStability: minimum,
		Repositories:     repositories,
		DisablePackagist: disablePackagist,
		SelfUpdate: types.SelfUpdateConfig{
			Package: strings.TrimSpace(manifest.GetString(selfUpdateConfigKey + ".package")),
			Require: strings.TrimSpace(manifest.GetString(selfUpdateConfigKey + ".require")),
		},
	}, true, nil
}

// parseRepositories accepts the list and the keyed-object forms of the
// repositories section. A {"packagist.org": false} entry disables the
// implicit default repository.
func parseRepositories(raw any) ([]types.RepositoryConfig, bool) {
	var entries []any
	disablePackagist := false
	switch value := raw.(type) {
	case []any:
		entries = value
	case map[string]any:
		keys := make([]string, 0, len(value))
		for key := range value {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		for _, key := range keys {
			if enabled, ok := value[key].(bool); ok {
				if !enabled && isPackagistKey(key) {
					disablePackagist = true
				}
				continue
			}
			entries = append(entries, value[key])
		}
	}

	var repositories []types.RepositoryConfig
	for _, entry := range entries {
		fields, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if disabled := packagistDisabled(fields); disabled {
			disablePackagist = true
			continue
		}
		repoType, _ := fields["type"].(string)
		url, _ := fields["url"].(string)
		config := types.RepositoryConfig{
			Type: types.RepositoryType(strings.ToLower(strings.TrimSpace(repoType))),
			URL:  strings.TrimSpace(url),
		}
		switch config.Type {
		case types.RepositoryTypeComposer, types.RepositoryTypeIndex:
			if config.URL == "" {
				log.Warn().Str("type", string(config.Type)).Msg("skipping repository without url")
				continue
			}
			repositories = append(repositories, config)
		default:
			log.Warn().Str("type", repoType).Msg("skipping unsupported repository type")
		}
	}
	return repositories, disablePackagist
}

func packagistDisabled(fields map[string]any) bool {
	for key, value := range fields {
		if enabled, ok := value.(bool); ok && !enabled && isPackagistKey(key) {
			return true
		}
	}
	return false
}

func isPackagistKey(key string) bool {
	normalized := strings.ToLower(strings.TrimSpace(key))
	return normalized == "packagist.org" || normalized == "packagist"
}

var _ ports.ProjectContextPort = ProjectManifestAdapter{}
