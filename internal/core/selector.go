package core

import (
	"context"
	"sort"
	"strings"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/rs/zerolog/log"

	"project-updater/internal/policies"
	"project-updater/internal/ports"
	"project-updater/internal/types"
)

// MultipleMatchesAdvisory reports that more than one package matched and
// one was picked automatically. It never fails the selection.
type MultipleMatchesAdvisory struct {
	Name     string
	Matches  int
	Selected types.Package
}

type SelectResult struct {
	Package  types.Package
	Advisory *MultipleMatchesAdvisory
}

// Selector picks exactly one package out of a repository for a name and
// requirement. It never touches lock state.
type Selector struct {
	Repository ports.PackageSourcePort
}

func NewSelector(repository ports.PackageSourcePort) Selector {
	return Selector{Repository: repository}
}

func (s Selector) Select(ctx context.Context, name string, req types.Requirement) (SelectResult, error) {
	logger := log.Ctx(ctx)
	lookup := strings.ToLower(strings.TrimSpace(name))
	logger.Debug().Str("package", lookup).Str("constraint", req.Constraint.String()).
		Str("min_stability", req.MinStability.String()).Msg("searching for the specified package")

	found, err := s.Repository.FindPackages(ctx, lookup)
	if err != nil {
		return SelectResult{}, err
	}
	matches := filterMatches(found, req)

	var result SelectResult
	switch len(matches) {
	case 0:
		logger.Error().Str("package", name).Msg("could not find a matching package")
		return SelectResult{}, types.NewPackageNotFoundError(name)
	case 1:
		result.Package = matches[0]
		logger.Info().Str("package", result.Package.PrettyString()).Msg("found an exact match")
	default:
		selected, ok := bestCandidate(matches)
		if !ok {
			selected = matches[0]
		}
		result.Package = selected
		result.Advisory = &MultipleMatchesAdvisory{
			Name:     lookup,
			Matches:  len(matches),
			Selected: selected,
		}
		logger.Warn().Int("matches", len(matches)).Str("package", selected.PrettyString()).
			Msg("found multiple matches, selected " + selected.PrettyString())
		logger.Warn().Msg("use a more specific constraint to pick a different package")
	}
	assert.NotEmpty(ctx, result.Package.Name, "selected package must have a name")
	assert.NotEmpty(ctx, result.Package.Version, "selected package must have a version")
	return result, nil
}

func filterMatches(found []types.Package, req types.Requirement) []types.Package {
	policy := policies.NewStabilityPolicy(req.MinStability)
	cache := newVersionCache()
	var matches []types.Package
	for _, pkg := range found {
		if !policy.Accepts(pkg) {
			continue
		}
		if !cache.satisfies(req.Constraint, pkg.PrettyVersion) {
			continue
		}
		matches = append(matches, pkg)
	}
	return matches
}

// bestCandidate returns the highest semantic version among matches.
// Ties prefer the more stable classification, then the local source,
// then the earlier match. Branch versions cannot be ranked, so a set of
// only branches yields no candidate.
func bestCandidate(matches []types.Package) (types.Package, bool) {
	cache := newVersionCache()
	var ranked []types.Package
	for _, pkg := range matches {
		if _, ok := cache.version(pkg.PrettyVersion); ok {
			ranked = append(ranked, pkg)
		}
	}
	if len(ranked) == 0 {
		return types.Package{}, false
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if cmp := cache.compare(ranked[i].PrettyVersion, ranked[j].PrettyVersion); cmp != 0 {
			return cmp > 0
		}
		if ranked[i].Stability != ranked[j].Stability {
			return ranked[i].Stability > ranked[j].Stability
		}
		return ranked[i].SourcePriority < ranked[j].SourcePriority
	})
	return ranked[0], true
}
