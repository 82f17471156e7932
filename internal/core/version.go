package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"

	"project-updater/internal/types"
)

// modifierPattern recognizes the stability modifier at the start of a
// pre-release suffix ("beta1", "RC.2", "alpha", "p1").
// fourSegment matches Composer versions with a fourth numeric segment,
// e.g. "1.2.3.4" or "1.2.3.4-beta1".
var fourSegment = regexp.MustCompile(`^(v?\d+\.\d+\.\d+)\.(\d+)(-[^+]*)?$`)

var modifierPattern = regexp.MustCompile(`(?i)^[.\-_]?(stable|rc|beta|b|alpha|a|dev|patch|pl|p)(?:[.\-_]?\d+)*`)

// versionCache memoizes parsed versions so filtering and sorting do not
// re-parse the same strings. Strings that are not semantic versions are
// remembered too; they are branch names.
type versionCache struct {
	parsed   map[string]*semver.Version
	branches map[string]struct{}
}

func newVersionCache() *versionCache {
	return &versionCache{
		parsed:   map[string]*semver.Version{},
		branches: map[string]struct{}{},
	}
}

// version returns the parsed semantic version, or false for branch
// names and other unparsable strings.
func (c *versionCache) version(value string) (*semver.Version, bool) {
	if parsed, ok := c.parsed[value]; ok {
		return parsed, true
	}
	if _, ok := c.branches[value]; ok {
		return nil, false
	}
	if isBranchVersion(value) {
		c.branches[value] = struct{}{}
		return nil, false
	}
	parsed, err := parseVersion(value)
	if err != nil {
		c.branches[value] = struct{}{}
		return nil, false
	}
	c.parsed[value] = parsed
	return parsed, true
}

// compare orders two versions. Branch versions sort below every
// semantic version and equal to each other.
func (c *versionCache) compare(a string, b string) int {
	v1, ok1 := c.version(a)
	v2, ok2 := c.version(b)
	switch {
	case ok1 && ok2:
		if order := v1.Compare(v2); order != 0 {
			return order
		}
		return compareInts(fourthSegment(v1), fourthSegment(v2))
	case ok1:
		return 1
	case ok2:
		return -1
	default:
		return 0
	}
}

// satisfies reports whether the version matches the constraint.
// Pre-releases are admitted on their release version because stability
// filtering is handled separately by the stability policy.
func (c *versionCache) satisfies(constraint types.VersionConstraint, value string) bool {
	if constraint.IsAny() {
		return true
	}
	if constraint.Branch != "" {
		return strings.EqualFold(constraint.Branch, strings.TrimSpace(value))
	}
	v, ok := c.version(value)
	if !ok {
		return false
	}
	if constraint.Parsed.Check(v) {
		return true
	}
	if v.Prerelease() == "" {
		return false
	}
	release, err := v.SetPrerelease("")
	if err != nil {
		return false
	}
	return constraint.Parsed.Check(&release)
}

// NormalizeVersion returns the canonical form of a version as stored in
// lock files: major.minor.patch plus any pre-release, or the trimmed
// branch name.
func NormalizeVersion(pretty string) string {
	trimmed := strings.TrimSpace(pretty)
	if isBranchVersion(trimmed) {
		return trimmed
	}
	parsed, err := parseVersion(trimmed)
	if err != nil {
		return trimmed
	}
	return canonicalVersion(parsed)
}

// ClassifyStability derives the stability of a version from its
// pre-release modifier. Branches are dev.
func ClassifyStability(pretty string) types.Stability {
	trimmed := strings.TrimSpace(pretty)
	if isBranchVersion(trimmed) {
		return types.StabilityDev
	}
	parsed, err := parseVersion(trimmed)
	if err != nil {
		return types.StabilityDev
	}
	pre := parsed.Prerelease()
	if pre == "" {
		return types.StabilityStable
	}
	match := modifierPattern.FindStringSubmatch(pre)
	if match == nil {
		return types.StabilityDev
	}
	switch strings.ToLower(match[1]) {
	case "stable", "patch", "pl", "p":
		return types.StabilityStable
	case "rc":
		return types.StabilityRC
	case "beta", "b":
		return types.StabilityBeta
	case "alpha", "a":
		return types.StabilityAlpha
	default:
		return types.StabilityDev
	}
}

// parseVersion parses a semantic version, carrying a fourth numeric
// segment as build metadata.
func parseVersion(value string) (*semver.Version, error) {
	return semver.NewVersion(foldFourthSegment(value))
}

func foldFourthSegment(value string) string {
	match := fourSegment.FindStringSubmatch(strings.TrimSpace(value))
	if match == nil {
		return value
	}
	return match[1] + match[3] + "+" + match[2]
}

// fourthSegment returns the folded fourth segment, zero when absent.
func fourthSegment(v *semver.Version) int {
	value, err := strconv.Atoi(v.Metadata())
	if err != nil {
		return 0
	}
	return value
}

func canonicalVersion(v *semver.Version) string {
	out := fmt.Sprintf("%d.%d.%d", v.Major(), v.Minor(), v.Patch())
	meta := v.Metadata()
	if _, err := strconv.Atoi(meta); err == nil {
		out += "." + meta
		meta = ""
	}
	if pre := v.Prerelease(); pre != "" {
		out += "-" + pre
	}
	if meta != "" {
		out += "+" + meta
	}
	return out
}

func compareInts(a int, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func isBranchVersion(value string) bool {
	lower := strings.ToLower(strings.TrimSpace(value))
	return strings.HasPrefix(lower, "dev-") || strings.HasSuffix(lower, ".x-dev")
}
