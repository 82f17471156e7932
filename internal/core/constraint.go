package core

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/Masterminds/semver/v3"

	"project-updater/internal/types"
)

// stabilitySuffix matches an explicit stability flag at the end of a
// version token, e.g. "^2.0@beta".
var stabilitySuffix = regexp.MustCompile(`(?i)@(stable|rc|beta|alpha|dev)$`)

var (
	orSeparator  = regexp.MustCompile(`\s*\|\|?\s*`)
	operatorOnly = regexp.MustCompile(`^(==|!=|>=|<=|=>|=<|>|<|=|~|\^)$`)
	bareVersion  = regexp.MustCompile(`^v?\d+(\.\d+){0,3}(-[0-9A-Za-z.\-]+)?$`)
	tildeVersion = regexp.MustCompile(`^~v?(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:\.(\d+))?(-[0-9A-Za-z.\-]+)?$`)
	operandTerm  = regexp.MustCompile(`^(!=|>=|<=|=>|=<|>|<|=|\^)?v?(\d.*)$`)
	operand      = regexp.MustCompile(`^(\d+)(?:\.(\d+))?(?:\.(\d+))?(?:\.(\d+))?([-+].*)?$`)
)

// InterpretVersion splits a version token into its constraint and the
// minimum stability to apply. A recognized @stability suffix overrides
// defaultStability; anything else stays part of the constraint.
func InterpretVersion(token string, defaultStability types.Stability) (types.Requirement, error) {
	raw := strings.TrimSpace(token)
	minStability := defaultStability
	if match := stabilitySuffix.FindStringSubmatch(raw); match != nil {
		if parsed, ok := types.ParseStability(match[1]); ok {
			minStability = parsed
		}
		raw = strings.TrimSpace(raw[:len(raw)-len(match[0])])
	}
	constraint, err := ParseConstraint(raw)
	if err != nil {
		return types.Requirement{}, err
	}
	return types.Requirement{
		Constraint:   constraint,
		MinStability: minStability,
	}, nil
}

// ParseConstraint parses a version constraint. Empty and "*" yield the
// unconstrained value.
func ParseConstraint(raw string) (types.VersionConstraint, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" || raw == "*" {
		return types.VersionConstraint{Raw: raw}, nil
	}
	if isBranchVersion(raw) {
		return types.VersionConstraint{Raw: raw, Branch: raw}, nil
	}
	parsed, err := semver.NewConstraint(composerConstraint(raw))
	if err != nil {
		return types.VersionConstraint{}, types.NewConfigurationError(
			fmt.Sprintf("invalid version constraint %q", raw), err)
	}
	return types.VersionConstraint{Raw: raw, Parsed: parsed}, nil
}

// composerConstraint rewrites the forms where Composer and semver
// constraint syntax disagree: single-pipe alternatives, tilde ranges
// (~1.2 is >=1.2.0 <2.0.0), bare versions (exact, never a wildcard),
// "==" and four-segment versions.
func composerConstraint(raw string) string {
	groups := orSeparator.Split(strings.TrimSpace(raw), -1)
	out := make([]string, 0, len(groups))
	for _, group := range groups {
		// Hyphen ranges read the same in both syntaxes.
		if strings.Contains(group, " - ") {
			out = append(out, strings.TrimSpace(group))
			continue
		}
		out = append(out, strings.Join(composerTerms(group), ", "))
	}
	return strings.Join(out, " || ")
}

func composerTerms(group string) []string {
	fields := strings.FieldsFunc(group, func(r rune) bool {
		return r == ',' || unicode.IsSpace(r)
	})
	var terms []string
	for i := 0; i < len(fields); i++ {
		term := fields[i]
		if operatorOnly.MatchString(term) && i+1 < len(fields) {
			i++
			term += fields[i]
		}
		terms = append(terms, composerTerm(term)...)
	}
	return terms
}

func composerTerm(term string) []string {
	if match := tildeVersion.FindStringSubmatch(term); match != nil {
		return tildeRange(match)
	}
	if bareVersion.MatchString(term) {
		return []string{"=" + exactOperand(strings.TrimPrefix(term, "v"))}
	}
	term = strings.Replace(term, "==", "=", 1)
	if match := operandTerm.FindStringSubmatch(term); match != nil {
		// Caret keeps partial versions: ^0 spans every 0.x release.
		if match[1] == "^" {
			return []string{match[1] + foldFourthSegment(match[2])}
		}
		return []string{match[1] + exactOperand(match[2])}
	}
	return []string{term}
}

// exactOperand pads a partial version to three segments so it names a
// single release (1.2 is 1.2.0) instead of a wildcard. Wildcards are
// left alone.
func exactOperand(value string) string {
	match := operand.FindStringSubmatch(value)
	if match == nil {
		return value
	}
	padded := make([]string, 3)
	for i := range padded {
		padded[i] = match[i+1]
		if padded[i] == "" {
			padded[i] = "0"
		}
	}
	out := strings.Join(padded, ".")
	suffix := match[5]
	if match[4] != "" && !strings.Contains(suffix, "+") {
		return out + suffix + "+" + match[4]
	}
	return out + suffix
}

// tildeRange expands ~X, ~X.Y, ~X.Y.Z and ~X.Y.Z.W. The last given
// segment may move freely and the one before it is pinned.
func tildeRange(match []string) []string {
	var parts []int
	for _, segment := range match[1:5] {
		if segment == "" {
			break
		}
		value, _ := strconv.Atoi(segment)
		parts = append(parts, value)
	}
	suffix := match[5]
	padded := append(append([]int{}, parts...), 0, 0, 0)

	lower := fmt.Sprintf("%d.%d.%d", padded[0], padded[1], padded[2])
	if len(parts) == 4 {
		lower += fmt.Sprintf("+%d", parts[3])
	}
	var upper string
	switch len(parts) {
	case 1, 2:
		upper = fmt.Sprintf("%d.0.0", parts[0]+1)
	case 3:
		upper = fmt.Sprintf("%d.%d.0", parts[0], parts[1]+1)
	default:
		upper = fmt.Sprintf("%d.%d.%d", parts[0], parts[1], parts[2]+1)
	}
	return []string{">=" + lower + suffix, "<" + upper}
}
