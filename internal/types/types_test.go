package types

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStability(t *testing.T) {
	tests := map[string]Stability{
		"dev":    StabilityDev,
		"Alpha":  StabilityAlpha,
		"BETA":   StabilityBeta,
		"rc":     StabilityRC,
		"RC":     StabilityRC,
		"stable": StabilityStable,
	}
	for input, want := range tests {
		got, ok := ParseStability(input)
		require.True(t, ok, input)
		assert.Equal(t, want, got, input)
	}
	_, ok := ParseStability("nightly")
	assert.False(t, ok)
}

func TestStabilityOrdering(t *testing.T) {
	ordered := []Stability{StabilityDev, StabilityAlpha, StabilityBeta, StabilityRC, StabilityStable}
	for i := 1; i < len(ordered); i++ {
		assert.Less(t, ordered[i-1], ordered[i])
	}
	assert.Equal(t, "RC", StabilityRC.String())
	assert.Equal(t, "unknown", Stability(42).String())
}

func TestShortName(t *testing.T) {
	assert.Equal(t, "widget", ShortName("acme/widget"))
	assert.Equal(t, "widget", ShortName("widget"))
	assert.Equal(t, "b/c", ShortName("a/b/c"))
}

func TestNewLockRecord(t *testing.T) {
	pkg := Package{Name: "acme/widget", Version: "1.0.0", PrettyVersion: "v1.0.0"}
	record := NewLockRecord(pkg, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))
	if diff := cmp.Diff(LockRecord{Name: "acme/widget", Version: "1.0.0", Datetime: "2026-01-02 03:04:05"}, record); diff != "" {
		t.Fatalf("unexpected lock record (-want +got):\n%s", diff)
	}
}

func TestUpdateErrorCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *UpdateError
		want errbuilder.ErrCode
	}{
		{"configuration", NewConfigurationError("missing name", nil), errbuilder.CodeInvalidArgument},
		{"not found", NewPackageNotFoundError("acme/widget"), errbuilder.CodeNotFound},
		{"fetch", NewFetchError("download failed", nil), errbuilder.CodeInternal},
		{"corrupted", NewArchiveCorruptedError("/tmp/a.zip"), errbuilder.CodeInternal},
		{"extraction", NewExtractionError(ExtractionReadError, 5, "Zip read error (/tmp/a.zip)", nil), errbuilder.CodeInternal},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.ErrCode())
		})
	}
}

func TestUpdateErrorWrapping(t *testing.T) {
	cause := errors.New("connection reset")
	err := fmt.Errorf("self-update: %w", NewFetchError("failed to download", cause))

	assert.Equal(t, "self-update: failed to download: connection reset", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsKind(err, ErrorKindFetch))
	assert.False(t, IsKind(err, ErrorKindExtraction))

	_, ok := AsUpdateError(cause)
	assert.False(t, ok)
}
