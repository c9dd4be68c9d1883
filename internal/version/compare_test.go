package version

import (
	"testing"

	"github.com/rxtech-lab/trade-journal/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckVersionCompatibility(t *testing.T) {
	tests := []struct {
		name           string
		journalVersion string
		storeVersion   string
		expectError    bool
		errorCode      errors.ErrorCode
		errorContains  string
	}{
		{
			name:           "exact match",
			journalVersion: "0.4.0",
			storeVersion:   "0.4.0",
		},
		{
			name:           "journal patch higher",
			journalVersion: "0.4.2",
			storeVersion:   "0.4.0",
		},
		{
			name:           "store patch higher",
			journalVersion: "0.4.0",
			storeVersion:   "0.4.7",
		},
		{
			name:           "minor differs",
			journalVersion: "0.5.0",
			storeVersion:   "0.4.0",
			expectError:    true,
			errorCode:      errors.ErrCodeVersionMismatch,
			errorContains:  "minor version mismatch",
		},
		{
			name:           "major differs",
			journalVersion: "1.4.0",
			storeVersion:   "0.4.0",
			expectError:    true,
			errorCode:      errors.ErrCodeVersionMismatch,
			errorContains:  "major version mismatch",
		},
		{
			name:           "journal is main",
			journalVersion: "main",
			storeVersion:   "0.9.0",
		},
		{
			name:           "store is main",
			journalVersion: "0.4.0",
			storeVersion:   "main",
		},
		{
			name:           "v prefix on both",
			journalVersion: "v0.4.0",
			storeVersion:   "v0.4.1",
		},
		{
			name:           "prerelease version",
			journalVersion: "0.4.0-beta",
			storeVersion:   "0.4.0",
		},
		{
			name:           "invalid journal version",
			journalVersion: "not-a-version",
			storeVersion:   "0.4.0",
			expectError:    true,
			errorCode:      errors.ErrCodeInvalidVersion,
			errorContains:  "invalid journal version",
		},
		{
			name:           "empty store version",
			journalVersion: "0.4.0",
			storeVersion:   "",
			expectError:    true,
			errorCode:      errors.ErrCodeInvalidVersion,
			errorContains:  "invalid store version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckVersionCompatibility(tt.journalVersion, tt.storeVersion)

			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, tt.errorCode))
				assert.Contains(t, err.Error(), tt.errorContains)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestGetVersion(t *testing.T) {
	assert.Equal(t, Version, GetVersion())
}
