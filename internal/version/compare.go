package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/trade-journal/pkg/errors"
)

// CheckVersionCompatibility checks whether a journal binary can open a store
// that was written by another journal version.
//
// Compatibility Rules:
//   - If either version is "main" (development build), the check is skipped
//   - Major versions must match exactly
//   - Minor versions must match exactly
//   - Patch versions can differ (e.g., 0.4.0 opens a store written by 0.4.3)
//
// Examples:
//   - Journal 0.4.0, Store 0.4.0 -> OK
//   - Journal 0.4.1, Store 0.4.0 -> OK (patch differs)
//   - Journal 0.5.0, Store 0.4.0 -> ERROR (minor differs)
//   - Journal 1.0.0, Store 0.4.0 -> ERROR (major differs)
//   - Journal main, Store 0.4.0 -> OK (dev build)
func CheckVersionCompatibility(journalVersion, storeVersion string) error {
	journalVersion = strings.TrimPrefix(journalVersion, "v")
	storeVersion = strings.TrimPrefix(storeVersion, "v")

	if journalVersion == "main" || storeVersion == "main" {
		return nil
	}

	journalSemver, err := semver.NewVersion(journalVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid journal version '%s'", journalVersion)
	}

	storeSemver, err := semver.NewVersion(storeVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid store version '%s'", storeVersion)
	}

	if journalSemver.Major() != storeSemver.Major() {
		return errors.Newf(errors.ErrCodeVersionMismatch,
			"major version mismatch: journal is %d.x.x but store was written by %d.x.x",
			journalSemver.Major(), storeSemver.Major())
	}

	if journalSemver.Minor() != storeSemver.Minor() {
		return errors.Newf(errors.ErrCodeVersionMismatch,
			"minor version mismatch: journal is %d.%d.x but store was written by %d.%d.x",
			journalSemver.Major(), journalSemver.Minor(),
			storeSemver.Major(), storeSemver.Minor())
	}

	return nil
}
