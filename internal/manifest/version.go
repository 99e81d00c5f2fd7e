package manifest

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrIncompatibleCLI is returned when a template needs a newer CLI.
var ErrIncompatibleCLI = errors.New("template requires a newer CLI")

// CheckCompatibility reports whether cliVersion satisfies the manifest's
// min_cli_version. Development builds ("dev" or any non-semver string) are
// always compatible.
func CheckCompatibility(m *TemplateManifest, cliVersion string) error {
	if m == nil || m.MinCLIVersion == "" {
		return nil
	}

	current, err := parseSemver(cliVersion)
	if err != nil {
		return nil
	}

	constraint, err := semver.NewConstraint(">= " + strings.TrimPrefix(m.MinCLIVersion, "v"))
	if err != nil {
		return fmt.Errorf("parsing min_cli_version %q: %w", m.MinCLIVersion, err)
	}

	if !constraint.Check(current) {
		return fmt.Errorf("%w: %s needs >= %s, running %s",
			ErrIncompatibleCLI, m.Name, m.MinCLIVersion, cliVersion)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
