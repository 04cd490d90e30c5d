package plugin

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CheckHostCompatibility reports whether a host running hostVersion satisfies the
// descriptor's minimum host version. Development builds whose version is not semver
// skip the check.
func CheckHostCompatibility(d Descriptor, hostVersion string) error {
	if strings.TrimSpace(d.MinHostVersion) == "" {
		return nil
	}

	host, err := semver.NewVersion(strings.TrimPrefix(hostVersion, "v"))
	if err != nil {
		return nil
	}

	required, err := semver.NewVersion(d.MinHostVersion)
	if err != nil {
		return fmt.Errorf("plugin '%s' has invalid minimum host version '%s': %w", d.ID, d.MinHostVersion, err)
	}

	if host.LessThan(required) {
		return ErrIncompatibleHost{ID: d.ID, Required: required.String(), Host: host.String()}
	}
	return nil
}
