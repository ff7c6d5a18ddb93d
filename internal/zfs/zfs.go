// Package zfs wraps the privileged storage-management commands the wrapper
// relies on: pool enumeration and delegation of snapshot rights. Every call
// here runs through an escalation program; the wrapper never assumes it is
// root itself.
package zfs

import (
	"fmt"
	"os/exec"
	"strings"
)

// Tool is the storage-management command expected on the search path.
const Tool = "zfs"

// ListPools enumerates storage pools via the given escalation program.
// The listing is depth-limited so only top-level pools appear, never child
// datasets; it prints one name per line with a NAME header, which is
// filtered out.
func ListPools(escalator string) ([]string, error) {
	cmd := exec.Command(escalator, Tool, "list", "-d", "0", "-o", "name")
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("%s list failed: %w (stderr: %s)",
				Tool, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s list failed: %w", Tool, err)
	}

	var pools []string
	for _, line := range strings.Split(strings.TrimSpace(string(out)), "\n") {
		name := strings.TrimSpace(line)
		if name == "" || name == "NAME" {
			continue
		}
		// A name with a slash is a dataset, not a pool; rights are
		// delegated at the pool level only.
		if strings.Contains(name, "/") {
			continue
		}
		pools = append(pools, name)
	}
	return pools, nil
}

// Allow grants the user mount and snapshot rights on the pool via the given
// escalation program.
func Allow(escalator, user, pool string) error {
	cmd := exec.Command(escalator, Tool, "allow", user, "mount,snapshot", pool)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("%s allow %s on %s failed: %w (output: %s)",
			Tool, user, pool, err, strings.TrimSpace(string(output)))
	}
	return nil
}
