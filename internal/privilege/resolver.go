// Package privilege finds an escalation program and implements the one-shot
// flow that delegates snapshot rights to the invoking user.
package privilege

import (
	"fmt"
	"os/exec"
	"strings"
)

// escalators are tried in fixed preference order.
var escalators = []string{"sudo", "doas", "pkexec"}

// FindEscalator returns the path of the first escalation program found on
// the search path. The result is not cached anywhere; each run of the
// wrapper resolves fresh.
func FindEscalator() (string, error) {
	for _, name := range escalators {
		if path, err := exec.LookPath(name); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no privilege escalation program found (tried %s)",
		strings.Join(escalators, ", "))
}
