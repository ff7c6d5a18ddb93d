// Package lookup queries the external version-lookup tool for paths whose
// live content is not covered by a current snapshot.
package lookup

import (
	"fmt"
	"os/exec"
	"strings"
)

// DefaultTool is the version-lookup command expected on the search path.
const DefaultTool = "httm"

// Client invokes the version-lookup tool in last-snapshot mode.
type Client struct {
	Tool string
}

// NewClient returns a Client for the given tool name. An empty name selects
// DefaultTool.
func NewClient(tool string) *Client {
	if tool == "" {
		tool = DefaultTool
	}
	return &Client{Tool: tool}
}

// NeedsSnapshot asks the lookup tool which of the given paths lack a
// snapshot matching their live content. It returns those paths in the
// tool's output order. A non-zero exit from the tool is an error.
func (c *Client) NeedsSnapshot(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, nil
	}

	args := append([]string{"--last-snap=no-ditto", "--not-so-pretty"}, paths...)
	cmd := exec.Command(c.Tool, args...)
	out, err := cmd.Output()
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("%s failed to look up snapshot versions: %w (stderr: %s)",
				c.Tool, err, strings.TrimSpace(string(exitErr.Stderr)))
		}
		return nil, fmt.Errorf("%s failed to look up snapshot versions: %w", c.Tool, err)
	}

	return parseNeeded(string(out)), nil
}

// parseNeeded extracts the path field from each output line. Lines are
// colon-delimited with the path first; only the first colon is significant.
// Blank lines are skipped. The output is already fully in memory, so the
// split has no line-length limit. Paths that themselves contain a colon or
// a newline are not representable in this format and come back truncated;
// the tool's output offers no escaping to recover them.
func parseNeeded(out string) []string {
	var needed []string
	for _, line := range strings.Split(out, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		path, _, _ := strings.Cut(line, ":")
		if path == "" {
			continue
		}
		needed = append(needed, path)
	}
	return needed
}
