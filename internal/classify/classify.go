// Package classify turns the wrapper's raw argument vector into a runnable
// request: wrapper flags are split off the front, the target program is
// resolved on the search path, and the residual arguments are carried
// verbatim for the target.
package classify

import (
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// DefaultSuffix is the snapshot name suffix used when neither a flag nor a
// config file supplies one.
const DefaultSuffix = "ounceSnapFileMount"

// Mode selects which top-level flow an invocation runs.
type Mode int

const (
	// ModeRun is the normal wrap-and-execute pipeline.
	ModeRun Mode = iota
	// ModeHelp prints usage and exits without executing anything.
	ModeHelp
	// ModeGrant runs the one-shot privilege grant flow.
	ModeGrant
)

// Request is a classified invocation. Args is the residual argument list for
// the target program and is never reordered or filtered after parsing.
type Request struct {
	Mode   Mode
	Suffix string
	UTC    bool
	DBPath string

	Target     string   // target program name as typed
	TargetPath string   // absolute path, filled in by Resolve
	Args       []string // forwarded verbatim
}

// Parse classifies argv. selfName is the wrapper's own invocation name
// (basename of argv[0] of the running process); a first token equal to it is
// rejected to stop the wrapper from wrapping itself in a loop.
func Parse(selfName string, argv []string) (*Request, error) {
	req := &Request{Suffix: DefaultSuffix}

	if len(argv) == 0 {
		return nil, fmt.Errorf("no target program given")
	}

	first := argv[0]
	if first == selfName || strings.TrimPrefix(first, "./") == selfName {
		return nil, fmt.Errorf("%s is being called recursively, quitting", selfName)
	}

	switch first {
	case "-h", "--help":
		req.Mode = ModeHelp
		return req, nil
	case "--give-priv":
		req.Mode = ModeGrant
		return req, nil
	}

	rest := argv
	for len(rest) > 0 {
		tok := rest[0]
		switch {
		case tok == "--utc":
			req.UTC = true
			rest = rest[1:]
		case tok == "--suffix" || tok == "--db":
			if len(rest) < 2 || rest[1] == "" {
				return nil, fmt.Errorf("%s requires a non-empty value", tok)
			}
			if tok == "--suffix" {
				req.Suffix = rest[1]
			} else {
				req.DBPath = rest[1]
			}
			rest = rest[2:]
		case strings.HasPrefix(tok, "--suffix="):
			val := strings.TrimPrefix(tok, "--suffix=")
			if val == "" {
				return nil, fmt.Errorf("--suffix requires a non-empty value")
			}
			req.Suffix = val
			rest = rest[1:]
		case strings.HasPrefix(tok, "--db="):
			val := strings.TrimPrefix(tok, "--db=")
			if val == "" {
				return nil, fmt.Errorf("--db requires a non-empty value")
			}
			req.DBPath = val
			rest = rest[1:]
		default:
			// First token we don't recognize is the target program.
			req.Target = tok
			req.Args = rest[1:]
			return req, nil
		}
	}

	return nil, fmt.Errorf("no target program given")
}

// Resolve locates the target program on the process search path and records
// its absolute path. LookPath also verifies the file is executable.
func (r *Request) Resolve() error {
	if r.Target == "" {
		return fmt.Errorf("no target program given")
	}
	path, err := exec.LookPath(r.Target)
	if err != nil {
		return fmt.Errorf("target program %q could not be resolved: %w", r.Target, err)
	}
	r.TargetPath = path
	return nil
}

// CandidatePaths returns the subset of args that name existing files or
// directories at scan time, in argument order. Duplicates are preserved; the
// lookup tool sees exactly what the user typed. The gap between this check
// and the snapshot itself is inherent and accepted.
func CandidatePaths(args []string) []string {
	var paths []string
	for _, arg := range args {
		if _, err := os.Stat(arg); err == nil {
			paths = append(paths, arg)
		}
	}
	return paths
}
