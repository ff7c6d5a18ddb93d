// Package snapshots requests point-in-time snapshots for a set of paths,
// escalating privileges when the unprivileged attempt is refused.
package snapshots

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/blackwell-systems/snapguard/internal/privilege"
	"github.com/blackwell-systems/snapguard/internal/store"
)

// DefaultTool is the snapshot-creation command expected on the search path.
const DefaultTool = "httm"

// Manager drives snapshot creation and records outcomes to the audit store.
type Manager struct {
	tool  string
	store *store.Store // nil disables audit recording

	stdout io.Writer
	stderr io.Writer

	// resolved lazily, only when the unprivileged attempt fails
	findEscalator func() (string, error)
}

// New creates a snapshot Manager. An empty tool selects DefaultTool; st may
// be nil when no audit store is available.
func New(tool string, st *store.Store) *Manager {
	if tool == "" {
		tool = DefaultTool
	}
	return &Manager{
		tool:          tool,
		store:         st,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		findEscalator: privilege.FindEscalator,
	}
}

// Ensure guarantees a snapshot covering paths exists, or returns an error.
// The first attempt runs unprivileged with all output discarded: an
// unprivileged user with no prior grant is expected to fail here, so only
// the exit code matters. On failure the same command is re-run through an
// escalation program with its output surfaced. target is recorded in the
// audit log as the program whose invocation triggered the request.
func (m *Manager) Ensure(target string, paths []string, suffix string, utc bool) error {
	if len(paths) == 0 {
		return nil
	}

	args := snapArgs(suffix, utc, paths)

	probe := exec.Command(m.tool, args...)
	probe.Stdout = nil
	probe.Stderr = nil
	if err := probe.Run(); err == nil {
		m.record(target, paths, suffix, utc, store.TierUnprivileged, store.StatusCreated)
		return nil
	}

	escalator, err := m.findEscalator()
	if err != nil {
		m.record(target, paths, suffix, utc, store.TierEscalated, store.StatusFailed)
		return err
	}

	var stderr bytes.Buffer
	elevated := exec.Command(escalator, append([]string{m.tool}, args...)...)
	elevated.Stdout = m.stdout
	elevated.Stderr = &stderr
	if err := elevated.Run(); err != nil {
		m.record(target, paths, suffix, utc, store.TierEscalated, store.StatusFailed)
		return fmt.Errorf("failed to create snapshot even with elevated privileges; "+
			"snapshot rights may not be delegated to this user (see 'snapguard --give-priv'): %w (stderr: %s)",
			err, strings.TrimSpace(stderr.String()))
	}

	m.record(target, paths, suffix, utc, store.TierEscalated, store.StatusCreated)
	return nil
}

// snapArgs builds the snapshot-creation argument list.
func snapArgs(suffix string, utc bool, paths []string) []string {
	var args []string
	if utc {
		args = append(args, "--utc")
	}
	args = append(args, "--snap="+suffix)
	return append(args, paths...)
}

// record writes an audit row. Auditing is best effort: a failure warns on
// stderr and never changes the outcome of the snapshot request.
func (m *Manager) record(target string, paths []string, suffix string, utc bool, tier, status string) {
	if m.store == nil {
		return
	}
	req := &store.Request{
		CreatedAt: time.Now(),
		Target:    target,
		Suffix:    suffix,
		UTC:       utc,
		Tier:      tier,
		Status:    status,
	}
	if _, err := m.store.InsertRequest(req, paths); err != nil {
		fmt.Fprintf(m.stderr, "Warning: failed to record snapshot request: %v\n", err)
	}
}
