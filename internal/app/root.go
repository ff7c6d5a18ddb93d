package app

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/snapguard/internal/lookup"
	"github.com/blackwell-systems/snapguard/internal/zfs"
)

// RootCmd is the root command for snapguard. Flag parsing is disabled so the
// target program's own flags reach it untouched; the leading wrapper flags
// are consumed by the classify package instead.
var RootCmd = &cobra.Command{
	Use:   "snapguard [--suffix NAME] [--utc] TARGET [ARGS...]",
	Short: "Guarantee a snapshot of a program's file arguments before it runs",
	Long: `snapguard wraps any program so that every file or directory named in its
arguments has a just-in-time snapshot before the program runs. The wrapper
asks httm which paths lack a snapshot matching their live content, creates
one where needed (escalating privileges if the unprivileged attempt is
refused), then hands control to the target program with its original
arguments. The target's exit code becomes snapguard's exit code.

Quick Start:
  1. snapguard --give-priv        # one-time: delegate snapshot rights
  2. snapguard vi notes.txt       # edit with a guaranteed backup
  3. snapguard history            # review recorded snapshot requests

Examples:
  # Snapshot before editing, with the default suffix
  snapguard nano /etc/samba/smb.conf

  # Name the snapshot and timestamp it in UTC
  snapguard --suffix nightly --utc myprog report.txt

  # Grant the current user mount,snapshot rights on every pool
  snapguard --give-priv`,
	SilenceUsage:       true,
	SilenceErrors:      true,
	DisableFlagParsing: true,
	Args:               cobra.ArbitraryArgs,
	RunE:               runWrap,
}

func init() {
	// A target program named like a subcommand must be disambiguated with a
	// path (e.g. ./history); keep the incidental surface small.
	RootCmd.CompletionOptions.DisableDefaultCmd = true

	RootCmd.AddCommand(givePrivCmd)
	RootCmd.AddCommand(historyCmd)
}

// exitCodeError carries an exit code through cobra without printing
// anything; the target program (or the usage printer) already reported.
type exitCodeError struct {
	code int
}

func (e *exitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.code)
}

// Execute runs the root command and returns the process exit code.
func Execute() int {
	if err := RootCmd.Execute(); err != nil {
		var coded *exitCodeError
		if errors.As(err, &coded) {
			return coded.code
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// preflight verifies the external collaborators exist before anything else
// happens. Both tools are hard requirements for every flow that touches
// snapshots.
func preflight() error {
	if _, err := exec.LookPath(lookup.DefaultTool); err != nil {
		return fmt.Errorf("%s must be installed and on the search path", lookup.DefaultTool)
	}
	if _, err := exec.LookPath(zfs.Tool); err != nil {
		return fmt.Errorf("%s must be installed and on the search path", zfs.Tool)
	}
	return nil
}

// selfName returns the wrapper's own invocation name, used by the recursion
// guard.
func selfName() string {
	return filepath.Base(os.Args[0])
}

// printUsage writes the wrapper usage to stderr. Requesting usage still
// counts as not proceeding to execution, so callers follow it with a
// non-zero exit.
func printUsage() {
	fmt.Fprint(os.Stderr, `Usage:
  snapguard [--suffix NAME] [--utc] TARGET [ARGS...]
  snapguard --give-priv
  snapguard history [--limit N]

Flags:
  --suffix NAME   snapshot name suffix (default "ounceSnapFileMount")
  --utc           timestamp the snapshot in UTC
  --db PATH       audit database path (default ~/.snapguard/snapguard.db)
  --give-priv     grant the current user mount,snapshot rights on all pools
  -h, --help      show this usage text
`)
}
