package app

import (
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/snapguard/internal/classify"
	"github.com/blackwell-systems/snapguard/internal/config"
	"github.com/blackwell-systems/snapguard/internal/lookup"
	"github.com/blackwell-systems/snapguard/internal/privilege"
	"github.com/blackwell-systems/snapguard/internal/snapshots"
	"github.com/blackwell-systems/snapguard/internal/store"
)

// runWrap is the normal pipeline: classify the argument vector, snapshot
// whatever needs it, then execute the target with its verbatim arguments.
// Snapshot outcome never blocks execution except through the fatal error
// paths; after the target starts, its exit code is the wrapper's.
func runWrap(cmd *cobra.Command, args []string) error {
	if err := preflight(); err != nil {
		return err
	}

	req, err := classify.Parse(selfName(), args)
	if err != nil {
		printUsage()
		return err
	}

	switch req.Mode {
	case classify.ModeHelp:
		printUsage()
		return &exitCodeError{code: 1}
	case classify.ModeGrant:
		return privilege.Grant(os.Stdout)
	}

	if err := req.Resolve(); err != nil {
		return err
	}

	applyConfig(req)

	if candidates := classify.CandidatePaths(req.Args); len(candidates) > 0 {
		needed, err := lookup.NewClient("").NeedsSnapshot(candidates)
		if err != nil {
			return err
		}

		if len(needed) > 0 {
			st := openAuditStore(req.DBPath)
			if st != nil {
				defer st.Close()
			}

			mgr := snapshots.New("", st)
			if err := mgr.Ensure(req.Target, needed, req.Suffix, req.UTC); err != nil {
				return err
			}
		}
	}

	return execTarget(req)
}

// applyConfig fills request fields the command line left at their defaults
// from the optional config file. Config failures are ignored; the file is a
// convenience, not a requirement.
func applyConfig(req *classify.Request) {
	dir, err := config.Dir()
	if err != nil {
		return
	}
	cfg, err := config.Load(dir)
	if err != nil {
		return
	}

	if req.Suffix == classify.DefaultSuffix && cfg.Suffix != "" {
		req.Suffix = cfg.Suffix
	}
	if !req.UTC && cfg.UTC {
		req.UTC = true
	}
	if req.DBPath == "" && cfg.DBPath != "" {
		req.DBPath = cfg.DBPath
	}
}

// openAuditStore opens the audit database, creating the schema if needed.
// Auditing is best effort: any failure here produces a warning and a nil
// store, never a fatal error.
func openAuditStore(dbPath string) *store.Store {
	if dbPath == "" {
		var err error
		dbPath, err = defaultDBPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: audit log disabled: %v\n", err)
			return nil
		}
	}

	st, err := store.New(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: audit log disabled: %v\n", err)
		return nil
	}
	if err := st.CreateSchema(); err != nil {
		st.Close()
		fmt.Fprintf(os.Stderr, "Warning: audit log disabled: %v\n", err)
		return nil
	}
	return st
}

// execTarget runs the resolved target program with stdio wired through and
// forwards its exit code.
func execTarget(req *classify.Request) error {
	cmd := exec.Command(req.TargetPath, req.Args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return &exitCodeError{code: exitErr.ExitCode()}
		}
		return fmt.Errorf("failed to execute %s: %w", req.Target, err)
	}
	return nil
}
