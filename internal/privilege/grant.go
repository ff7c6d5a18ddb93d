package privilege

import (
	"fmt"
	"io"
	"os/user"
	"strings"

	"github.com/blackwell-systems/snapguard/internal/zfs"
)

// Grant delegates mount and snapshot rights on every visible storage pool to
// the current user, writing a report of the granted pools to w. It must run
// as the unprivileged user whose identity receives the rights; running it as
// root is an error. Any single pool failing is fatal for the whole flow.
func Grant(w io.Writer) error {
	current, err := user.Current()
	if err != nil {
		return fmt.Errorf("failed to determine current user: %w", err)
	}
	if current.Uid == "0" || current.Username == "root" {
		return fmt.Errorf("privilege grant must be run as the unprivileged user receiving the rights, not root")
	}

	escalator, err := FindEscalator()
	if err != nil {
		return err
	}

	pools, err := zfs.ListPools(escalator)
	if err != nil {
		return fmt.Errorf("failed to enumerate storage pools: %w", err)
	}
	if len(pools) == 0 {
		return fmt.Errorf("no storage pools found to grant rights on")
	}

	for _, pool := range pools {
		if err := zfs.Allow(escalator, current.Username, pool); err != nil {
			return fmt.Errorf("failed to grant rights on pool %s: %w", pool, err)
		}
	}

	fmt.Fprintf(w, "Snapshot and mount rights granted to %s for:\n%s\n",
		current.Username, strings.Join(pools, "\n"))
	return nil
}
