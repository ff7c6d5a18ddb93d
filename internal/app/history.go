package app

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/snapguard/internal/output"
	"github.com/blackwell-systems/snapguard/internal/store"
)

var (
	historyLimit int
	historyDB    string
	historyPaths bool

	historyCmd = &cobra.Command{
		Use:   "history",
		Short: "List recorded snapshot requests",
		Long: `history shows the audit log of snapshot requests made by previous wrapper
runs: which target triggered each request, the suffix and privilege tier it
ran with, and whether the snapshot was created. The wrapper never consults
this log when deciding whether to snapshot; it is a record, not a cache.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runHistory,
	}
)

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "maximum number of requests to show (0 for all)")
	historyCmd.Flags().StringVar(&historyDB, "db", "", "audit database path (default ~/.snapguard/snapguard.db)")
	historyCmd.Flags().BoolVar(&historyPaths, "paths", false, "also list the path set of each request")
}

func runHistory(cmd *cobra.Command, args []string) error {
	dbPath := historyDB
	if dbPath == "" {
		var err error
		dbPath, err = defaultDBPath()
		if err != nil {
			return err
		}
	}

	st, err := store.New(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.CreateSchema(); err != nil {
		return err
	}

	requests, err := st.ListRequests(historyLimit)
	if err != nil {
		return err
	}

	fmt.Print(output.RenderRequestTable(requests))

	if historyPaths {
		for _, req := range requests {
			paths, err := st.GetRequestPaths(req.ID)
			if err != nil {
				return err
			}
			fmt.Print(output.RenderRequestPaths(req, paths))
		}
	}
	return nil
}
