package app

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/blackwell-systems/snapguard/internal/privilege"
)

// givePrivCmd is the subcommand form of the grant flow; the classifier also
// accepts --give-priv as the first token. Neither form ever resolves or
// executes a target program.
var givePrivCmd = &cobra.Command{
	Use:   "give-priv",
	Short: "Grant the current user snapshot and mount rights on all pools",
	Long: `give-priv delegates mount,snapshot rights on every visible storage pool to
the invoking user, so that later snapshot requests succeed without
escalation. It must be run as the unprivileged user who should receive the
rights; the escalation program will prompt as needed.`,
	Args:          cobra.NoArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := preflight(); err != nil {
			return err
		}
		return privilege.Grant(os.Stdout)
	},
}
