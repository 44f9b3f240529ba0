package cli

import (
	"jobdesk-cli/internal/store"

	"github.com/spf13/cobra"
)

func newActivityCmd(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "activity",
		Short: "Show this machine's recent jobdesk actions",
		RunE: func(cmd *cobra.Command, args []string) error {
			log, err := store.OpenActivityLog(cmd.Context())
			if err != nil {
				return writeErr(cmd, err)
			}
			defer log.Close()

			entries, err := log.Recent(cmd.Context(), limit)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"activity": entries}})
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 50, "Maximum entries to show (newest first)")
	return cmd
}
