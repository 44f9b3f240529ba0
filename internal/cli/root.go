package cli

import (
	"fmt"
	"os"
	"strings"

	"jobdesk-cli/internal/api"
	"jobdesk-cli/internal/format"
	"jobdesk-cli/internal/session"
	"jobdesk-cli/internal/store"
	"jobdesk-cli/internal/tui"

	"github.com/spf13/cobra"
)

type App struct {
	BaseURL    string
	PrettyJSON bool

	client   *api.Client
	sessions *session.Store
}

func NewRootCmd() *cobra.Command {
	app := &App{}

	cmd := &cobra.Command{
		Use:          "jobdesk",
		Short:        "Job marketplace client (CLI + TUI)",
		SilenceUsage: true,
		Example: strings.TrimSpace(`
  # Start the interactive TUI
  jobdesk

  # Scriptable commands
  jobdesk login --email you@example.com --password secret
  jobdesk jobs list
  jobdesk jobs create --title "Backend Engineer" --company Acme --location Remote --description "..."
  jobdesk apply <job-id> --cover-letter "..."
  jobdesk applications list <job-id>
`),
		RunE: func(cmd *cobra.Command, args []string) error {
			// No subcommand => interactive TUI.
			if cmd.HasSubCommands() && len(args) == 0 {
				return runTUI(app)
			}
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&app.BaseURL, "api", envOr("JOBDESK_API", ""), "API base URL (default: apiBaseUrl from config, else "+api.DefaultBaseURL+")")
	cmd.PersistentFlags().BoolVar(&app.PrettyJSON, "pretty", envOr("JOBDESK_FORMAT", "") == "pretty", "Pretty-print JSON output")

	cmd.AddCommand(newLoginCmd(app))
	cmd.AddCommand(newRegisterCmd(app))
	cmd.AddCommand(newLogoutCmd(app))
	cmd.AddCommand(newWhoamiCmd(app))
	cmd.AddCommand(newJobsCmd(app))
	cmd.AddCommand(newApplyCmd(app))
	cmd.AddCommand(newApplicationsCmd(app))
	cmd.AddCommand(newActivityCmd(app))

	return cmd
}

// wire resolves the API base URL (flag/env > config > default) and builds
// the shared client and session store. Idempotent; every RunE starts here.
func (app *App) wire() error {
	if app.client != nil {
		return nil
	}
	base := strings.TrimSpace(app.BaseURL)
	if base == "" {
		cfg, err := store.LoadConfig()
		if err != nil {
			return err
		}
		base = strings.TrimSpace(cfg.APIBaseURL)
	}
	app.client = api.New(base)
	app.sessions = session.NewStore(app.client)
	return nil
}

func runTUI(app *App) error {
	if err := app.wire(); err != nil {
		return err
	}
	return tui.Run(app.client, app.sessions)
}

func envOr(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func writeOut(cmd *cobra.Command, app *App, v any) error {
	return format.WriteJSON(cmd.OutOrStdout(), v, app.PrettyJSON)
}

func writeErr(cmd *cobra.Command, err error) error {
	fmt.Fprintln(cmd.ErrOrStderr(), err.Error())
	return err
}
