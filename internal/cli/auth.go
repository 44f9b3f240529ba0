package cli

import (
	"context"
	"errors"

	"jobdesk-cli/internal/api"
	"jobdesk-cli/internal/model"
	"jobdesk-cli/internal/store"

	"github.com/spf13/cobra"
)

func newLoginCmd(app *App) *cobra.Command {
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and persist the credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.wire(); err != nil {
				return writeErr(cmd, err)
			}
			sess, err := app.sessions.Login(cmd.Context(), email, password)
			if err != nil {
				return writeErr(cmd, errors.New(loginFailureMessage(err)))
			}
			logActivity(cmd.Context(), sess.UserID(), "auth.login", "", nil)
			return writeOut(cmd, app, map[string]any{"data": sess.Identity})
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newRegisterCmd(app *App) *cobra.Command {
	var name string
	var email string
	var password string

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and sign in",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.wire(); err != nil {
				return writeErr(cmd, err)
			}
			sess, err := app.sessions.Register(cmd.Context(), name, email, password)
			if err != nil {
				return writeErr(cmd, errors.New(loginFailureMessage(err)))
			}
			logActivity(cmd.Context(), sess.UserID(), "auth.register", "", nil)
			return writeOut(cmd, app, map[string]any{"data": sess.Identity})
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "Display name")
	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func newLogoutCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Clear the persisted credential",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.wire(); err != nil {
				return writeErr(cmd, err)
			}
			// Best effort: note who is logging out before the session goes.
			actor := app.sessions.Current().UserID()
			if err := app.sessions.Logout(); err != nil {
				return writeErr(cmd, err)
			}
			logActivity(cmd.Context(), actor, "auth.logout", "", nil)
			return writeOut(cmd, app, map[string]any{"data": map[string]any{"loggedOut": true}})
		},
	}
}

func newWhoamiCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed-in identity",
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := restoreSession(cmd, app)
			if err != nil {
				return writeErr(cmd, err)
			}
			if !sess.Active() {
				return writeOut(cmd, app, map[string]any{"data": nil})
			}
			return writeOut(cmd, app, map[string]any{"data": sess.Identity})
		},
	}
}

// restoreSession wires the app and restores the persisted session, if any.
// An anonymous result is (nil, nil), not an error.
func restoreSession(cmd *cobra.Command, app *App) (*model.Session, error) {
	if err := app.wire(); err != nil {
		return nil, err
	}
	return app.sessions.Restore(cmd.Context())
}

func loginFailureMessage(err error) string {
	if msg := api.ServerMessage(err); msg != "" {
		return msg
	}
	return "Login failed. Please try again."
}

// logActivity appends to the local activity log. Best effort: the log is a
// convenience trail, never a reason to fail a successful server operation.
func logActivity(ctx context.Context, actorID, kind, subject string, detail map[string]string) {
	log, err := store.OpenActivityLog(ctx)
	if err != nil {
		return
	}
	defer log.Close()
	_ = log.Append(ctx, actorID, kind, subject, detail)
}
