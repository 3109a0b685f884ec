package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/cyphergate/internal/gate/services"
)

// NewRegisterCommand replaces the stored credentials without logging in
// first, e.g. after the password has been forgotten.
func NewRegisterCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "register",
		Short:         "Register new credentials, replacing any existing ones",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				if err := a.RunRegistration(ctx); err != nil {
					return err
				}
				a.Announce("Signup complete. Please log in.", services.SeveritySuccess)
				return nil
			})
		},
	}
}
