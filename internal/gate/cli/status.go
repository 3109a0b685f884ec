package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/cyphergate/internal/common"
	"github.com/dmitrijs2005/cyphergate/internal/cryptox"
)

// StatusReport describes the stored credential record without revealing
// the digest.
type StatusReport struct {
	Backend    string
	Location   string
	Registered bool
	Username   string
	Algorithm  string
}

type locator interface {
	Location() string
}

// NewStatusCommand prints whether a record exists and how it is stored.
func NewStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:           "status",
		Short:         "Show whether credentials are registered",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				r, err := a.Status(ctx)
				if err != nil {
					return err
				}
				return renderStatus(cmd.OutOrStdout(), r)
			})
		},
	}
}

// Status inspects the configured store.
func (a *App) Status(ctx context.Context) (StatusReport, error) {
	r := StatusReport{Backend: a.store.Backend()}
	if l, ok := a.store.(locator); ok {
		r.Location = l.Location()
	}

	rec, err := a.store.Load(ctx)
	switch {
	case errors.Is(err, common.ErrNotFound):
		return r, nil
	case err != nil:
		return r, err
	}

	r.Registered = true
	r.Username = rec.Username
	r.Algorithm = cryptox.Identify(rec.PasswordHash)
	return r, nil
}

func renderStatus(w io.Writer, r StatusReport) error {
	registered := "no"
	if r.Registered {
		registered = "yes"
	}

	rows := [][2]string{
		{"Backend", r.Backend},
		{"Location", r.Location},
		{"Registered", registered},
	}
	if r.Registered {
		rows = append(rows,
			[2]string{"Username", r.Username},
			[2]string{"Hash", r.Algorithm},
		)
	}

	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "%-11s %s\n", row[0]+":", row[1]); err != nil {
			return err
		}
	}
	return nil
}
