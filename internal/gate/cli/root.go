package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/dmitrijs2005/cyphergate/internal/gate/config"
)

// NewRootCommand builds the cyphergate command tree. Without a subcommand it
// runs the gate followed by the shell.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cyphergate",
		Short: "CypherGate - a single-user login gate in front of a shell",
		Long: `CypherGate asks for a username and password before handing the terminal
to a pass-through command shell. The first run registers the user; later
runs allow a limited number of login attempts before locking out.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withApp(cmd, func(ctx context.Context, a *App) error {
				return a.Run(ctx)
			})
		},
	}

	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(NewRegisterCommand())
	cmd.AddCommand(NewStatusCommand())
	cmd.AddCommand(NewVersionCommand())

	return cmd
}

// Execute runs the command tree with args and returns the process exit code.
// Errors not yet shown to the user are printed to errOut.
func Execute(ctx context.Context, args []string, in io.Reader, out, errOut io.Writer) int {
	cmd := NewRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(in)
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	err := cmd.ExecuteContext(ctx)

	var reported *reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(errOut, HumanError(err))
	}
	return ExitCode(err)
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	return config.Load(path, cmd.Flags())
}

// withApp loads the configuration, builds an App on the command's streams
// and closes it after fn returns.
func withApp(cmd *cobra.Command, fn func(ctx context.Context, a *App) error) (err error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := NewApp(ctx, cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer func() {
		if cerr := a.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return fn(ctx, a)
}
