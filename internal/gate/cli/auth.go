package cli

import (
	"context"
	"errors"

	"github.com/dmitrijs2005/cyphergate/internal/common"
	"github.com/dmitrijs2005/cyphergate/internal/gate/services"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// RunRegistration prompts for a username and password until the pair is
// accepted. Validation failures are announced and re-prompted; any other
// error (storage, closed input) is returned. The password is wiped after
// each attempt.
func (a *App) RunRegistration(ctx context.Context) error {
	a.announcer.Announce("Welcome! Please sign up for CypherGate.", services.SeveritySuccess)

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		username, err := getSimpleText(a.reader, a.announcer.Prompt("Username: "), a.out)
		if err != nil {
			return err
		}

		password, err := getPassword(a.reader, a.announcer.Prompt("Password: "), a.out)
		if err != nil {
			return err
		}

		_, err = a.registration.Register(ctx, username, password)
		common.WipeByteArray(password)
		if err == nil {
			return nil
		}
		if errors.Is(err, common.ErrValidation) {
			a.announcer.Announce(HumanError(err), services.SeverityError)
			continue
		}
		return err
	}
}

// PromptCredentials collects one login attempt. The screen is cleared
// before the first prompt.
func (a *App) PromptCredentials(_ context.Context) (string, []byte, error) {
	if !a.screenCleared {
		a.announcer.ClearScreen()
		a.screenCleared = true
	}

	username, err := getSimpleText(a.reader, a.announcer.Prompt("Username: "), a.out)
	if err != nil {
		return "", nil, err
	}

	password, err := getPassword(a.reader, a.announcer.Prompt("Password: "), a.out)
	if err != nil {
		return "", nil, err
	}
	return username, password, nil
}
