package credentials

import (
	"errors"
	"fmt"

	"github.com/dmitrijs2005/cyphergate/internal/common"
)

var errCorruptRecord = errors.New("corrupt credential record")

func storageError(op string, err error) error {
	return fmt.Errorf("%w: %s: %w", common.ErrStorage, op, err)
}
