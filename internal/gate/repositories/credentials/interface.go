package credentials

import (
	"context"

	"github.com/dmitrijs2005/cyphergate/internal/gate/models"
)

// Store persists exactly one CredentialRecord.
type Store interface {
	// Save replaces the stored record, both fields or neither.
	Save(ctx context.Context, rec models.CredentialRecord) error
	// Load returns the record, common.ErrNotFound, or a storage error.
	Load(ctx context.Context) (models.CredentialRecord, error)
	// Exists is a cheap check that does not read the digest.
	Exists(ctx context.Context) (bool, error)
	// Backend names the implementation, for logs and status output.
	Backend() string
	Close() error
}
