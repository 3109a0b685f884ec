package models

// CredentialRecord is the single persisted account: the username stored
// verbatim and the self-describing password digest produced by a
// cryptox.Hasher. The two fields are always written together.
type CredentialRecord struct {
	Username     string
	PasswordHash []byte
}

// IsZero reports whether the record carries no data at all.
func (r CredentialRecord) IsZero() bool {
	return r.Username == "" && len(r.PasswordHash) == 0
}
