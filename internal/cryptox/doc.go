// Package cryptox implements one-way password hashing for the credential
// record.
//
// Every Hasher produces a self-describing digest (algorithm tag, cost
// parameters, salt and hash in one string) and verifies a password against
// such a digest without ever failing loudly: a malformed digest simply does
// not verify.
//
// Supported formats:
//
//	$2a$12$...                              bcrypt (default)
//	$argon2id$v=19$m=65536,t=1,p=4$salt$key argon2id, PHC string
//	$6$rounds=656000$salt$hash              sha512-crypt
//
// MultiHasher hashes with one configured algorithm and verifies any of the
// formats above, so changing the configured algorithm does not invalidate a
// record written earlier.
package cryptox
