// Package credentials persists the single CredentialRecord of the gate.
//
// Three backends implement Store:
//
//   - sqlite (default): username and digest live in one SQLite metadata
//     table and are written in a single transaction, so a save either
//     replaces both fields or neither.
//   - file: the original two-artifact layout, user.txt holding the raw
//     username and password.txt holding the raw digest bytes. Each artifact
//     is replaced atomically (temp file, fsync, rename). The digest is
//     committed first; if committing the username then fails, the previous
//     digest is put back. A crash between the two renames can still leave
//     a new digest next to the old username. Such a pair never verifies the
//     old password and surfaces as a rejected login until re-registration.
//   - redis: both fields in one Redis hash, written with one HSET inside
//     MULTI/EXEC.
//
// Load reports common.ErrNotFound when no record exists and wraps every
// other failure in common.ErrStorage.
package credentials
