// Package services contains the credential lifecycle and the authentication
// state machine of CypherGate.
//
//   - RegistrationService validates a username/password pair, hashes the
//     password and replaces the stored record. It never loops on bad input;
//     it returns a *ValidationError and the caller re-prompts.
//   - AuthenticationService compares one entered pair against a loaded
//     record and answers Authorized or Rejected, never saying which half
//     was wrong.
//   - SessionGate drives registration (when no record exists) and up to
//     MaxAttempts authentication attempts, producing the single decision
//     the shell front end acts on.
//
// Terminal I/O is reached only through the CredentialPrompter, Registrar
// and Announcer interfaces.
package services
