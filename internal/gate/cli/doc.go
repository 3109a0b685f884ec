// Package cli is the terminal front end of CypherGate.
//
// It wires configuration, the credential store, the hashing stack and the
// session gate, and implements the collaborators the gate talks to:
// prompting for credentials (no-echo password input through x/term),
// coloured announcements, and the post-login shell loop that hands every
// line to the host interpreter.
//
// Commands
//
//	cyphergate            run the gate, then the shell
//	cyphergate register   replace the stored credentials
//	cyphergate status     show whether a record exists and how it is stored
//	cyphergate version    print build metadata
//
// Shell built-ins (matched exactly):
//
//	exit | quit   leave CypherGate
//	sign up       register new credentials, then exit
//
// Every other non-empty line is run by the configured shell program.
package cli
