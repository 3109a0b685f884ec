// Package models defines the data shapes shared by the credential store,
// the authentication services and the console front end.
package models
