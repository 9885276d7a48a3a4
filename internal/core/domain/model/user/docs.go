// Package user contains the User aggregate, its Role, and the Actor value
// every command receives as explicit caller identity.
package user
