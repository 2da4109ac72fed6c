// Package store holds the two device-local state owners of the client: the
// SessionStore (who is signed in) and the RecentAccounts ledger (which
// emails were used to sign in before).
//
// Both are constructed once at start-up, rehydrate from a
// metadata.Repository and write through to it on every mutation. They use
// distinct keys, so signing out never forgets the recent accounts.
package store
