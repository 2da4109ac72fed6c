// Package cli provides the interactive mypage terminal client.
//
// It wires configuration, on-device storage, the API client and an
// interactive REPL. The login command shows the recent accounts, reads the
// password without echo and drives a login.Controller; the remaining
// commands render the account pages through services.PortalService.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
