// Package login drives the sign-in form.
//
// A Controller moves through Idle → Validating → Submitting → Success or
// Failed. Field edits re-run validation on every change; the form can only be
// submitted while it is valid and no submission is in flight. On failure the
// classified message becomes the form alert and both email and password are
// kept so the user can fix a typo. On success the session and the recent
// accounts are updated and the navigator is called once with the account
// home destination.
package login
