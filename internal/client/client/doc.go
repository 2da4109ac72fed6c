// Package client is the mypage API client used by the terminal UI.
//
// # Overview
//
//  1. Client declares the API: Login plus the account pages (dashboard,
//     contract, billing, data usage, options, notifications, profile,
//     password, notification preferences, plan).
//  2. HTTPClient implements it over JSON/HTTP. All endpoint methods are thin
//     callers of one wrapper that sets headers, forwards the session token,
//     and turns every failure into a *ClassifiedError.
//  3. Classify maps a failed call (no response, or a non-2xx response) to
//     one of four kinds: NETWORK, SERVER, REQUEST, UNEXPECTED.
//
// # Error Handling
//
// ClassifiedError.Error returns a message ready for display. The coarse
// sentinels ErrUnavailable and ErrUnauthorized match through errors.Is.
//
// The client performs no retries and no caching; each call is independent.
package client
