// Package common contains shared constants and sentinel errors used across
// the mypage client and the mock API.
package common

// Header names shared by the client call wrapper and the mock API.
const (
	AuthorizationHeaderName = "Authorization"
	RequestIDHeaderName     = "X-Request-ID"
	ContentTypeHeaderName   = "Content-Type"
	AcceptHeaderName        = "Accept"
)

// JSONContentType is sent with every request that carries a body.
const JSONContentType = "application/json"

// Persisted keys owned by the session layer. They are distinct so that
// clearing the session never clears the recent-accounts ledger.
const (
	SessionKey        = "session"
	RecentAccountsKey = "recent_accounts"
)

// HomeDestination is where a successful login navigates to.
const HomeDestination = "/mypage"
