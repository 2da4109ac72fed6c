package models

import (
	"strings"
	"time"
)

// User is the signed-in identity kept on the device.
type User struct {
	ID          string `json:"id"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email"`
}

// Tokens are opaque credentials issued by the authentication service.
// The client stores and forwards them; it never inspects them.
type Tokens struct {
	AccessToken  string    `json:"accessToken,omitempty"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	TokenType    string    `json:"tokenType,omitempty"`
	ExpiresAt    time.Time `json:"expiresAt,omitempty"`
}

// Session is the current device's authenticated-identity record.
// IsAuthenticated is true if and only if User is non-nil.
type Session struct {
	User            *User  `json:"user"`
	Tokens          Tokens `json:"tokens"`
	IsAuthenticated bool   `json:"isAuthenticated"`
}

// Valid reports whether s is a well-formed record: either fully signed out,
// or authenticated with a user carrying an id and an email.
func (s Session) Valid() bool {
	if !s.IsAuthenticated {
		return s.User == nil
	}
	return s.User != nil && s.User.ID != "" && s.User.Email != ""
}

// Clone returns a deep copy so callers cannot mutate store-owned state.
func (s Session) Clone() Session {
	if s.User != nil {
		u := *s.User
		s.User = &u
	}
	return s
}

// DisplayNameFromEmail returns the local part of an email address.
func DisplayNameFromEmail(email string) string {
	local, _, found := strings.Cut(email, "@")
	if !found {
		return email
	}
	return local
}
