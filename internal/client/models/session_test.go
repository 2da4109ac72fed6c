package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Valid(t *testing.T) {
	tests := []struct {
		name string
		s    Session
		want bool
	}{
		{name: "signed out", s: Session{}, want: true},
		{name: "authenticated", s: Session{IsAuthenticated: true, User: &User{ID: "u1", Email: "a@x.com"}}, want: true},
		{name: "flag without user", s: Session{IsAuthenticated: true}, want: false},
		{name: "user without flag", s: Session{User: &User{ID: "u1", Email: "a@x.com"}}, want: false},
		{name: "user without id", s: Session{IsAuthenticated: true, User: &User{Email: "a@x.com"}}, want: false},
		{name: "user without email", s: Session{IsAuthenticated: true, User: &User{ID: "u1"}}, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.s.Valid())
		})
	}
}

func TestSession_CloneIsDeep(t *testing.T) {
	s := Session{IsAuthenticated: true, User: &User{ID: "u1", Email: "a@x.com"}}
	c := s.Clone()
	c.User.Email = "changed@x.com"
	assert.Equal(t, "a@x.com", s.User.Email)
}

func TestDisplayNameFromEmail(t *testing.T) {
	assert.Equal(t, "test", DisplayNameFromEmail("test@docomo.ne.jp"))
	assert.Equal(t, "noat", DisplayNameFromEmail("noat"))
	assert.Equal(t, "", DisplayNameFromEmail("@x.com"))
}
