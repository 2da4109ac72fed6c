package login

import (
	"context"

	"github.com/dmitrijs2005/mypage/internal/client/models"
)

//go:generate mockgen -source=ports.go -destination=mocks/mock_ports.go -package=mocks

// Authenticator performs the login call. Errors are expected to be
// *client.ClassifiedError; anything else is shown as an unexpected error.
type Authenticator interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)
}

// SessionWriter receives the signed-in identity.
type SessionWriter interface {
	Login(ctx context.Context, user models.User, tokens models.Tokens) error
}

// AccountRecorder remembers the email of a successful login.
type AccountRecorder interface {
	RecordSuccessfulLogin(ctx context.Context, email string) error
}

// Navigator moves the UI away from the login form.
type Navigator interface {
	Navigate(destination string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(destination string)

func (f NavigatorFunc) Navigate(destination string) { f(destination) }
