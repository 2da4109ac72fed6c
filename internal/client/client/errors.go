package client

import (
	"errors"
	"net/http"
)

// Kind is the closed set of failure categories shown to the user.
type Kind string

const (
	// KindNetwork: the call never completed (unreachable host, timeout,
	// blocked connection).
	KindNetwork Kind = "NETWORK"
	// KindServer: 5xx response.
	KindServer Kind = "SERVER"
	// KindRequest: 4xx response carrying a server-authored message.
	KindRequest Kind = "REQUEST"
	// KindUnexpected: anything else.
	KindUnexpected Kind = "UNEXPECTED"
)

// Fixed user-facing messages. REQUEST has none: the server's wording is shown.
const (
	MessageNetwork    = "ネットワークに接続できませんでした。通信環境をご確認のうえ、再度お試しください。"
	MessageServer     = "サーバーでエラーが発生しました。しばらく時間をおいて再度お試しください。"
	MessageUnexpected = "予期しないエラーが発生しました。再度お試しください。"
)

var (
	// ErrUnavailable matches every NETWORK error.
	ErrUnavailable = errors.New("server unavailable")
	// ErrUnauthorized matches a classified 401/403 response.
	ErrUnauthorized = errors.New("unauthorized")
)

// ClassifiedError is the only error type that leaves the call wrapper.
// Error returns Message, which is always safe to display.
type ClassifiedError struct {
	Kind    Kind
	Message string
	// Status is the HTTP status, 0 when no response was received.
	Status int
	// Code is the optional machine-readable code from the error body.
	Code  string
	Cause error
}

func (e *ClassifiedError) Error() string {
	return e.Message
}

func (e *ClassifiedError) Unwrap() error {
	return e.Cause
}

// Is lets callers match the coarse sentinels with errors.Is.
func (e *ClassifiedError) Is(target error) bool {
	switch target {
	case ErrUnavailable:
		return e.Kind == KindNetwork
	case ErrUnauthorized:
		return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
	}
	return false
}

// AsClassified returns err as a *ClassifiedError, wrapping anything else
// as UNEXPECTED. It returns nil only for a nil err.
func AsClassified(err error) *ClassifiedError {
	if err == nil {
		return nil
	}
	var ce *ClassifiedError
	if errors.As(err, &ce) {
		return ce
	}
	return &ClassifiedError{Kind: KindUnexpected, Message: MessageUnexpected, Cause: err}
}

// IsKind reports whether err classifies as k.
func IsKind(err error, k Kind) bool {
	var ce *ClassifiedError
	return errors.As(err, &ce) && ce.Kind == k
}
