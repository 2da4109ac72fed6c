package client

import (
	"context"
	"errors"
	"io"
	"net"
	"net/url"
	"strings"
)

// ErrorBody is the structured error envelope returned by the API.
type ErrorBody struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// Response is what the classifier needs from a non-2xx reply. Body is nil
// when the reply could not be parsed.
type Response struct {
	Status int
	Body   *ErrorBody
}

// Classify maps a failed call to a ClassifiedError. resp is nil when no
// response was received. It has no side effects.
func Classify(err error, resp *Response) *ClassifiedError {
	if resp == nil {
		if isTransportError(err) {
			return &ClassifiedError{Kind: KindNetwork, Message: MessageNetwork, Cause: err}
		}
		return &ClassifiedError{Kind: KindUnexpected, Message: MessageUnexpected, Cause: err}
	}

	msg, code := "", ""
	if resp.Body != nil {
		msg = strings.TrimSpace(resp.Body.Message)
		code = resp.Body.Code
	}

	switch {
	case resp.Status >= 500:
		if msg == "" {
			msg = MessageServer
		}
		return &ClassifiedError{Kind: KindServer, Message: msg, Status: resp.Status, Code: code, Cause: err}
	case resp.Status >= 400 && resp.Status < 499 && msg != "":
		return &ClassifiedError{Kind: KindRequest, Message: msg, Status: resp.Status, Code: code, Cause: err}
	default:
		return &ClassifiedError{Kind: KindUnexpected, Message: MessageUnexpected, Status: resp.Status, Code: code, Cause: err}
	}
}

func isTransportError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return true
	}
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}
