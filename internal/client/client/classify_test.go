package client

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	unreachable := &url.Error{
		Op:  "Post",
		URL: "http://unreachable.invalid/api/auth/login",
		Err: &net.OpError{Op: "dial", Net: "tcp", Err: errors.New("connection refused")},
	}

	tests := []struct {
		name     string
		err      error
		resp     *Response
		wantKind Kind
		wantMsg  string
	}{
		{name: "unreachable host", err: unreachable, wantKind: KindNetwork, wantMsg: MessageNetwork},
		{name: "deadline", err: fmt.Errorf("wrapped: %w", context.DeadlineExceeded), wantKind: KindNetwork, wantMsg: MessageNetwork},
		{name: "plain error without response", err: errors.New("weird"), wantKind: KindUnexpected, wantMsg: MessageUnexpected},
		{name: "nil error without response", wantKind: KindUnexpected, wantMsg: MessageUnexpected},
		{name: "500 unparsable body", resp: &Response{Status: 500}, wantKind: KindServer, wantMsg: MessageServer},
		{name: "503 blank message", resp: &Response{Status: 503, Body: &ErrorBody{Message: "   "}}, wantKind: KindServer, wantMsg: MessageServer},
		{name: "502 specific message", resp: &Response{Status: 502, Body: &ErrorBody{Message: "メンテナンス中です"}}, wantKind: KindServer, wantMsg: "メンテナンス中です"},
		{name: "401 locked", resp: &Response{Status: 401, Body: &ErrorBody{Message: "アカウントがロックされています"}}, wantKind: KindRequest, wantMsg: "アカウントがロックされています"},
		{name: "422 validation", resp: &Response{Status: 422, Body: &ErrorBody{Message: "入力内容に誤りがあります", Code: "VALIDATION"}}, wantKind: KindRequest, wantMsg: "入力内容に誤りがあります"},
		{name: "400 without message", resp: &Response{Status: 400, Body: &ErrorBody{}}, wantKind: KindUnexpected, wantMsg: MessageUnexpected},
		{name: "499 is outside the request range", resp: &Response{Status: 499, Body: &ErrorBody{Message: "closed"}}, wantKind: KindUnexpected, wantMsg: MessageUnexpected},
		{name: "redirect", resp: &Response{Status: 302}, wantKind: KindUnexpected, wantMsg: MessageUnexpected},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ce := Classify(tt.err, tt.resp)
			require.NotNil(t, ce)
			assert.Equal(t, tt.wantKind, ce.Kind)
			assert.Equal(t, tt.wantMsg, ce.Message)
			assert.Equal(t, tt.wantMsg, ce.Error())
		})
	}
}

func TestClassify_KeepsStatusAndCode(t *testing.T) {
	ce := Classify(nil, &Response{Status: 401, Body: &ErrorBody{Message: "x", Code: "ACCOUNT_LOCKED"}})
	assert.Equal(t, 401, ce.Status)
	assert.Equal(t, "ACCOUNT_LOCKED", ce.Code)
}

func TestClassifiedError_Sentinels(t *testing.T) {
	network := Classify(context.DeadlineExceeded, nil)
	require.ErrorIs(t, network, ErrUnavailable)
	require.NotErrorIs(t, network, ErrUnauthorized)
	require.ErrorIs(t, network, context.DeadlineExceeded)

	unauthorized := Classify(nil, &Response{Status: 401, Body: &ErrorBody{Message: "expired"}})
	require.ErrorIs(t, unauthorized, ErrUnauthorized)
	require.NotErrorIs(t, unauthorized, ErrUnavailable)

	forbidden := Classify(nil, &Response{Status: 403})
	require.ErrorIs(t, fmt.Errorf("page: %w", forbidden), ErrUnauthorized)
}

func TestAsClassified(t *testing.T) {
	require.Nil(t, AsClassified(nil))

	ce := Classify(nil, &Response{Status: 500})
	require.Same(t, ce, AsClassified(fmt.Errorf("wrap: %w", ce)))

	other := AsClassified(errors.New("raw"))
	assert.Equal(t, KindUnexpected, other.Kind)
	assert.Equal(t, MessageUnexpected, other.Message)
	assert.NotContains(t, other.Error(), "raw")
}

func TestIsKind(t *testing.T) {
	assert.True(t, IsKind(Classify(nil, &Response{Status: 500}), KindServer))
	assert.False(t, IsKind(errors.New("x"), KindServer))
}
