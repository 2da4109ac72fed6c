package client

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/mypage/internal/client/models"
	"github.com/dmitrijs2005/mypage/internal/common"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	method  string
	path    string
	query   string
	header  http.Header
	body    []byte
	hasBody bool
}

// newTestServer replies with status and body to every request and records
// the last one.
func newTestServer(t *testing.T, status int, body string) (*httptest.Server, *capturedRequest) {
	t.Helper()
	got := &capturedRequest{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		*got = capturedRequest{
			method:  r.Method,
			path:    r.URL.EscapedPath(),
			query:   r.URL.RawQuery,
			header:  r.Header.Clone(),
			body:    b,
			hasBody: len(b) > 0,
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func newTestClient(t *testing.T, baseURL string, opts ...Option) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(baseURL, opts...)
	require.NoError(t, err)
	return c
}

func TestNewHTTPClient_RejectsRelativeURL(t *testing.T) {
	_, err := NewHTTPClient("/api")
	require.Error(t, err)
}

func TestLogin_Success(t *testing.T) {
	srv, got := newTestServer(t, http.StatusOK, `{
		"accessToken":"at","refreshToken":"rt","tokenType":"Bearer","expiresIn":3600,
		"user":{"id":"u-1","email":"test@docomo.ne.jp","roles":["user"],"mfaEnabled":false}}`)
	c := newTestClient(t, srv.URL)

	resp, err := c.Login(context.Background(), models.LoginRequest{Email: "test@docomo.ne.jp", Password: "password123"})
	require.NoError(t, err)

	assert.Equal(t, "at", resp.AccessToken)
	assert.Equal(t, "u-1", resp.User.ID)
	assert.Equal(t, []string{"user"}, resp.User.Roles)

	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/auth/login", got.path)
	assert.Equal(t, common.JSONContentType, got.header.Get(common.ContentTypeHeaderName))
	_, err = uuid.Parse(got.header.Get(common.RequestIDHeaderName))
	assert.NoError(t, err)
	assert.Empty(t, got.header.Get(common.AuthorizationHeaderName))

	var sent map[string]any
	require.NoError(t, json.Unmarshal(got.body, &sent))
	assert.Equal(t, map[string]any{"email": "test@docomo.ne.jp", "password": "password123", "rememberMe": false}, sent)
}

func TestLogin_LockedAccountSurfacesServerMessage(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusUnauthorized, `{"message":"アカウントがロックされています","code":"ACCOUNT_LOCKED"}`)
	c := newTestClient(t, srv.URL)

	resp, err := c.Login(context.Background(), models.LoginRequest{Email: "locked@docomo.ne.jp", Password: "x"})
	require.Nil(t, resp)

	ce := AsClassified(err)
	assert.Equal(t, KindRequest, ce.Kind)
	assert.Equal(t, "アカウントがロックされています", ce.Message)
	assert.Equal(t, http.StatusUnauthorized, ce.Status)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDo_ServerErrorWithUnparsableBody(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusInternalServerError, `<html>oops</html>`)
	c := newTestClient(t, srv.URL)

	_, err := c.Dashboard(context.Background())
	ce := AsClassified(err)
	assert.Equal(t, KindServer, ce.Kind)
	assert.Equal(t, MessageServer, ce.Message)
}

func TestDo_UnreachableHost(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c := newTestClient(t, url)
	_, err := c.Login(context.Background(), models.LoginRequest{Email: "a@x.com", Password: "p"})

	assert.True(t, IsKind(err, KindNetwork))
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Equal(t, MessageNetwork, err.Error())
}

func TestDo_TransportTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-release
	}))
	t.Cleanup(srv.Close)
	t.Cleanup(func() { close(release) })

	c := newTestClient(t, srv.URL, WithHTTPClient(&http.Client{Timeout: 50 * time.Millisecond}))
	_, err := c.Contract(context.Background())
	assert.True(t, IsKind(err, KindNetwork))
}

func TestDo_MalformedSuccessBody(t *testing.T) {
	srv, _ := newTestServer(t, http.StatusOK, `{"contractId":`)
	c := newTestClient(t, srv.URL)

	_, err := c.Contract(context.Background())
	assert.True(t, IsKind(err, KindUnexpected))
}

func TestDo_GetHasNoContentTypeAndForwardsToken(t *testing.T) {
	srv, got := newTestServer(t, http.StatusOK, `{"month":"2026-09","total":4980}`)
	c := newTestClient(t, srv.URL, WithTokenSource(func() string { return "Bearer at" }))

	b, err := c.Billing(context.Background(), "2026-09")
	require.NoError(t, err)
	assert.Equal(t, 4980, b.Total)

	assert.Equal(t, http.MethodGet, got.method)
	assert.Equal(t, "/api/mypage/billing", got.path)
	assert.Equal(t, "month=2026-09", got.query)
	assert.False(t, got.hasBody)
	assert.Empty(t, got.header.Get(common.ContentTypeHeaderName))
	assert.Equal(t, common.JSONContentType, got.header.Get(common.AcceptHeaderName))
	assert.Equal(t, "Bearer at", got.header.Get(common.AuthorizationHeaderName))
}

func TestDo_NoContentWrite(t *testing.T) {
	srv, got := newTestServer(t, http.StatusNoContent, "")
	c := newTestClient(t, srv.URL)

	require.NoError(t, c.SubscribeOption(context.Background(), "opt/1"))
	assert.Equal(t, http.MethodPost, got.method)
	assert.Equal(t, "/api/mypage/options/opt%2F1/subscribe", got.path)
}

func TestDo_EscapesIDSegmentsOnce(t *testing.T) {
	tests := []struct {
		name     string
		call     func(c *HTTPClient) error
		wantPath string
		wantID   string
	}{
		{"space", func(c *HTTPClient) error { return c.MarkNotificationRead(context.Background(), "n 1") },
			"/api/mypage/notifications/n%201/read", "n 1"},
		{"japanese", func(c *HTTPClient) error { return c.SubscribeOption(context.Background(), "かけ放題") },
			"/api/mypage/options/%E3%81%8B%E3%81%91%E6%94%BE%E9%A1%8C/subscribe", "かけ放題"},
		{"percent", func(c *HTTPClient) error { return c.UnsubscribeOption(context.Background(), "50%off") },
			"/api/mypage/options/50%25off/unsubscribe", "50%off"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, got := newTestServer(t, http.StatusNoContent, "")
			c := newTestClient(t, srv.URL)

			require.NoError(t, tt.call(c))
			assert.Equal(t, tt.wantPath, got.path)

			segments := strings.Split(got.path, "/")
			id, err := url.PathUnescape(segments[4])
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, id)
		})
	}
}

func TestEndpoint_KeepsBasePath(t *testing.T) {
	c := newTestClient(t, "http://example.test/portal%20v2/")

	got, err := c.endpoint("/api/mypage/options/a%2Fb/subscribe", url.Values{"x": []string{"1"}})
	require.NoError(t, err)
	assert.Equal(t, "http://example.test/portal%20v2/api/mypage/options/a%2Fb/subscribe?x=1", got)

	_, err = c.endpoint("/bad%zz", nil)
	assert.Error(t, err)
}

func TestEndpoints_MethodsAndPaths(t *testing.T) {
	tests := []struct {
		name       string
		call       func(c *HTTPClient) error
		wantMethod string
		wantPath   string
		wantBody   bool
	}{
		{"contract", func(c *HTTPClient) error { _, err := c.Contract(context.Background()); return err }, http.MethodGet, "/api/mypage/contract", false},
		{"data usage", func(c *HTTPClient) error { _, err := c.DataUsage(context.Background()); return err }, http.MethodGet, "/api/mypage/data-usage", false},
		{"options", func(c *HTTPClient) error { _, err := c.Options(context.Background()); return err }, http.MethodGet, "/api/mypage/options", false},
		{"unsubscribe", func(c *HTTPClient) error { return c.UnsubscribeOption(context.Background(), "o1") }, http.MethodPost, "/api/mypage/options/o1/unsubscribe", false},
		{"notifications", func(c *HTTPClient) error { _, err := c.Notifications(context.Background()); return err }, http.MethodGet, "/api/mypage/notifications", false},
		{"mark read", func(c *HTTPClient) error { return c.MarkNotificationRead(context.Background(), "n1") }, http.MethodPost, "/api/mypage/notifications/n1/read", false},
		{"profile", func(c *HTTPClient) error {
			_, err := c.UpdateProfile(context.Background(), models.ProfileUpdate{Name: "n"})
			return err
		}, http.MethodPut, "/api/mypage/profile", true},
		{"password", func(c *HTTPClient) error {
			return c.ChangePassword(context.Background(), models.PasswordChange{CurrentPassword: "a", NewPassword: "b"})
		}, http.MethodPut, "/api/mypage/password", true},
		{"preferences", func(c *HTTPClient) error {
			_, err := c.UpdateNotificationPreferences(context.Background(), models.NotificationPreferences{Email: true})
			return err
		}, http.MethodPut, "/api/mypage/notification-preferences", true},
		{"plan", func(c *HTTPClient) error {
			_, err := c.ChangePlan(context.Background(), models.PlanChange{PlanID: "p1"})
			return err
		}, http.MethodPost, "/api/mypage/plan", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := `{}`
			if tt.name == "options" || tt.name == "notifications" {
				body = `[]`
			}
			srv, got := newTestServer(t, http.StatusOK, body)
			c := newTestClient(t, srv.URL)

			require.NoError(t, tt.call(c))
			assert.Equal(t, tt.wantMethod, got.method)
			assert.Equal(t, tt.wantPath, got.path)
			assert.Equal(t, tt.wantBody, got.hasBody)
			if tt.wantBody {
				assert.Equal(t, common.JSONContentType, got.header.Get(common.ContentTypeHeaderName))
			}
		})
	}
}
