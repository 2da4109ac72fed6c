package login

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/dmitrijs2005/mypage/internal/client/client"
	"github.com/dmitrijs2005/mypage/internal/client/models"
	"github.com/dmitrijs2005/mypage/internal/client/repositories"
	"github.com/dmitrijs2005/mypage/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/mypage/internal/client/store"
	"github.com/dmitrijs2005/mypage/internal/common"
	"github.com/dmitrijs2005/mypage/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestFlow_EndToEnd wires the controller to the real HTTP client, the
// SQLite-backed stores and a fake backend.
func TestFlow_EndToEnd(t *testing.T) {
	ctx := context.Background()

	var got models.LoginRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/auth/login", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(models.LoginResponse{
			AccessToken:  "access",
			RefreshToken: "refresh",
			TokenType:    "Bearer",
			ExpiresIn:    3600,
			User:         models.AuthUser{ID: "user-001", Email: "test@docomo.ne.jp", Roles: []string{"user"}},
		})
	}))
	t.Cleanup(srv.Close)

	db, err := repositories.InitDatabase(ctx, filepath.Join(t.TempDir(), "mypage.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	repo := metadata.NewSQLiteRepository(db)

	session := store.NewSessionStore(ctx, repo, logging.Nop())
	ledger := store.NewRecentAccounts(ctx, repo, store.RecentAccountsOptions{}, logging.Nop())

	api, err := client.NewHTTPClient(srv.URL, client.WithTokenSource(session.AccessToken))
	require.NoError(t, err)

	var destinations []string
	c := NewController(api, session, ledger, NavigatorFunc(func(d string) {
		destinations = append(destinations, d)
	}), logging.Nop())

	c.SetEmail("test@docomo.ne.jp")
	c.SetPassword("password123")
	c.SetRememberMe(false)
	require.NoError(t, c.Submit(ctx))

	assert.Equal(t, models.LoginRequest{Email: "test@docomo.ne.jp", Password: "password123"}, got)

	st := session.State()
	require.True(t, st.IsAuthenticated)
	assert.Equal(t, "user-001", st.User.ID)
	assert.Equal(t, "test", st.User.DisplayName)
	assert.Equal(t, "Bearer access", session.AccessToken())

	accounts := ledger.List()
	require.NotEmpty(t, accounts)
	assert.Equal(t, "test@docomo.ne.jp", accounts[0].Email)

	assert.Equal(t, []string{common.HomeDestination}, destinations)

	rehydrated := store.NewSessionStore(ctx, repo, logging.Nop()).State()
	assert.True(t, rehydrated.IsAuthenticated)
	assert.Equal(t, "test@docomo.ne.jp", rehydrated.User.Email)
}

func TestFlow_NetworkFailureKeepsFormUsable(t *testing.T) {
	ctx := context.Background()

	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	api, err := client.NewHTTPClient(base)
	require.NoError(t, err)

	session := store.NewSessionStore(ctx, emptyRepo{}, logging.Nop())
	ledger := store.NewRecentAccounts(ctx, emptyRepo{}, store.RecentAccountsOptions{}, logging.Nop())
	c := NewController(api, session, ledger, NavigatorFunc(func(string) {
		t.Fatal("navigation after a failed login")
	}), logging.Nop())

	c.SetEmail("test@docomo.ne.jp")
	c.SetPassword("password123")

	err = c.Submit(ctx)
	require.True(t, client.IsKind(err, client.KindNetwork))

	v := c.View()
	assert.Equal(t, client.MessageNetwork, v.Alert)
	assert.True(t, v.CanSubmit)
	assert.False(t, session.State().IsAuthenticated)
	assert.Empty(t, ledger.List())
}

// emptyRepo is an always-empty repository.
type emptyRepo struct{}

func (emptyRepo) Get(context.Context, string) ([]byte, error) { return nil, nil }
func (emptyRepo) Set(context.Context, string, []byte) error   { return nil }
func (emptyRepo) Delete(context.Context, ...string) error     { return nil }
