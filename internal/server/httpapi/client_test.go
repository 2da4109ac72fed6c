package httpapi_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/dmitrijs2005/mypage/internal/client/client"
	"github.com/dmitrijs2005/mypage/internal/client/models"
	"github.com/dmitrijs2005/mypage/internal/logging"
	"github.com/dmitrijs2005/mypage/internal/server/config"
	"github.com/dmitrijs2005/mypage/internal/server/fixtures"
	"github.com/dmitrijs2005/mypage/internal/server/httpapi"
	"github.com/dmitrijs2005/mypage/internal/server/mypage"
	"github.com/dmitrijs2005/mypage/internal/server/users"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// The real call wrapper against the real router: the error kinds and
// messages the client shows are the ones this server produces.
func TestClientAgainstServer(t *testing.T) {
	fx, err := fixtures.Load("")
	require.NoError(t, err)
	repo, err := users.NewMemoryRepository(fx.Users, bcrypt.MinCost)
	require.NoError(t, err)
	us, err := users.NewService(repo, &config.Config{SecretKey: "k", TokenTTL: time.Hour}, bcrypt.MinCost)
	require.NoError(t, err)

	srv := httptest.NewServer(httpapi.NewRouter(httpapi.NewHandler(us, mypage.NewService(fx), logging.Nop())))
	t.Cleanup(srv.Close)

	var token string
	c, err := client.NewHTTPClient(srv.URL, client.WithTokenSource(func() string {
		if token == "" {
			return ""
		}
		return "Bearer " + token
	}))
	require.NoError(t, err)

	ctx := context.Background()

	_, err = c.Login(ctx, models.LoginRequest{Email: "test@docomo.ne.jp", Password: "wrong"})
	ce := client.AsClassified(err)
	require.NotNil(t, ce)
	assert.Equal(t, client.KindRequest, ce.Kind)
	assert.Equal(t, "メールアドレスまたはパスワードが正しくありません", ce.Message)
	assert.Equal(t, "INVALID_CREDENTIALS", ce.Code)

	_, err = c.Login(ctx, models.LoginRequest{Email: "locked@docomo.ne.jp", Password: "password123"})
	ce = client.AsClassified(err)
	require.NotNil(t, ce)
	assert.Equal(t, client.KindRequest, ce.Kind)
	assert.Equal(t, "アカウントがロックされています", ce.Message)

	_, err = c.Login(ctx, models.LoginRequest{Email: "error@docomo.ne.jp", Password: "password123"})
	assert.True(t, client.IsKind(err, client.KindServer))

	_, err = c.Dashboard(ctx)
	assert.ErrorIs(t, err, client.ErrUnauthorized)

	resp, err := c.Login(ctx, models.LoginRequest{Email: "demo@docomo.ne.jp", Password: "demo1234"})
	require.NoError(t, err)
	assert.Equal(t, "u-0002", resp.User.ID)
	token = resp.AccessToken

	d, err := c.Dashboard(ctx)
	require.NoError(t, err)
	assert.Equal(t, "佐藤 花子", d.DisplayName)

	require.NoError(t, c.SubscribeOption(ctx, "dtv"))
	err = c.SubscribeOption(ctx, "dtv")
	assert.True(t, client.IsKind(err, client.KindRequest))
	assert.Equal(t, "すでにご契約中のオプションです", err.Error())

	contract, err := c.ChangePlan(ctx, models.PlanChange{PlanID: "eximo"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Lemino プレミアム"}, contract.Options)
}
