package client

import (
	"context"
	"net/http"

	"github.com/dmitrijs2005/mypage/internal/client/models"
)

const loginPath = "/api/auth/login"

// Login posts the credentials. A 401 carries the server's message, which
// is the only thing that distinguishes bad credentials from a locked
// account.
func (c *HTTPClient) Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error) {
	var resp models.LoginResponse
	if err := c.do(ctx, http.MethodPost, loginPath, nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
