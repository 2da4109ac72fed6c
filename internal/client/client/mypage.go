package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/dmitrijs2005/mypage/internal/client/models"
)

const mypagePrefix = "/api/mypage"

func (c *HTTPClient) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	var out models.Dashboard
	if err := c.do(ctx, http.MethodGet, mypagePrefix+"/dashboard", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Contract(ctx context.Context) (*models.Contract, error) {
	var out models.Contract
	if err := c.do(ctx, http.MethodGet, mypagePrefix+"/contract", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Billing returns the statement for month (YYYY-MM); an empty month means
// the current one.
func (c *HTTPClient) Billing(ctx context.Context, month string) (*models.Billing, error) {
	var q url.Values
	if month != "" {
		q = url.Values{"month": []string{month}}
	}
	var out models.Billing
	if err := c.do(ctx, http.MethodGet, mypagePrefix+"/billing", q, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) DataUsage(ctx context.Context) (*models.DataUsage, error) {
	var out models.DataUsage
	if err := c.do(ctx, http.MethodGet, mypagePrefix+"/data-usage", nil, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Options(ctx context.Context) ([]models.Option, error) {
	var out []models.Option
	if err := c.do(ctx, http.MethodGet, mypagePrefix+"/options", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) SubscribeOption(ctx context.Context, optionID string) error {
	return c.do(ctx, http.MethodPost, mypagePrefix+"/options/"+url.PathEscape(optionID)+"/subscribe", nil, nil, nil)
}

func (c *HTTPClient) UnsubscribeOption(ctx context.Context, optionID string) error {
	return c.do(ctx, http.MethodPost, mypagePrefix+"/options/"+url.PathEscape(optionID)+"/unsubscribe", nil, nil, nil)
}

func (c *HTTPClient) Notifications(ctx context.Context) ([]models.Notification, error) {
	var out []models.Notification
	if err := c.do(ctx, http.MethodGet, mypagePrefix+"/notifications", nil, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) MarkNotificationRead(ctx context.Context, notificationID string) error {
	return c.do(ctx, http.MethodPost, mypagePrefix+"/notifications/"+url.PathEscape(notificationID)+"/read", nil, nil, nil)
}

func (c *HTTPClient) UpdateProfile(ctx context.Context, req models.ProfileUpdate) (*models.Profile, error) {
	var out models.Profile
	if err := c.do(ctx, http.MethodPut, mypagePrefix+"/profile", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ChangePassword(ctx context.Context, req models.PasswordChange) error {
	return c.do(ctx, http.MethodPut, mypagePrefix+"/password", nil, req, nil)
}

func (c *HTTPClient) UpdateNotificationPreferences(ctx context.Context, prefs models.NotificationPreferences) (*models.NotificationPreferences, error) {
	var out models.NotificationPreferences
	if err := c.do(ctx, http.MethodPut, mypagePrefix+"/notification-preferences", nil, prefs, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) ChangePlan(ctx context.Context, req models.PlanChange) (*models.Contract, error) {
	var out models.Contract
	if err := c.do(ctx, http.MethodPost, mypagePrefix+"/plan", nil, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
