package client

import (
	"context"

	"github.com/dmitrijs2005/mypage/internal/client/models"
)

// Client is the mypage API as seen by the rest of the client. Every error
// it returns is a *ClassifiedError.
type Client interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.LoginResponse, error)

	Dashboard(ctx context.Context) (*models.Dashboard, error)
	Contract(ctx context.Context) (*models.Contract, error)
	Billing(ctx context.Context, month string) (*models.Billing, error)
	DataUsage(ctx context.Context) (*models.DataUsage, error)

	Options(ctx context.Context) ([]models.Option, error)
	SubscribeOption(ctx context.Context, optionID string) error
	UnsubscribeOption(ctx context.Context, optionID string) error

	Notifications(ctx context.Context) ([]models.Notification, error)
	MarkNotificationRead(ctx context.Context, notificationID string) error

	UpdateProfile(ctx context.Context, req models.ProfileUpdate) (*models.Profile, error)
	ChangePassword(ctx context.Context, req models.PasswordChange) error
	UpdateNotificationPreferences(ctx context.Context, prefs models.NotificationPreferences) (*models.NotificationPreferences, error)
	ChangePlan(ctx context.Context, req models.PlanChange) (*models.Contract, error)
}
