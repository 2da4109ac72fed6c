// Package services contains application services for the mypage client.
// This file defines the account pages service: every read and write behind
// the signed-in pages, gated on the session.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/mypage/internal/client/client"
	"github.com/dmitrijs2005/mypage/internal/client/models"
	"github.com/dmitrijs2005/mypage/internal/common"
	"github.com/dmitrijs2005/mypage/internal/logging"
	"golang.org/x/sync/errgroup"
)

// PortalService defines the account-page operations for the CLI.
//
// Contract:
//   - every call except Logout fails with common.ErrNotLoggedIn while the
//     session is signed out, without reaching the network;
//   - API failures are returned as *client.ClassifiedError;
//   - a 401/403 from the API signs the session out locally.
type PortalService interface {
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
	ChangePlan(ctx context.Context, planID string) (*models.Contract, error)

	// Overview loads the dashboard, data usage and notifications in parallel.
	Overview(ctx context.Context) (*models.Overview, error)
	// Logout clears the local session. Recent accounts are kept.
	Logout(ctx context.Context) error
}

// Session is the part of the session store the service needs.
type Session interface {
	State() models.Session
	Logout(ctx context.Context) error
}

type portalService struct {
	api     client.Client
	session Session
	log     logging.Logger
}

func NewPortalService(api client.Client, session Session, log logging.Logger) PortalService {
	return &portalService{api: api, session: session, log: log}
}

func (s *portalService) requireLogin() error {
	if !s.session.State().IsAuthenticated {
		return common.ErrNotLoggedIn
	}
	return nil
}

// handle signs the session out when the API rejected its token.
func (s *portalService) handle(ctx context.Context, err error) error {
	if errors.Is(err, client.ErrUnauthorized) {
		s.log.Warn(ctx, "token rejected, signing out locally", "error", err)
		if lerr := s.session.Logout(ctx); lerr != nil {
			s.log.Warn(ctx, "local sign-out not persisted", "error", lerr)
		}
	}
	return err
}

func call[T any](ctx context.Context, s *portalService, fn func(context.Context) (T, error)) (T, error) {
	var zero T
	if err := s.requireLogin(); err != nil {
		return zero, err
	}
	v, err := fn(ctx)
	if err != nil {
		return zero, s.handle(ctx, err)
	}
	return v, nil
}

func exec(ctx context.Context, s *portalService, fn func(context.Context) error) error {
	_, err := call(ctx, s, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, fn(ctx)
	})
	return err
}

func requireID(kind, id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", fmt.Errorf("%w: %sIDを指定してください", common.ErrorValidation, kind)
	}
	return id, nil
}

func (s *portalService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	return call(ctx, s, s.api.Dashboard)
}

func (s *portalService) Contract(ctx context.Context) (*models.Contract, error) {
	return call(ctx, s, s.api.Contract)
}

// Billing returns the statement for month (YYYY-MM); "" selects the latest.
func (s *portalService) Billing(ctx context.Context, month string) (*models.Billing, error) {
	month = strings.TrimSpace(month)
	if month != "" {
		if _, err := time.Parse("2006-01", month); err != nil {
			return nil, fmt.Errorf("%w: 請求月は YYYY-MM 形式で指定してください", common.ErrorValidation)
		}
	}
	return call(ctx, s, func(ctx context.Context) (*models.Billing, error) {
		return s.api.Billing(ctx, month)
	})
}

func (s *portalService) DataUsage(ctx context.Context) (*models.DataUsage, error) {
	return call(ctx, s, s.api.DataUsage)
}

func (s *portalService) Options(ctx context.Context) ([]models.Option, error) {
	return call(ctx, s, s.api.Options)
}

func (s *portalService) SubscribeOption(ctx context.Context, optionID string) error {
	id, err := requireID("オプション", optionID)
	if err != nil {
		return err
	}
	return exec(ctx, s, func(ctx context.Context) error { return s.api.SubscribeOption(ctx, id) })
}

func (s *portalService) UnsubscribeOption(ctx context.Context, optionID string) error {
	id, err := requireID("オプション", optionID)
	if err != nil {
		return err
	}
	return exec(ctx, s, func(ctx context.Context) error { return s.api.UnsubscribeOption(ctx, id) })
}

func (s *portalService) Notifications(ctx context.Context) ([]models.Notification, error) {
	return call(ctx, s, s.api.Notifications)
}

func (s *portalService) MarkNotificationRead(ctx context.Context, notificationID string) error {
	id, err := requireID("お知らせ", notificationID)
	if err != nil {
		return err
	}
	return exec(ctx, s, func(ctx context.Context) error { return s.api.MarkNotificationRead(ctx, id) })
}

func (s *portalService) UpdateProfile(ctx context.Context, req models.ProfileUpdate) (*models.Profile, error) {
	return call(ctx, s, func(ctx context.Context) (*models.Profile, error) {
		return s.api.UpdateProfile(ctx, req)
	})
}

func (s *portalService) ChangePassword(ctx context.Context, req models.PasswordChange) error {
	return exec(ctx, s, func(ctx context.Context) error { return s.api.ChangePassword(ctx, req) })
}

func (s *portalService) UpdateNotificationPreferences(ctx context.Context, prefs models.NotificationPreferences) (*models.NotificationPreferences, error) {
	return call(ctx, s, func(ctx context.Context) (*models.NotificationPreferences, error) {
		return s.api.UpdateNotificationPreferences(ctx, prefs)
	})
}

func (s *portalService) ChangePlan(ctx context.Context, planID string) (*models.Contract, error) {
	id, err := requireID("プラン", planID)
	if err != nil {
		return nil, err
	}
	return call(ctx, s, func(ctx context.Context) (*models.Contract, error) {
		return s.api.ChangePlan(ctx, models.PlanChange{PlanID: id})
	})
}

func (s *portalService) Overview(ctx context.Context) (*models.Overview, error) {
	if err := s.requireLogin(); err != nil {
		return nil, err
	}

	var out models.Overview
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		d, err := s.api.Dashboard(gctx)
		out.Dashboard = d
		return err
	})
	g.Go(func() error {
		u, err := s.api.DataUsage(gctx)
		out.DataUsage = u
		return err
	})
	g.Go(func() error {
		n, err := s.api.Notifications(gctx)
		out.Notifications = n
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, s.handle(ctx, err)
	}
	return &out, nil
}

func (s *portalService) Logout(ctx context.Context) error {
	return s.session.Logout(ctx)
}
