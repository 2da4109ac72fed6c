// Package mypage holds the per-user portal state served by the mock API:
// contract, plan, options, notifications, billing, data usage, profile
// and notification preferences. State lives in memory and starts from the
// fixtures.
package mypage

import (
	"context"
	"errors"
	"regexp"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/mypage/internal/server/fixtures"
	"github.com/dmitrijs2005/mypage/internal/server/models"
)

var (
	ErrUnknownUser          = errors.New("unknown user")
	ErrOptionNotFound       = errors.New("option not found")
	ErrAlreadySubscribed    = errors.New("option already subscribed")
	ErrNotSubscribed        = errors.New("option not subscribed")
	ErrNotificationNotFound = errors.New("notification not found")
	ErrPlanNotFound         = errors.New("plan not found")
	ErrSamePlan             = errors.New("plan unchanged")
	ErrBillingNotFound      = errors.New("no statement for month")
	ErrInvalidMonth         = errors.New("month must be YYYY-MM")
	ErrEmptyProfileUpdate   = errors.New("nothing to update")
)

var monthPattern = regexp.MustCompile(`^\d{4}-(0[1-9]|1[0-2])$`)

type account struct {
	fixtures.User
	options map[string]bool
	read    map[string]bool
}

type Service struct {
	mu            sync.RWMutex
	plans         map[string]fixtures.Plan
	options       []fixtures.Option
	notifications []fixtures.Notification
	accounts      map[string]*account
	now           func() time.Time
}

func NewService(fx *fixtures.Fixtures) *Service {
	s := &Service{
		plans:         make(map[string]fixtures.Plan, len(fx.Plans)),
		options:       slices.Clone(fx.Options),
		notifications: slices.Clone(fx.Notifications),
		accounts:      make(map[string]*account, len(fx.Users)),
		now:           time.Now,
	}
	for _, p := range fx.Plans {
		s.plans[p.ID] = p
	}
	slices.SortStableFunc(s.notifications, func(a, b fixtures.Notification) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})

	for _, u := range fx.Users {
		a := &account{User: u, options: map[string]bool{}, read: map[string]bool{}}
		for _, id := range u.Options {
			a.options[id] = true
		}
		for _, id := range u.ReadNotifications {
			a.read[id] = true
		}
		s.accounts[u.ID] = a
	}
	return s
}

// lookup must be called with s.mu held.
func (s *Service) lookup(userID string) (*account, error) {
	a, ok := s.accounts[userID]
	if !ok {
		return nil, ErrUnknownUser
	}
	return a, nil
}

func (s *Service) Dashboard(ctx context.Context, userID string) (*models.Dashboard, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}

	plan := s.plans[a.PlanID]
	d := &models.Dashboard{
		DisplayName:         a.Name,
		PhoneNumber:         a.PhoneNumber,
		PlanName:            plan.Name,
		DataUsedGB:          a.Usage.UsedGB,
		DataLimitGB:         plan.DataLimitGB,
		UnreadNotifications: s.unread(a),
		UpdatedAt:           s.now(),
	}
	if len(a.Billing) > 0 {
		d.BillingMonth = a.Billing[0].Month
		d.CurrentBillAmount = total(a.Billing[0].Items)
	}
	return d, nil
}

func (s *Service) Contract(ctx context.Context, userID string) (*models.Contract, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	return s.contract(a), nil
}

func (s *Service) contract(a *account) *models.Contract {
	plan := s.plans[a.PlanID]
	c := &models.Contract{
		ContractID:  a.ContractID,
		PhoneNumber: a.PhoneNumber,
		PlanID:      plan.ID,
		PlanName:    plan.Name,
		MonthlyFee:  plan.MonthlyFee,
		StartDate:   a.StartDate,
		Status:      "active",
		Options:     []string{},
	}
	for _, o := range s.options {
		if a.options[o.ID] {
			c.Options = append(c.Options, o.Name)
		}
	}
	return c
}

// Billing returns the statement for month, or the newest one when month
// is empty.
func (s *Service) Billing(ctx context.Context, userID, month string) (*models.Billing, error) {
	if month != "" && !monthPattern.MatchString(month) {
		return nil, ErrInvalidMonth
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	a, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}

	for _, st := range a.Billing {
		if month != "" && st.Month != month {
			continue
		}
		b := &models.Billing{
			Month:   st.Month,
			Total:   total(st.Items),
			DueDate: st.DueDate,
			Status:  st.Status,
			Items:   make([]models.BillingItem, 0, len(st.Items)),
		}
		for _, it := range st.Items {
			b.Items = append(b.Items, models.BillingItem{Name: it.Name, Amount: it.Amount})
		}
		return b, nil
	}
	return nil, ErrBillingNotFound
}

func (s *Service) DataUsage(ctx context.Context, userID string) (*models.DataUsage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}

	u := &models.DataUsage{
		UsedGB:      a.Usage.UsedGB,
		LimitGB:     s.plans[a.PlanID].DataLimitGB,
		PeriodStart: a.Usage.PeriodStart,
		PeriodEnd:   a.Usage.PeriodEnd,
		Daily:       make([]models.DailyUsage, 0, len(a.Usage.Daily)),
	}
	for _, d := range a.Usage.Daily {
		u.Daily = append(u.Daily, models.DailyUsage{Date: d.Date, UsedMB: d.UsedMB})
	}
	return u, nil
}

func (s *Service) Options(ctx context.Context, userID string) ([]models.Option, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.Option, 0, len(s.options))
	for _, o := range s.options {
		out = append(out, models.Option{
			ID:          o.ID,
			Name:        o.Name,
			Description: o.Description,
			MonthlyFee:  o.MonthlyFee,
			Subscribed:  a.options[o.ID],
		})
	}
	return out, nil
}

func (s *Service) SubscribeOption(ctx context.Context, userID, optionID string) error {
	return s.setOption(userID, optionID, true)
}

func (s *Service) UnsubscribeOption(ctx context.Context, userID, optionID string) error {
	return s.setOption(userID, optionID, false)
}

func (s *Service) setOption(userID, optionID string, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.lookup(userID)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(s.options, func(o fixtures.Option) bool { return o.ID == optionID }) {
		return ErrOptionNotFound
	}

	switch {
	case on && a.options[optionID]:
		return ErrAlreadySubscribed
	case !on && !a.options[optionID]:
		return ErrNotSubscribed
	}

	if on {
		a.options[optionID] = true
	} else {
		delete(a.options, optionID)
	}
	return nil
}

// Notifications lists every notification, newest first, with the user's
// read flag.
func (s *Service) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}

	out := make([]models.Notification, 0, len(s.notifications))
	for _, n := range s.notifications {
		out = append(out, models.Notification{
			ID:          n.ID,
			Title:       n.Title,
			Body:        n.Body,
			Category:    n.Category,
			PublishedAt: n.PublishedAt,
			Read:        a.read[n.ID],
		})
	}
	return out, nil
}

// MarkNotificationRead is idempotent.
func (s *Service) MarkNotificationRead(ctx context.Context, userID, notificationID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.lookup(userID)
	if err != nil {
		return err
	}
	if !slices.ContainsFunc(s.notifications, func(n fixtures.Notification) bool { return n.ID == notificationID }) {
		return ErrNotificationNotFound
	}
	a.read[notificationID] = true
	return nil
}

func (s *Service) unread(a *account) int {
	n := 0
	for _, x := range s.notifications {
		if !a.read[x.ID] {
			n++
		}
	}
	return n
}

// UpdateProfile applies the non-empty fields of req.
func (s *Service) UpdateProfile(ctx context.Context, userID string, req models.ProfileUpdate) (*models.Profile, error) {
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.PhoneNumber)
	address := strings.TrimSpace(req.Address)
	if name == "" && phone == "" && address == "" {
		return nil, ErrEmptyProfileUpdate
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	if name != "" {
		a.Name = name
	}
	if phone != "" {
		a.PhoneNumber = phone
	}
	if address != "" {
		a.Address = address
	}

	return &models.Profile{
		Name:        a.Name,
		Email:       a.Email,
		PhoneNumber: a.PhoneNumber,
		Address:     a.Address,
	}, nil
}

func (s *Service) UpdateNotificationPreferences(ctx context.Context, userID string, prefs models.NotificationPreferences) (*models.NotificationPreferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	a.Preferences = fixtures.Preferences{
		Email:    prefs.Email,
		SMS:      prefs.SMS,
		Push:     prefs.Push,
		Campaign: prefs.Campaign,
	}
	out := prefs
	return &out, nil
}

func (s *Service) ChangePlan(ctx context.Context, userID, planID string) (*models.Contract, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, err := s.lookup(userID)
	if err != nil {
		return nil, err
	}
	if _, ok := s.plans[planID]; !ok {
		return nil, ErrPlanNotFound
	}
	if a.PlanID == planID {
		return nil, ErrSamePlan
	}
	a.PlanID = planID
	return s.contract(a), nil
}

func total(items []fixtures.BillingItem) int {
	sum := 0
	for _, it := range items {
		sum += it.Amount
	}
	return sum
}
