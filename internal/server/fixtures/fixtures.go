// Package fixtures loads the data set served by the mock portal API. The
// built-in set is embedded; a YAML file of the same shape can replace it.
package fixtures

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed default.yaml
var defaultFixtures []byte

type Plan struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	MonthlyFee  int     `yaml:"monthlyFee"`
	DataLimitGB float64 `yaml:"dataLimitGB"`
}

type Option struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	MonthlyFee  int    `yaml:"monthlyFee"`
}

type Notification struct {
	ID          string    `yaml:"id"`
	Title       string    `yaml:"title"`
	Body        string    `yaml:"body"`
	Category    string    `yaml:"category"`
	PublishedAt time.Time `yaml:"publishedAt"`
}

type Preferences struct {
	Email    bool `yaml:"email"`
	SMS      bool `yaml:"sms"`
	Push     bool `yaml:"push"`
	Campaign bool `yaml:"campaign"`
}

type DailyUsage struct {
	Date   string  `yaml:"date"`
	UsedMB float64 `yaml:"usedMB"`
}

type Usage struct {
	UsedGB      float64      `yaml:"usedGB"`
	PeriodStart string       `yaml:"periodStart"`
	PeriodEnd   string       `yaml:"periodEnd"`
	Daily       []DailyUsage `yaml:"daily"`
}

type BillingItem struct {
	Name   string `yaml:"name"`
	Amount int    `yaml:"amount"`
}

// Statement is one month's bill. Months are listed newest first.
type Statement struct {
	Month   string        `yaml:"month"`
	DueDate string        `yaml:"dueDate"`
	Status  string        `yaml:"status"`
	Items   []BillingItem `yaml:"items"`
}

// User is an account together with its portal data. Password is kept in
// plain text here and hashed when the user store is built.
type User struct {
	ID          string   `yaml:"id"`
	Email       string   `yaml:"email"`
	Password    string   `yaml:"password"`
	Name        string   `yaml:"name"`
	PhoneNumber string   `yaml:"phoneNumber"`
	Address     string   `yaml:"address"`
	Roles       []string `yaml:"roles"`
	MFAEnabled  bool     `yaml:"mfaEnabled"`
	// Locked accounts are refused with ACCOUNT_LOCKED.
	Locked bool `yaml:"locked"`
	// ServerError makes every login for this account fail with a 500.
	ServerError bool `yaml:"serverError"`

	ContractID        string      `yaml:"contractId"`
	PlanID            string      `yaml:"planId"`
	StartDate         string      `yaml:"startDate"`
	Options           []string    `yaml:"options"`
	ReadNotifications []string    `yaml:"readNotifications"`
	Preferences       Preferences `yaml:"preferences"`
	Usage             Usage       `yaml:"usage"`
	Billing           []Statement `yaml:"billing"`
}

type Fixtures struct {
	Plans         []Plan         `yaml:"plans"`
	Options       []Option       `yaml:"options"`
	Notifications []Notification `yaml:"notifications"`
	Users         []User         `yaml:"users"`
}

// Load reads fixtures from path, or the embedded set when path is empty.
func Load(path string) (*Fixtures, error) {
	data := defaultFixtures
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read fixtures: %w", err)
		}
		data = b
	}
	return Parse(data)
}

func Parse(data []byte) (*Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return nil, fmt.Errorf("parse fixtures: %w", err)
	}
	if err := fx.Validate(); err != nil {
		return nil, err
	}
	return &fx, nil
}

// Validate checks that ids and emails are unique and that every reference
// resolves.
func (fx *Fixtures) Validate() error {
	var errs []error

	plans := make(map[string]bool, len(fx.Plans))
	for _, p := range fx.Plans {
		if p.ID == "" || plans[p.ID] {
			errs = append(errs, fmt.Errorf("plan %q: empty or duplicate id", p.ID))
		}
		plans[p.ID] = true
	}

	options := make(map[string]bool, len(fx.Options))
	for _, o := range fx.Options {
		if o.ID == "" || options[o.ID] {
			errs = append(errs, fmt.Errorf("option %q: empty or duplicate id", o.ID))
		}
		options[o.ID] = true
	}

	notifications := make(map[string]bool, len(fx.Notifications))
	for _, n := range fx.Notifications {
		if n.ID == "" || notifications[n.ID] {
			errs = append(errs, fmt.Errorf("notification %q: empty or duplicate id", n.ID))
		}
		notifications[n.ID] = true
	}

	ids := make(map[string]bool, len(fx.Users))
	emails := make(map[string]bool, len(fx.Users))
	for _, u := range fx.Users {
		email := strings.ToLower(u.Email)
		switch {
		case u.ID == "" || ids[u.ID]:
			errs = append(errs, fmt.Errorf("user %q: empty or duplicate id", u.ID))
		case email == "" || emails[email]:
			errs = append(errs, fmt.Errorf("user %q: empty or duplicate email", u.ID))
		case u.Password == "":
			errs = append(errs, fmt.Errorf("user %q: empty password", u.ID))
		case !plans[u.PlanID]:
			errs = append(errs, fmt.Errorf("user %q: unknown plan %q", u.ID, u.PlanID))
		}
		ids[u.ID] = true
		emails[email] = true

		for _, id := range u.Options {
			if !options[id] {
				errs = append(errs, fmt.Errorf("user %q: unknown option %q", u.ID, id))
			}
		}
		for _, id := range u.ReadNotifications {
			if !notifications[id] {
				errs = append(errs, fmt.Errorf("user %q: unknown notification %q", u.ID, id))
			}
		}
	}

	return errors.Join(errs...)
}
