// Package models holds the JSON bodies the mock API reads and writes.
package models

import "time"

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

// AuthUser is the user block of a successful login response.
type AuthUser struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	Name       string   `json:"name,omitempty"`
	Roles      []string `json:"roles"`
	MFAEnabled bool     `json:"mfaEnabled"`
}

type LoginResponse struct {
	AccessToken  string   `json:"accessToken"`
	RefreshToken string   `json:"refreshToken"`
	TokenType    string   `json:"tokenType"`
	ExpiresIn    int64    `json:"expiresIn"`
	User         AuthUser `json:"user"`
}

// MessageResponse is the body of write endpoints with no resource to return.
type MessageResponse struct {
	Message string `json:"message"`
}

type Dashboard struct {
	DisplayName         string    `json:"displayName"`
	PhoneNumber         string    `json:"phoneNumber"`
	PlanName            string    `json:"planName"`
	DataUsedGB          float64   `json:"dataUsedGB"`
	DataLimitGB         float64   `json:"dataLimitGB"`
	CurrentBillAmount   int       `json:"currentBillAmount"`
	BillingMonth        string    `json:"billingMonth"`
	UnreadNotifications int       `json:"unreadNotifications"`
	UpdatedAt           time.Time `json:"updatedAt"`
}

type Contract struct {
	ContractID  string   `json:"contractId"`
	PhoneNumber string   `json:"phoneNumber"`
	PlanID      string   `json:"planId"`
	PlanName    string   `json:"planName"`
	MonthlyFee  int      `json:"monthlyFee"`
	StartDate   string   `json:"startDate"`
	Status      string   `json:"status"`
	Options     []string `json:"options"`
}

type BillingItem struct {
	Name   string `json:"name"`
	Amount int    `json:"amount"`
}

type Billing struct {
	Month   string        `json:"month"`
	Total   int           `json:"total"`
	DueDate string        `json:"dueDate"`
	Status  string        `json:"status"`
	Items   []BillingItem `json:"items"`
}

type DailyUsage struct {
	Date   string  `json:"date"`
	UsedMB float64 `json:"usedMB"`
}

type DataUsage struct {
	UsedGB      float64      `json:"usedGB"`
	LimitGB     float64      `json:"limitGB"`
	PeriodStart string       `json:"periodStart"`
	PeriodEnd   string       `json:"periodEnd"`
	Daily       []DailyUsage `json:"daily"`
}

type Option struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MonthlyFee  int    `json:"monthlyFee"`
	Subscribed  bool   `json:"subscribed"`
}

type Notification struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Body        string    `json:"body"`
	Category    string    `json:"category"`
	PublishedAt time.Time `json:"publishedAt"`
	Read        bool      `json:"read"`
}

type Profile struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	PhoneNumber string `json:"phoneNumber"`
	Address     string `json:"address"`
}

type ProfileUpdate struct {
	Name        string `json:"name,omitempty"`
	PhoneNumber string `json:"phoneNumber,omitempty"`
	Address     string `json:"address,omitempty"`
}

type PasswordChange struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type NotificationPreferences struct {
	Email    bool `json:"email"`
	SMS      bool `json:"sms"`
	Push     bool `json:"push"`
	Campaign bool `json:"campaign"`
}

type PlanChange struct {
	PlanID string `json:"planId"`
}
