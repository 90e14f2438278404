package user

import (
	"context"
	"time"

	"github.com/iota-uz/authgate/pkg/composables"
)

type LoginStatus string

const (
	LoginSuccess LoginStatus = "success"
	LoginFailure LoginStatus = "failure"
	LoginSwitch  LoginStatus = "switch"
	LoginLogout  LoginStatus = "logout"
)

// LoginEvent records the outcome of a login, logout, or org switch attempt.
// Published fire-and-forget on the event bus for audit subscribers.
type LoginEvent struct {
	UserID     uint
	EmployeeID *uint
	Status     LoginStatus
	Message    string
	IP         string
	UserAgent  string
	CreatedAt  time.Time
}

func newLoginEvent(ctx context.Context, userID uint, employeeID *uint, status LoginStatus, message string) *LoginEvent {
	e := &LoginEvent{
		UserID:     userID,
		EmployeeID: employeeID,
		Status:     status,
		Message:    message,
		CreatedAt:  time.Now(),
	}
	if ip, ok := composables.UseIP(ctx); ok {
		e.IP = ip
	}
	if ua, ok := composables.UseUserAgent(ctx); ok {
		e.UserAgent = ua
	}
	return e
}

func NewLoginSucceededEvent(ctx context.Context, userID uint, employeeID *uint) *LoginEvent {
	return newLoginEvent(ctx, userID, employeeID, LoginSuccess, "")
}

func NewLoginFailedEvent(ctx context.Context, userID uint, message string) *LoginEvent {
	return newLoginEvent(ctx, userID, nil, LoginFailure, message)
}

func NewOrgSwitchedEvent(ctx context.Context, userID uint, employeeID *uint) *LoginEvent {
	return newLoginEvent(ctx, userID, employeeID, LoginSwitch, "")
}

func NewLogoutEvent(ctx context.Context, userID uint) *LoginEvent {
	return newLoginEvent(ctx, userID, nil, LoginLogout, "")
}
