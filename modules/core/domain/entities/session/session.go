package session

import (
	"context"
	"strconv"
	"time"
)

// Attribute keys bound to a session. Centralized so the binder and its
// consumers agree on names.
const (
	KeyEmployeeID   = "employeeId"
	KeyDeptID       = "deptId"
	KeyCompanyID    = "companyId"
	KeyTopCompanyID = "topCompanyId"
)

// Context is the organizational tuple resolved at login or switch time. Nil
// fields mean "no binding" and are omitted from session attributes entirely.
type Context struct {
	EmployeeID   *uint
	DeptID       *uint
	CompanyID    *uint
	TopCompanyID *uint
}

// Attrs renders the non-nil fields as session attributes.
func (c Context) Attrs() map[string]string {
	attrs := make(map[string]string, 4)
	put := func(key string, v *uint) {
		if v != nil {
			attrs[key] = strconv.FormatUint(uint64(*v), 10)
		}
	}
	put(KeyEmployeeID, c.EmployeeID)
	put(KeyDeptID, c.DeptID)
	put(KeyCompanyID, c.CompanyID)
	put(KeyTopCompanyID, c.TopCompanyID)
	return attrs
}

// Token is the descriptor returned to callers: the opaque value and the
// remaining time-to-live as reported by the store.
type Token struct {
	Value     string
	ExpiresIn time.Duration
}

// Session is a store record: a token bound to a user within a client
// category, carrying the resolved context as attributes.
type Session struct {
	Token     string
	UserID    uint
	Category  string
	Attrs     map[string]string
	ExpiresIn time.Duration
}

// Attr returns a numeric attribute, or nil when absent.
func (s *Session) Attr(key string) *uint {
	raw, ok := s.Attrs[key]
	if !ok {
		return nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil
	}
	id := uint(v)
	return &id
}

// Store is the external session mechanism. Token generation, expiry, and
// attribute persistence are its policy; the binder passes values through
// opaquely.
type Store interface {
	Start(ctx context.Context, userID uint, category string) (*Token, error)
	SetAttr(ctx context.Context, token, key, value string) error
	Get(ctx context.Context, token string) (*Session, error)
	Destroy(ctx context.Context, token string) error
}
