package employee

import (
	"time"
)

// Employee is a user's membership in the organizational directory, distinct
// from the authentication identity. LastDeptID/LastCompanyID cache the user's
// most recent organizational choice and are rewritten on login and switch.
type Employee interface {
	ID() uint
	UserID() uint
	Enabled() bool
	LastDeptID() *uint
	LastCompanyID() *uint
	SetLastOrg(deptID, companyID *uint)
	CreatedAt() time.Time
	UpdatedAt() time.Time
}

type Option func(e *employeeImpl)

func WithID(id uint) Option {
	return func(e *employeeImpl) {
		e.id = id
	}
}

func WithEnabled(enabled bool) Option {
	return func(e *employeeImpl) {
		e.enabled = enabled
	}
}

func WithLastDeptID(deptID *uint) Option {
	return func(e *employeeImpl) {
		e.lastDeptID = deptID
	}
}

func WithLastCompanyID(companyID *uint) Option {
	return func(e *employeeImpl) {
		e.lastCompanyID = companyID
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(e *employeeImpl) {
		e.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(e *employeeImpl) {
		e.updatedAt = updatedAt
	}
}

func New(userID uint, opts ...Option) Employee {
	e := &employeeImpl{
		userID:    userID,
		enabled:   true,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

type employeeImpl struct {
	id            uint
	userID        uint
	enabled       bool
	lastDeptID    *uint
	lastCompanyID *uint
	createdAt     time.Time
	updatedAt     time.Time
}

func (e *employeeImpl) ID() uint {
	return e.id
}

func (e *employeeImpl) UserID() uint {
	return e.userID
}

func (e *employeeImpl) Enabled() bool {
	return e.enabled
}

func (e *employeeImpl) LastDeptID() *uint {
	return e.lastDeptID
}

func (e *employeeImpl) LastCompanyID() *uint {
	return e.lastCompanyID
}

func (e *employeeImpl) SetLastOrg(deptID, companyID *uint) {
	e.lastDeptID = deptID
	e.lastCompanyID = companyID
	e.updatedAt = time.Now()
}

func (e *employeeImpl) CreatedAt() time.Time {
	return e.createdAt
}

func (e *employeeImpl) UpdatedAt() time.Time {
	return e.updatedAt
}
