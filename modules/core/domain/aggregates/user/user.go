package user

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is the authentication identity. It is owned by the identity subsystem;
// the gateway only reads it and checks its state.
type User interface {
	ID() uint
	Username() string
	Phone() string
	Enabled() bool
	CheckPassword(password string) bool
	CreatedAt() time.Time
	UpdatedAt() time.Time
}

type Option func(u *userImpl)

func WithID(id uint) Option {
	return func(u *userImpl) {
		u.id = id
	}
}

func WithPhone(phone string) Option {
	return func(u *userImpl) {
		u.phone = phone
	}
}

func WithPasswordHash(hash string) Option {
	return func(u *userImpl) {
		u.passwordHash = hash
	}
}

func WithEnabled(enabled bool) Option {
	return func(u *userImpl) {
		u.enabled = enabled
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(u *userImpl) {
		u.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(u *userImpl) {
		u.updatedAt = updatedAt
	}
}

func New(username string, opts ...Option) User {
	u := &userImpl{
		username:  username,
		enabled:   true,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type userImpl struct {
	id           uint
	username     string
	phone        string
	passwordHash string
	enabled      bool
	createdAt    time.Time
	updatedAt    time.Time
}

func (u *userImpl) ID() uint {
	return u.id
}

func (u *userImpl) Username() string {
	return u.username
}

func (u *userImpl) Phone() string {
	return u.phone
}

func (u *userImpl) Enabled() bool {
	return u.enabled
}

func (u *userImpl) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.passwordHash), []byte(password)) == nil
}

func (u *userImpl) CreatedAt() time.Time {
	return u.createdAt
}

func (u *userImpl) UpdatedAt() time.Time {
	return u.updatedAt
}
