package client

import (
	"context"
	"time"
)

// Client is a registered application allowed to call the login endpoints.
// Category names the session scope ("web", "mobile", ...): sessions started
// under different categories never invalidate each other.
type Client interface {
	ID() string
	Secret() string
	Enabled() bool
	Category() string
	CreatedAt() time.Time
}

// Repository returns (nil, nil) when no client matches; absence is a normal
// branch.
type Repository interface {
	GetByCredentials(ctx context.Context, clientID, clientSecret string) (Client, error)
}

type Option func(c *clientImpl)

func WithEnabled(enabled bool) Option {
	return func(c *clientImpl) {
		c.enabled = enabled
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(c *clientImpl) {
		c.createdAt = createdAt
	}
}

func New(id, secret, category string, opts ...Option) Client {
	c := &clientImpl{
		id:        id,
		secret:    secret,
		category:  category,
		enabled:   true,
		createdAt: time.Now(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type clientImpl struct {
	id        string
	secret    string
	category  string
	enabled   bool
	createdAt time.Time
}

func (c *clientImpl) ID() string {
	return c.id
}

func (c *clientImpl) Secret() string {
	return c.secret
}

func (c *clientImpl) Enabled() bool {
	return c.enabled
}

func (c *clientImpl) Category() string {
	return c.category
}

func (c *clientImpl) CreatedAt() time.Time {
	return c.createdAt
}
