package org

import (
	"strconv"
	"strings"
	"time"
)

type Type string

const (
	TypeCompany    Type = "COMPANY"
	TypeDepartment Type = "DEPARTMENT"
)

// Unit is a node in the company/department tree. TreePath is the materialized
// ancestor chain ("/1/4/" means ancestors 1 then 4, root first), enabling root
// lookup without recursive queries.
type Unit interface {
	ID() uint
	Type() Type
	TreePath() string
	RootID() *uint
	CreatedAt() time.Time
	UpdatedAt() time.Time
}

// TopNodeID extracts the root ancestor id from a materialized tree path.
// Returns nil when the path names no ancestor, meaning the node is its own
// root.
func TopNodeID(treePath string) *uint {
	for _, part := range strings.Split(treePath, "/") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil
		}
		v := uint(id)
		return &v
	}
	return nil
}

type Option func(u *unitImpl)

func WithTreePath(treePath string) Option {
	return func(u *unitImpl) {
		u.treePath = treePath
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(u *unitImpl) {
		u.createdAt = createdAt
	}
}

func WithUpdatedAt(updatedAt time.Time) Option {
	return func(u *unitImpl) {
		u.updatedAt = updatedAt
	}
}

func New(id uint, unitType Type, opts ...Option) Unit {
	u := &unitImpl{
		id:        id,
		unitType:  unitType,
		createdAt: time.Now(),
		updatedAt: time.Now(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

type unitImpl struct {
	id        uint
	unitType  Type
	treePath  string
	createdAt time.Time
	updatedAt time.Time
}

func (u *unitImpl) ID() uint {
	return u.id
}

func (u *unitImpl) Type() Type {
	return u.unitType
}

func (u *unitImpl) TreePath() string {
	return u.treePath
}

func (u *unitImpl) RootID() *uint {
	return TopNodeID(u.treePath)
}

func (u *unitImpl) CreatedAt() time.Time {
	return u.createdAt
}

func (u *unitImpl) UpdatedAt() time.Time {
	return u.updatedAt
}
