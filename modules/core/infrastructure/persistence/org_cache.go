package persistence

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/iota-uz/authgate/modules/core/domain/entities/org"
)

const (
	orgCacheKeyPrefix     = "authgate:org"
	deptCompanyCacheScope = "dept-company"
)

type cachedOrg struct {
	ID        uint      `json:"id"`
	Type      string    `json:"type"`
	TreePath  string    `json:"treePath"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toCachedOrg(u org.Unit) cachedOrg {
	return cachedOrg{
		ID:        u.ID(),
		Type:      string(u.Type()),
		TreePath:  u.TreePath(),
		CreatedAt: u.CreatedAt(),
		UpdatedAt: u.UpdatedAt(),
	}
}

func (c cachedOrg) toDomain() org.Unit {
	return org.New(
		c.ID,
		org.Type(c.Type),
		org.WithTreePath(c.TreePath),
		org.WithCreatedAt(c.CreatedAt),
		org.WithUpdatedAt(c.UpdatedAt),
	)
}

// CachedOrgRepository is a read-through cache over the org directory. Units
// change rarely relative to how often logins read them, so single-unit
// lookups are served from redis within the configured TTL. Membership lists
// stay uncached: they feed default-pick decisions and must see fresh rows.
// Cache failures degrade to the underlying repository, never to an error.
type CachedOrgRepository struct {
	inner org.Repository
	rdb   redis.UniversalClient
	ttl   time.Duration
}

func NewCachedOrgRepository(inner org.Repository, rdb redis.UniversalClient, ttl time.Duration) org.Repository {
	return &CachedOrgRepository{
		inner: inner,
		rdb:   rdb,
		ttl:   ttl,
	}
}

func (c *CachedOrgRepository) GetByID(ctx context.Context, id uint) (org.Unit, error) {
	key := fmt.Sprintf("%s:unit:%d", orgCacheKeyPrefix, id)
	if unit, ok := c.lookup(ctx, key); ok {
		return unit, nil
	}

	unit, err := c.inner.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if unit != nil {
		c.store(ctx, key, unit)
	}
	return unit, nil
}

func (c *CachedOrgRepository) FindDeptsByEmployee(ctx context.Context, employeeID uint) ([]org.Unit, error) {
	return c.inner.FindDeptsByEmployee(ctx, employeeID)
}

func (c *CachedOrgRepository) FindCompaniesByEmployee(ctx context.Context, employeeID uint) ([]org.Unit, error) {
	return c.inner.FindCompaniesByEmployee(ctx, employeeID)
}

func (c *CachedOrgRepository) GetCompanyByDept(ctx context.Context, deptID uint) (org.Unit, error) {
	key := fmt.Sprintf("%s:%s:%d", orgCacheKeyPrefix, deptCompanyCacheScope, deptID)
	if unit, ok := c.lookup(ctx, key); ok {
		return unit, nil
	}

	unit, err := c.inner.GetCompanyByDept(ctx, deptID)
	if err != nil {
		return nil, err
	}
	if unit != nil {
		c.store(ctx, key, unit)
	}
	return unit, nil
}

func (c *CachedOrgRepository) lookup(ctx context.Context, key string) (org.Unit, bool) {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var cached cachedOrg
	if err := json.Unmarshal(raw, &cached); err != nil {
		return nil, false
	}
	return cached.toDomain(), true
}

func (c *CachedOrgRepository) store(ctx context.Context, key string, unit org.Unit) {
	raw, err := json.Marshal(toCachedOrg(unit))
	if err != nil {
		return
	}
	// Best effort: a failed SET just means the next read hits postgres.
	_ = c.rdb.Set(ctx, key, raw, c.ttl).Err()
}
