package employee

import "context"

// Repository is the employee slice of the directory store. List order is
// defined by the store (the pg implementation orders by id); callers treat it
// as authoritative.
type Repository interface {
	ListByUserID(ctx context.Context, userID uint) ([]Employee, error)
	GetByID(ctx context.Context, id uint) (Employee, error)
	GetByUserID(ctx context.Context, userID uint) (Employee, error)
	Update(ctx context.Context, e Employee) error
}
