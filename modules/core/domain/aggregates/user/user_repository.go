package user

import "context"

type Repository interface {
	GetByID(ctx context.Context, id uint) (User, error)
	GetByUsername(ctx context.Context, username string) (User, error)
	GetByPhone(ctx context.Context, phone string) (User, error)
}
