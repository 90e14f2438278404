package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/iota-uz/authgate/modules/core/domain/aggregates/user"
	"github.com/iota-uz/authgate/modules/core/infrastructure/persistence/models"
	"github.com/iota-uz/authgate/pkg/composables"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

const (
	userFindQuery = `
        SELECT
            u.id,
            u.username,
            u.phone,
            u.password,
            u.enabled,
            u.created_at,
            u.updated_at
        FROM users u`
)

type PgUserRepository struct{}

func NewUserRepository() user.Repository {
	return &PgUserRepository{}
}

func (g *PgUserRepository) GetByID(ctx context.Context, id uint) (user.User, error) {
	users, err := g.queryUsers(ctx, userFindQuery+" WHERE u.id = $1", id)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query user with id: %d", id))
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("id: %d: %w", id, ErrUserNotFound)
	}
	return users[0], nil
}

func (g *PgUserRepository) GetByUsername(ctx context.Context, username string) (user.User, error) {
	users, err := g.queryUsers(ctx, userFindQuery+" WHERE u.username = $1", username)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query user with username: %s", username))
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("username: %s: %w", username, ErrUserNotFound)
	}
	return users[0], nil
}

func (g *PgUserRepository) GetByPhone(ctx context.Context, phone string) (user.User, error) {
	users, err := g.queryUsers(ctx, userFindQuery+" WHERE u.phone = $1", phone)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query user with phone: %s", phone))
	}
	if len(users) == 0 {
		return nil, fmt.Errorf("phone: %s: %w", phone, ErrUserNotFound)
	}
	return users[0], nil
}

func (g *PgUserRepository) queryUsers(ctx context.Context, query string, args ...interface{}) ([]user.User, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var entities []user.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.Phone,
			&u.Password,
			&u.Enabled,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan user row")
		}
		entities = append(entities, toDomainUser(&u))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return entities, nil
}
