package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/iota-uz/authgate/modules/core/domain/entities/client"
	"github.com/iota-uz/authgate/modules/core/infrastructure/persistence/models"
	"github.com/iota-uz/authgate/pkg/composables"
)

const (
	clientFindQuery = `
        SELECT
            c.id,
            c.secret,
            c.category,
            c.enabled,
            c.created_at
        FROM clients c`
)

type PgClientRepository struct{}

func NewClientRepository() client.Repository {
	return &PgClientRepository{}
}

// GetByCredentials matches on the id/secret pair; a wrong secret is
// indistinguishable from an unknown id.
func (g *PgClientRepository) GetByCredentials(ctx context.Context, clientID, clientSecret string) (client.Client, error) {
	clients, err := g.queryClients(ctx, clientFindQuery+" WHERE c.id = $1 AND c.secret = $2", clientID, clientSecret)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query client with id: %s", clientID))
	}
	if len(clients) == 0 {
		return nil, nil
	}
	return clients[0], nil
}

func (g *PgClientRepository) queryClients(ctx context.Context, query string, args ...interface{}) ([]client.Client, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var entities []client.Client
	for rows.Next() {
		var c models.Client
		if err := rows.Scan(
			&c.ID,
			&c.Secret,
			&c.Category,
			&c.Enabled,
			&c.CreatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan client row")
		}
		entities = append(entities, toDomainClient(&c))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return entities, nil
}
