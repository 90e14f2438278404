package persistence

import (
	"database/sql"

	"github.com/iota-uz/authgate/modules/core/domain/aggregates/employee"
	"github.com/iota-uz/authgate/modules/core/domain/aggregates/user"
	"github.com/iota-uz/authgate/modules/core/domain/entities/client"
	"github.com/iota-uz/authgate/modules/core/domain/entities/org"
	"github.com/iota-uz/authgate/modules/core/infrastructure/persistence/models"
)

func nullableID(v sql.NullInt64) *uint {
	if !v.Valid {
		return nil
	}
	id := uint(v.Int64)
	return &id
}

func idToNullable(v *uint) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: int64(*v), Valid: true}
}

func toDomainUser(dbUser *models.User) user.User {
	return user.New(
		dbUser.Username,
		user.WithID(dbUser.ID),
		user.WithPhone(dbUser.Phone.String),
		user.WithPasswordHash(dbUser.Password.String),
		user.WithEnabled(dbUser.Enabled),
		user.WithCreatedAt(dbUser.CreatedAt),
		user.WithUpdatedAt(dbUser.UpdatedAt),
	)
}

func toDomainEmployee(dbEmployee *models.Employee) employee.Employee {
	return employee.New(
		dbEmployee.UserID,
		employee.WithID(dbEmployee.ID),
		employee.WithEnabled(dbEmployee.Enabled),
		employee.WithLastDeptID(nullableID(dbEmployee.LastDeptID)),
		employee.WithLastCompanyID(nullableID(dbEmployee.LastCompanyID)),
		employee.WithCreatedAt(dbEmployee.CreatedAt),
		employee.WithUpdatedAt(dbEmployee.UpdatedAt),
	)
}

func toDBEmployee(e employee.Employee) *models.Employee {
	return &models.Employee{
		ID:            e.ID(),
		UserID:        e.UserID(),
		Enabled:       e.Enabled(),
		LastDeptID:    idToNullable(e.LastDeptID()),
		LastCompanyID: idToNullable(e.LastCompanyID()),
		CreatedAt:     e.CreatedAt(),
		UpdatedAt:     e.UpdatedAt(),
	}
}

func toDomainOrg(dbOrg *models.Org) org.Unit {
	return org.New(
		dbOrg.ID,
		org.Type(dbOrg.Type),
		org.WithTreePath(dbOrg.TreePath.String),
		org.WithCreatedAt(dbOrg.CreatedAt),
		org.WithUpdatedAt(dbOrg.UpdatedAt),
	)
}

func toDomainClient(dbClient *models.Client) client.Client {
	return client.New(
		dbClient.ID,
		dbClient.Secret,
		dbClient.Category,
		client.WithEnabled(dbClient.Enabled),
		client.WithCreatedAt(dbClient.CreatedAt),
	)
}
