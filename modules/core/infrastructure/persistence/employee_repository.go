package persistence

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"

	"github.com/iota-uz/authgate/modules/core/domain/aggregates/employee"
	"github.com/iota-uz/authgate/modules/core/infrastructure/persistence/models"
	"github.com/iota-uz/authgate/pkg/composables"
	"github.com/iota-uz/authgate/pkg/repo"
)

const (
	employeeFindQuery = `
        SELECT
            e.id,
            e.user_id,
            e.enabled,
            e.last_dept_id,
            e.last_company_id,
            e.created_at,
            e.updated_at
        FROM employees e`
)

type PgEmployeeRepository struct{}

func NewEmployeeRepository() employee.Repository {
	return &PgEmployeeRepository{}
}

func (g *PgEmployeeRepository) ListByUserID(ctx context.Context, userID uint) ([]employee.Employee, error) {
	// Order is the directory's contract with callers: lowest id first.
	employees, err := g.queryEmployees(ctx, employeeFindQuery+" WHERE e.user_id = $1 ORDER BY e.id", userID)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to list employees for user ID: %d", userID))
	}
	return employees, nil
}

func (g *PgEmployeeRepository) GetByID(ctx context.Context, id uint) (employee.Employee, error) {
	employees, err := g.queryEmployees(ctx, employeeFindQuery+" WHERE e.id = $1", id)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query employee with id: %d", id))
	}
	if len(employees) == 0 {
		return nil, nil
	}
	return employees[0], nil
}

func (g *PgEmployeeRepository) GetByUserID(ctx context.Context, userID uint) (employee.Employee, error) {
	employees, err := g.queryEmployees(ctx, employeeFindQuery+" WHERE e.user_id = $1 ORDER BY e.id LIMIT 1", userID)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query employee for user ID: %d", userID))
	}
	if len(employees) == 0 {
		return nil, nil
	}
	return employees[0], nil
}

func (g *PgEmployeeRepository) Update(ctx context.Context, e employee.Employee) error {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return errors.Wrap(err, "failed to get transaction")
	}

	dbEmployee := toDBEmployee(e)
	fields := []string{
		"enabled",
		"last_dept_id",
		"last_company_id",
		"updated_at",
	}
	values := []interface{}{
		dbEmployee.Enabled,
		dbEmployee.LastDeptID,
		dbEmployee.LastCompanyID,
		dbEmployee.UpdatedAt,
		dbEmployee.ID,
	}

	q := repo.Update("employees", fields, fmt.Sprintf("id = $%d", len(values)))
	if _, err := tx.Exec(ctx, q, values...); err != nil {
		return errors.Wrap(err, fmt.Sprintf("failed to update employee with ID: %d", dbEmployee.ID))
	}
	return nil
}

func (g *PgEmployeeRepository) queryEmployees(ctx context.Context, query string, args ...interface{}) ([]employee.Employee, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var entities []employee.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.Enabled,
			&e.LastDeptID,
			&e.LastCompanyID,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan employee row")
		}
		entities = append(entities, toDomainEmployee(&e))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return entities, nil
}
