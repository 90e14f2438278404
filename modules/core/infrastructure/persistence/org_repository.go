package persistence

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"github.com/iota-uz/authgate/modules/core/domain/entities/org"
	"github.com/iota-uz/authgate/modules/core/infrastructure/persistence/models"
	"github.com/iota-uz/authgate/pkg/composables"
)

const (
	orgFindQuery = `
        SELECT
            o.id,
            o.type,
            o.tree_path,
            o.created_at,
            o.updated_at
        FROM org_units o`

	orgMembershipQuery = `
        SELECT
            o.id,
            o.type,
            o.tree_path,
            o.created_at,
            o.updated_at
        FROM org_units o
        JOIN employee_org_units eo ON eo.org_unit_id = o.id
        WHERE eo.employee_id = $1 AND o.type = $2
        ORDER BY o.id`
)

type PgOrgRepository struct{}

func NewOrgRepository() org.Repository {
	return &PgOrgRepository{}
}

func (g *PgOrgRepository) GetByID(ctx context.Context, id uint) (org.Unit, error) {
	units, err := g.queryUnits(ctx, orgFindQuery+" WHERE o.id = $1", id)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to query org unit with id: %d", id))
	}
	if len(units) == 0 {
		return nil, nil
	}
	return units[0], nil
}

func (g *PgOrgRepository) FindDeptsByEmployee(ctx context.Context, employeeID uint) ([]org.Unit, error) {
	units, err := g.queryUnits(ctx, orgMembershipQuery, employeeID, string(org.TypeDepartment))
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to list departments for employee ID: %d", employeeID))
	}
	return units, nil
}

func (g *PgOrgRepository) FindCompaniesByEmployee(ctx context.Context, employeeID uint) ([]org.Unit, error) {
	units, err := g.queryUnits(ctx, orgMembershipQuery, employeeID, string(org.TypeCompany))
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to list companies for employee ID: %d", employeeID))
	}
	return units, nil
}

// GetCompanyByDept walks the department's ancestor chain from the nearest
// ancestor outward and returns the first company found. The department's own
// node is checked last so a misclassified unit does not shadow a real parent
// company.
func (g *PgOrgRepository) GetCompanyByDept(ctx context.Context, deptID uint) (org.Unit, error) {
	dept, err := g.GetByID(ctx, deptID)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, nil
	}

	ancestorIDs := parseTreePath(dept.TreePath())
	if len(ancestorIDs) == 0 {
		return nil, nil
	}

	units, err := g.queryUnits(ctx, orgFindQuery+" WHERE o.id = ANY($1)", ancestorIDs)
	if err != nil {
		return nil, errors.Wrap(err, fmt.Sprintf("failed to load ancestors of department ID: %d", deptID))
	}

	byID := make(map[uint]org.Unit, len(units))
	for _, u := range units {
		byID[u.ID()] = u
	}
	// ancestorIDs is ordered root first; iterate in reverse for nearest-first.
	for i := len(ancestorIDs) - 1; i >= 0; i-- {
		u, ok := byID[uint(ancestorIDs[i])]
		if !ok {
			continue
		}
		if u.Type() == org.TypeCompany {
			return u, nil
		}
	}
	return nil, nil
}

func parseTreePath(treePath string) []int64 {
	var ids []int64
	for _, part := range strings.Split(treePath, "/") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseInt(part, 10, 64)
		if err != nil {
			return nil
		}
		ids = append(ids, id)
	}
	return ids
}

func (g *PgOrgRepository) queryUnits(ctx context.Context, query string, args ...interface{}) ([]org.Unit, error) {
	tx, err := composables.UseTx(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get transaction")
	}

	rows, err := tx.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute query")
	}
	defer rows.Close()

	var entities []org.Unit
	for rows.Next() {
		var o models.Org
		if err := rows.Scan(
			&o.ID,
			&o.Type,
			&o.TreePath,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, errors.Wrap(err, "failed to scan org unit row")
		}
		entities = append(entities, toDomainOrg(&o))
	}

	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "row iteration error")
	}

	return entities, nil
}
