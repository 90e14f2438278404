package services

import (
	"context"

	"github.com/iota-uz/authgate/modules/core/domain/aggregates/employee"
	"github.com/iota-uz/authgate/modules/core/domain/entities/org"
	"github.com/iota-uz/authgate/modules/core/domain/entities/session"
)

// OrgResolver decides which department, company, and top company an employee
// lands in, preferring the employee's recorded last choice and falling back
// to the injected default pick. When the decision differs from what the
// employee record stores, the record is rewritten once, both fields together.
type OrgResolver struct {
	employees employee.Repository
	orgs      org.Repository
	picker    org.DefaultPicker
}

func NewOrgResolver(
	employees employee.Repository,
	orgs org.Repository,
	picker org.DefaultPicker,
) *OrgResolver {
	return &OrgResolver{
		employees: employees,
		orgs:      orgs,
		picker:    picker,
	}
}

// Resolve computes the organizational context for an employee. A nil employee
// resolves to the empty context without touching storage.
//
// A recorded lastDeptID is trusted verbatim, existence is not re-checked; a
// stale id therefore survives until the next explicit switch. A recorded
// lastCompanyID is likewise kept even when the record behind it cannot be
// fetched, in which case the company counts as its own root.
func (r *OrgResolver) Resolve(ctx context.Context, emp employee.Employee) (session.Context, error) {
	if emp == nil {
		return session.Context{}, nil
	}

	empID := emp.ID()
	sc := session.Context{EmployeeID: &empID}

	prevDeptID := emp.LastDeptID()
	prevCompanyID := emp.LastCompanyID()

	deptID := prevDeptID
	if deptID == nil {
		depts, err := r.orgs.FindDeptsByEmployee(ctx, empID)
		if err != nil {
			return session.Context{}, err
		}
		if picked := r.picker.PickDefault(depts, nil); picked != nil {
			id := picked.ID()
			deptID = &id
		}
	}
	sc.DeptID = deptID

	var company org.Unit
	var companyID *uint
	switch {
	case prevCompanyID != nil:
		companyID = prevCompanyID
		c, err := r.orgs.GetByID(ctx, *prevCompanyID)
		if err != nil {
			return session.Context{}, err
		}
		company = c
	case deptID != nil:
		c, err := r.orgs.GetCompanyByDept(ctx, *deptID)
		if err != nil {
			return session.Context{}, err
		}
		if c != nil {
			company = c
			id := c.ID()
			companyID = &id
		}
	default:
		companies, err := r.orgs.FindCompaniesByEmployee(ctx, empID)
		if err != nil {
			return session.Context{}, err
		}
		if picked := r.picker.PickDefault(companies, prevCompanyID); picked != nil {
			company = picked
			id := picked.ID()
			companyID = &id
		}
	}
	sc.CompanyID = companyID

	topID, err := r.topCompanyID(ctx, companyID, company)
	if err != nil {
		return session.Context{}, err
	}
	sc.TopCompanyID = topID

	if !idsEqual(deptID, prevDeptID) || !idsEqual(companyID, prevCompanyID) {
		emp.SetLastOrg(deptID, companyID)
		if err := r.employees.Update(ctx, emp); err != nil {
			return session.Context{}, err
		}
	}

	return sc, nil
}

// ResolveExplicit binds the context to an explicitly chosen unit. Unlike
// Resolve it never consults or persists the employee's recorded choice; the
// caller owns that write.
func (r *OrgResolver) ResolveExplicit(ctx context.Context, emp employee.Employee, target org.Unit) (session.Context, error) {
	empID := emp.ID()
	sc := session.Context{EmployeeID: &empID}

	var company org.Unit
	var companyID *uint
	switch target.Type() {
	case org.TypeCompany:
		company = target
		id := target.ID()
		companyID = &id
	case org.TypeDepartment:
		id := target.ID()
		sc.DeptID = &id
		c, err := r.orgs.GetCompanyByDept(ctx, target.ID())
		if err != nil {
			return session.Context{}, err
		}
		if c != nil {
			company = c
			cid := c.ID()
			companyID = &cid
		}
	}
	sc.CompanyID = companyID

	topID, err := r.topCompanyID(ctx, companyID, company)
	if err != nil {
		return session.Context{}, err
	}
	sc.TopCompanyID = topID

	return sc, nil
}

// topCompanyID walks the company's tree path to its root. A company with no
// ancestors, or whose root record cannot be fetched, is its own root.
func (r *OrgResolver) topCompanyID(ctx context.Context, companyID *uint, company org.Unit) (*uint, error) {
	if companyID == nil {
		return nil, nil
	}
	if company == nil {
		return companyID, nil
	}

	rootID := company.RootID()
	if rootID == nil {
		id := company.ID()
		return &id, nil
	}

	root, err := r.orgs.GetByID(ctx, *rootID)
	if err != nil {
		return nil, err
	}
	if root == nil {
		id := company.ID()
		return &id, nil
	}
	id := root.ID()
	return &id, nil
}

func idsEqual(a, b *uint) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
