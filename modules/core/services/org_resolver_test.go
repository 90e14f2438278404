package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/authgate/modules/core/domain/aggregates/employee"
	"github.com/iota-uz/authgate/modules/core/domain/entities/org"
	"github.com/iota-uz/authgate/modules/core/services"
)

func newResolver(employees *fakeEmployeeRepo, orgs *fakeOrgRepo) *services.OrgResolver {
	return services.NewOrgResolver(employees, orgs, org.LowestIDPicker{})
}

func TestOrgResolver_NilEmployee(t *testing.T) {
	employees := newFakeEmployeeRepo()
	orgs := newFakeOrgRepo()
	resolver := newResolver(employees, orgs)

	sc, err := resolver.Resolve(context.Background(), nil)
	require.NoError(t, err)

	assert.Nil(t, sc.EmployeeID)
	assert.Nil(t, sc.DeptID)
	assert.Nil(t, sc.CompanyID)
	assert.Nil(t, sc.TopCompanyID)
	assert.Zero(t, employees.updates)
}

func TestOrgResolver_LastChoiceKeptWithoutWrite(t *testing.T) {
	company := org.New(10, org.TypeCompany, org.WithTreePath("/"))
	orgs := newFakeOrgRepo()
	orgs.addUnit(company)

	emp := employee.New(1,
		employee.WithID(5),
		employee.WithLastDeptID(uintPtr(7)),
		employee.WithLastCompanyID(uintPtr(10)),
	)
	employees := newFakeEmployeeRepo(emp)
	resolver := newResolver(employees, orgs)

	sc, err := resolver.Resolve(context.Background(), emp)
	require.NoError(t, err)

	assert.Equal(t, uintPtr(5), sc.EmployeeID)
	assert.Equal(t, uintPtr(7), sc.DeptID)
	assert.Equal(t, uintPtr(10), sc.CompanyID)
	assert.Equal(t, uintPtr(10), sc.TopCompanyID)
	assert.Zero(t, employees.updates, "cached choice must not trigger a write")
}

func TestOrgResolver_NoMemberships(t *testing.T) {
	emp := employee.New(1, employee.WithID(5))
	employees := newFakeEmployeeRepo(emp)
	resolver := newResolver(employees, newFakeOrgRepo())

	sc, err := resolver.Resolve(context.Background(), emp)
	require.NoError(t, err)

	assert.Equal(t, uintPtr(5), sc.EmployeeID)
	assert.Nil(t, sc.DeptID)
	assert.Nil(t, sc.CompanyID)
	assert.Nil(t, sc.TopCompanyID)
	assert.Zero(t, employees.updates)
}

func TestOrgResolver_DefaultPickWritesBackOnce(t *testing.T) {
	deptA := org.New(40, org.TypeDepartment, org.WithTreePath("/1/"))
	companyX := org.New(1, org.TypeCompany, org.WithTreePath("/"))
	orgs := newFakeOrgRepo()
	orgs.addUnit(deptA)
	orgs.addUnit(companyX)
	orgs.depts[5] = []org.Unit{deptA}
	orgs.deptCompany[deptA.ID()] = companyX

	emp := employee.New(1, employee.WithID(5))
	employees := newFakeEmployeeRepo(emp)
	resolver := newResolver(employees, orgs)

	sc, err := resolver.Resolve(context.Background(), emp)
	require.NoError(t, err)

	assert.Equal(t, uintPtr(40), sc.DeptID)
	assert.Equal(t, uintPtr(1), sc.CompanyID)
	assert.Equal(t, uintPtr(1), sc.TopCompanyID)
	assert.Equal(t, 1, employees.updates, "changed choice must persist exactly once")
	assert.Equal(t, uintPtr(40), emp.LastDeptID())
	assert.Equal(t, uintPtr(1), emp.LastCompanyID())
}

func TestOrgResolver_ResolveTwiceIsIdempotent(t *testing.T) {
	deptA := org.New(40, org.TypeDepartment, org.WithTreePath("/1/"))
	companyX := org.New(1, org.TypeCompany, org.WithTreePath("/"))
	orgs := newFakeOrgRepo()
	orgs.addUnit(deptA)
	orgs.addUnit(companyX)
	orgs.depts[5] = []org.Unit{deptA}
	orgs.deptCompany[deptA.ID()] = companyX

	emp := employee.New(1, employee.WithID(5))
	employees := newFakeEmployeeRepo(emp)
	resolver := newResolver(employees, orgs)

	first, err := resolver.Resolve(context.Background(), emp)
	require.NoError(t, err)
	require.Equal(t, 1, employees.updates)

	second, err := resolver.Resolve(context.Background(), emp)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, 1, employees.updates, "second resolve must not write again")
}

func TestOrgResolver_TopCompanyFollowsTreePath(t *testing.T) {
	root := org.New(1, org.TypeCompany, org.WithTreePath("/"))
	subsidiary := org.New(4, org.TypeCompany, org.WithTreePath("/1/"))
	orgs := newFakeOrgRepo()
	orgs.addUnit(root)
	orgs.addUnit(subsidiary)

	emp := employee.New(1,
		employee.WithID(5),
		employee.WithLastCompanyID(uintPtr(4)),
	)
	employees := newFakeEmployeeRepo(emp)
	resolver := newResolver(employees, orgs)

	sc, err := resolver.Resolve(context.Background(), emp)
	require.NoError(t, err)

	assert.Equal(t, uintPtr(4), sc.CompanyID)
	assert.Equal(t, uintPtr(1), sc.TopCompanyID)
}

func TestOrgResolver_MissingRootFallsBackToCompany(t *testing.T) {
	// Tree path names ancestor 99 but no such record exists.
	orphan := org.New(4, org.TypeCompany, org.WithTreePath("/99/"))
	orgs := newFakeOrgRepo()
	orgs.addUnit(orphan)

	emp := employee.New(1,
		employee.WithID(5),
		employee.WithLastCompanyID(uintPtr(4)),
	)
	employees := newFakeEmployeeRepo(emp)
	resolver := newResolver(employees, orgs)

	sc, err := resolver.Resolve(context.Background(), emp)
	require.NoError(t, err)

	assert.Equal(t, uintPtr(4), sc.CompanyID)
	assert.Equal(t, uintPtr(4), sc.TopCompanyID)
}

func TestOrgResolver_StaleCompanyIDKept(t *testing.T) {
	// lastCompanyId points at a unit the directory no longer has. The id is
	// still trusted and the company counts as its own root.
	emp := employee.New(1,
		employee.WithID(5),
		employee.WithLastCompanyID(uintPtr(77)),
	)
	employees := newFakeEmployeeRepo(emp)
	resolver := newResolver(employees, newFakeOrgRepo())

	sc, err := resolver.Resolve(context.Background(), emp)
	require.NoError(t, err)

	assert.Equal(t, uintPtr(77), sc.CompanyID)
	assert.Equal(t, uintPtr(77), sc.TopCompanyID)
	assert.Zero(t, employees.updates)
}

func TestOrgResolver_DeptWithoutOwningCompany(t *testing.T) {
	dept := org.New(40, org.TypeDepartment, org.WithTreePath("/1/"))
	orgs := newFakeOrgRepo()
	orgs.addUnit(dept)
	orgs.depts[5] = []org.Unit{dept}

	emp := employee.New(1, employee.WithID(5))
	employees := newFakeEmployeeRepo(emp)
	resolver := newResolver(employees, orgs)

	sc, err := resolver.Resolve(context.Background(), emp)
	require.NoError(t, err)

	assert.Equal(t, uintPtr(40), sc.DeptID)
	assert.Nil(t, sc.CompanyID, "dept without an owning company is a legal state")
	assert.Nil(t, sc.TopCompanyID)
	assert.Equal(t, 1, employees.updates, "dept pick alone still persists")
}

func TestOrgResolver_DirectCompanyMembershipFallback(t *testing.T) {
	companyA := org.New(3, org.TypeCompany, org.WithTreePath("/"))
	companyB := org.New(8, org.TypeCompany, org.WithTreePath("/"))
	orgs := newFakeOrgRepo()
	orgs.addUnit(companyA)
	orgs.addUnit(companyB)
	orgs.companies[5] = []org.Unit{companyB, companyA}

	emp := employee.New(1, employee.WithID(5))
	employees := newFakeEmployeeRepo(emp)
	resolver := newResolver(employees, orgs)

	sc, err := resolver.Resolve(context.Background(), emp)
	require.NoError(t, err)

	assert.Nil(t, sc.DeptID)
	assert.Equal(t, uintPtr(3), sc.CompanyID, "lowest id wins without a hint")
	assert.Equal(t, uintPtr(3), sc.TopCompanyID)
	assert.Equal(t, 1, employees.updates)
}
