package org

import "context"

// Repository is the organization slice of the directory store. Lookups that
// miss return (nil, nil); absence is a normal branch for callers, not an
// error.
type Repository interface {
	GetByID(ctx context.Context, id uint) (Unit, error)
	FindDeptsByEmployee(ctx context.Context, employeeID uint) ([]Unit, error)
	FindCompaniesByEmployee(ctx context.Context, employeeID uint) ([]Unit, error)
	GetCompanyByDept(ctx context.Context, deptID uint) (Unit, error)
}

// DefaultPicker is the deterministic tie-break used when an employee has no
// recorded organizational choice. The rule is injected so resolution never
// depends on storage iteration order.
type DefaultPicker interface {
	PickDefault(units []Unit, preferredID *uint) Unit
}

// LowestIDPicker prefers the unit matching preferredID when present in the
// set, otherwise the unit with the lowest id.
type LowestIDPicker struct{}

func (LowestIDPicker) PickDefault(units []Unit, preferredID *uint) Unit {
	if len(units) == 0 {
		return nil
	}
	if preferredID != nil {
		for _, u := range units {
			if u.ID() == *preferredID {
				return u
			}
		}
	}
	picked := units[0]
	for _, u := range units[1:] {
		if u.ID() < picked.ID() {
			picked = u
		}
	}
	return picked
}
