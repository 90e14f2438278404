package org_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iota-uz/authgate/modules/core/domain/entities/org"
)

func uintPtr(v uint) *uint { return &v }

func TestTopNodeID(t *testing.T) {
	tests := []struct {
		name     string
		treePath string
		want     *uint
	}{
		{name: "empty path", treePath: "", want: nil},
		{name: "bare separator", treePath: "/", want: nil},
		{name: "single ancestor", treePath: "/7/", want: uintPtr(7)},
		{name: "deep chain returns root", treePath: "/1/4/9/", want: uintPtr(1)},
		{name: "garbage path", treePath: "/x/2/", want: nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := org.TopNodeID(tt.treePath)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.Equal(t, *tt.want, *got)
		})
	}
}

func TestUnit_RootID(t *testing.T) {
	root := org.New(1, org.TypeCompany, org.WithTreePath(""))
	assert.Nil(t, root.RootID())

	child := org.New(4, org.TypeCompany, org.WithTreePath("/1/"))
	require.NotNil(t, child.RootID())
	assert.Equal(t, uint(1), *child.RootID())
}

func TestLowestIDPicker(t *testing.T) {
	picker := org.LowestIDPicker{}

	t.Run("empty set", func(t *testing.T) {
		assert.Nil(t, picker.PickDefault(nil, nil))
	})

	t.Run("lowest id wins", func(t *testing.T) {
		units := []org.Unit{
			org.New(9, org.TypeDepartment),
			org.New(3, org.TypeDepartment),
			org.New(5, org.TypeDepartment),
		}
		picked := picker.PickDefault(units, nil)
		require.NotNil(t, picked)
		assert.Equal(t, uint(3), picked.ID())
	})

	t.Run("preferred id wins when present", func(t *testing.T) {
		units := []org.Unit{
			org.New(9, org.TypeCompany),
			org.New(3, org.TypeCompany),
		}
		picked := picker.PickDefault(units, uintPtr(9))
		require.NotNil(t, picked)
		assert.Equal(t, uint(9), picked.ID())
	})

	t.Run("preferred id absent falls back to lowest", func(t *testing.T) {
		units := []org.Unit{
			org.New(9, org.TypeCompany),
			org.New(3, org.TypeCompany),
		}
		picked := picker.PickDefault(units, uintPtr(42))
		require.NotNil(t, picked)
		assert.Equal(t, uint(3), picked.ID())
	})
}
