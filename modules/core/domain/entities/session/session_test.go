package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iota-uz/authgate/modules/core/domain/entities/session"
)

func uintPtr(v uint) *uint {
	return &v
}

func TestContext_Attrs_OmitsNilFields(t *testing.T) {
	sc := session.Context{
		EmployeeID: uintPtr(5),
		CompanyID:  uintPtr(10),
	}

	attrs := sc.Attrs()
	assert.Equal(t, map[string]string{
		session.KeyEmployeeID: "5",
		session.KeyCompanyID:  "10",
	}, attrs)
	assert.NotContains(t, attrs, session.KeyDeptID)
	assert.NotContains(t, attrs, session.KeyTopCompanyID)
}

func TestContext_Attrs_EmptyContext(t *testing.T) {
	assert.Empty(t, session.Context{}.Attrs())
}

func TestSession_Attr(t *testing.T) {
	sess := &session.Session{
		Attrs: map[string]string{
			session.KeyDeptID:     "40",
			session.KeyEmployeeID: "not-a-number",
		},
	}

	assert.Equal(t, uintPtr(40), sess.Attr(session.KeyDeptID))
	assert.Nil(t, sess.Attr(session.KeyCompanyID))
	assert.Nil(t, sess.Attr(session.KeyEmployeeID))
}
