package model

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestRoleValid(t *testing.T) {
	assert.True(t, RoleAdmin.Valid())
	assert.True(t, RoleUser.Valid())
	assert.False(t, Role("superuser").Valid())
	assert.False(t, Role("").Valid())
}

func TestApplicationStatusValid(t *testing.T) {
	for _, s := range ApplicationStatuses {
		assert.True(t, s.Valid(), s)
	}
	assert.False(t, ApplicationStatus("hired").Valid())
	assert.False(t, ApplicationStatus("Accepted").Valid())
}

func TestBeforeCreateKeepsExistingID(t *testing.T) {
	id := uuid.New()
	u := User{ID: id}
	assert.NoError(t, u.BeforeCreate(nil))
	assert.Equal(t, id, u.ID)

	fresh := User{}
	assert.NoError(t, fresh.BeforeCreate(nil))
	assert.NotEqual(t, uuid.Nil, fresh.ID)
}
