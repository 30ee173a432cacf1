package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPermissionSetHas(t *testing.T) {
	set := PermissionSet{PermRegister, PermDashboard}

	assert.True(t, set.Has(PermRegister))
	assert.True(t, set.Has(PermDashboard))
	assert.False(t, set.Has(PermDelete))
	assert.False(t, PermissionSet(nil).Has(PermRegister))
}

func TestParsePermissions(t *testing.T) {
	set := ParsePermissions([]string{"register", "sudo", "view_all", "register", ""})

	assert.Equal(t, PermissionSet{PermRegister, PermViewAll}, set)
}

func TestAllPermissionsCoversEnum(t *testing.T) {
	for _, p := range []Permission{PermRegister, PermDashboard, PermViewAll, PermDelete, PermLogOut} {
		assert.True(t, AllPermissions.Has(p), string(p))
	}
}

func TestPermissionSetStrings(t *testing.T) {
	set := PermissionSet{PermRegister, PermLogOut}
	assert.Equal(t, []string{"register", "log_out"}, set.Strings())
}
