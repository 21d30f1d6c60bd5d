package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestItemTypeValid(t *testing.T) {
	for _, it := range ItemTypes {
		assert.True(t, it.Valid(), it)
	}
	assert.False(t, ItemType("Watch").Valid())
	assert.False(t, ItemType("").Valid())
	assert.False(t, ItemType("ring").Valid(), "item types are case sensitive")
}

func TestItemTypeShort(t *testing.T) {
	assert.Equal(t, "E", ItemEarring.Short())
	assert.Equal(t, "R", ItemRing.Short())
	assert.Equal(t, "N", ItemNecklace.Short())
	assert.Equal(t, "B", ItemBracelet.Short())
	assert.Equal(t, "O", ItemType("").Short())
}

func TestRoleAllowed(t *testing.T) {
	adminOnly := []string{
		ActionCaseCreateAuth, ActionCaseRenameAuth, ActionCaseArchiveAuth,
		ActionUserViewAuth, ActionUserCreateAuth, ActionUserDisableAuth,
	}
	for _, action := range adminOnly {
		assert.True(t, RoleAllowed(RoleAdmin, action), action)
		assert.False(t, RoleAllowed(RoleStaff, action), action)
	}

	// Actions without an entry are open to any authenticated role.
	assert.True(t, RoleAllowed(RoleStaff, "inventory:receive"))
	assert.True(t, RoleAllowed(RoleAdmin, "inventory:receive"))
}

func TestComputeTotal(t *testing.T) {
	c := CaseCount{Earrings: 1, Rings: 2, Necklaces: 3, Bracelets: 4}
	c.ComputeTotal()
	assert.Equal(t, 10, c.Total)
}

func TestDiamondTestOptions(t *testing.T) {
	assert.True(t, DiamondTestOptions["Y"])
	assert.True(t, DiamondTestOptions["N"])
	assert.True(t, DiamondTestOptions["NRT"])
	assert.False(t, DiamondTestOptions["y"])
	assert.False(t, DiamondTestOptions[""])
}
