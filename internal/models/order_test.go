package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderStatusValid(t *testing.T) {
	valid := []OrderStatus{
		OrderStatusPending, OrderStatusConfirmed, OrderStatusProcessing,
		OrderStatusReadyForDispatch, OrderStatusInTransit,
		OrderStatusDelivered, OrderStatusCancelled, OrderStatusReturned,
	}
	for _, s := range valid {
		assert.True(t, s.Valid(), string(s))
	}

	invalid := []OrderStatus{"", "SHIPPED", "pending", "DELIVERED "}
	for _, s := range invalid {
		assert.False(t, s.Valid(), string(s))
	}
}

func TestClaimsPermissions(t *testing.T) {
	claims := &UserClaims{
		Role:        RoleWarehouseStaff,
		Permissions: GetDefaultPermissions(RoleWarehouseStaff),
	}

	assert.True(t, claims.HasPermission(PermissionOrderStatus))
	assert.True(t, claims.HasPermission(PermissionOrderSplit))
	assert.False(t, claims.HasPermission(PermissionMerchantDelete))
	assert.False(t, claims.HasPermission(PermissionWebhookManage))

	assert.Empty(t, GetDefaultPermissions("UNKNOWN_ROLE"))
}
