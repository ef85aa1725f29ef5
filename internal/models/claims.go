package models

import "github.com/golang-jwt/jwt/v5"

// Platform roles
const (
	RolePlatformAdmin    = "PLATFORM_ADMIN"
	RoleMerchantAdmin    = "MERCHANT_ADMIN"
	RoleMerchantStaff    = "MERCHANT_STAFF"
	RoleWarehouseStaff   = "WAREHOUSE_STAFF"
	RoleLogisticsPartner = "LOGISTICS_PARTNER"
)

// Application permissions
const (
	// Admin permissions
	PermissionReadAdmin  = "admin:read"
	PermissionWriteAdmin = "admin:write"

	// Order permissions
	PermissionOrderRead   = "order:read"
	PermissionOrderWrite  = "order:write"
	PermissionOrderStatus = "order:status"
	PermissionOrderSplit  = "order:split"

	// Inventory permissions
	PermissionStockRead  = "stock:read"
	PermissionStockWrite = "stock:write"

	// Merchant permissions
	PermissionMerchantRead   = "merchant:read"
	PermissionMerchantWrite  = "merchant:write"
	PermissionMerchantDelete = "merchant:delete"

	// Webhook permissions
	PermissionWebhookManage = "webhook:manage"

	// User permissions
	PermissionChangePassword = "user:change-password"
)

type UserClaims struct {
	jwt.RegisteredClaims
	UserID       uint     `json:"user_id"`
	Email        string   `json:"email"`
	Role         string   `json:"role"`
	MerchantID   uint     `json:"merchant_id,omitempty"`
	Permissions  []string `json:"permissions"`
	TokenVersion int      `json:"token_version"`
}

// HasPermission checks if the claims include a specific permission
func (c *UserClaims) HasPermission(permission string) bool {
	for _, p := range c.Permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// GetDefaultPermissions returns default permissions based on role
func GetDefaultPermissions(role string) []string {
	switch role {
	case RolePlatformAdmin:
		return []string{
			PermissionReadAdmin,
			PermissionWriteAdmin,
			PermissionOrderRead,
			PermissionOrderWrite,
			PermissionOrderStatus,
			PermissionOrderSplit,
			PermissionStockRead,
			PermissionStockWrite,
			PermissionMerchantRead,
			PermissionMerchantWrite,
			PermissionMerchantDelete,
			PermissionWebhookManage,
			PermissionChangePassword,
		}
	case RoleMerchantAdmin:
		return []string{
			PermissionOrderRead,
			PermissionOrderWrite,
			PermissionStockRead,
			PermissionStockWrite,
			PermissionMerchantRead,
			PermissionMerchantWrite,
			PermissionMerchantDelete,
			PermissionWebhookManage,
			PermissionChangePassword,
		}
	case RoleMerchantStaff:
		return []string{
			PermissionOrderRead,
			PermissionStockRead,
			PermissionChangePassword,
		}
	case RoleWarehouseStaff:
		return []string{
			PermissionOrderRead,
			PermissionOrderStatus,
			PermissionOrderSplit,
			PermissionStockRead,
			PermissionStockWrite,
			PermissionChangePassword,
		}
	case RoleLogisticsPartner:
		return []string{
			PermissionOrderRead,
			PermissionOrderStatus,
			PermissionChangePassword,
		}
	default:
		return []string{}
	}
}
