package notification

import "sjfs/internal/models"

// TargetMode selects how a notification is addressed.
type TargetMode string

const (
	TargetByID   TargetMode = "BY_ID"
	TargetByRole TargetMode = "BY_ROLE"
	TargetGlobal TargetMode = "GLOBAL"
)

// Target addresses a notification in exactly one way: a single user, every
// active user holding a role (optionally within one merchant), or everyone.
type Target struct {
	Mode       TargetMode
	UserID     uint
	MerchantID uint
	Role       string
}

// ByID targets one specific user.
func ByID(userID uint) Target {
	return Target{Mode: TargetByID, UserID: userID}
}

// ByRole targets every active user holding role. A zero merchantID targets
// holders of the role across all merchants.
func ByRole(merchantID uint, role string) Target {
	return Target{Mode: TargetByRole, MerchantID: merchantID, Role: role}
}

// Global targets all users with a single row.
func Global() Target {
	return Target{Mode: TargetGlobal}
}

// Input describes a notification to dispatch.
type Input struct {
	Target   Target
	Title    string
	Message  string
	Type     models.NotificationType
	Priority models.NotificationPriority
	Metadata models.JSON
}
