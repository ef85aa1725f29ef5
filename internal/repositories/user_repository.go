package repositories

import (
	"errors"

	"sjfs/internal/models"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailTaken        = errors.New("email already taken")
	ErrMerchantNotFound  = errors.New("merchant not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrWarehouseNotFound = errors.New("warehouse not found")
	ErrWebhookNotFound   = errors.New("webhook not found")
	ErrDatabaseOperation = errors.New("database operation failed")
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	// Create creates a new user in the database
	Create(user *models.User) error

	// GetByID retrieves a user by their ID
	GetByID(id uint) (*models.User, error)

	// GetByEmail retrieves a user by their email address
	GetByEmail(email string) (*models.User, error)

	// Update updates an existing user's information
	Update(user *models.User) error

	// UpdateBackupCodes replaces the user's stored 2FA backup codes
	UpdateBackupCodes(userID uint, codes []string) error

	// IncrementTokenVersion increments the user's token version
	IncrementTokenVersion(userID uint) error

	// ListActiveByRole retrieves active users holding a role.
	// A zero merchantID matches users of any merchant.
	ListActiveByRole(merchantID uint, role string) ([]models.User, error)

	// List retrieves users with pagination
	List(offset, limit int) ([]*models.User, int64, error)
}
