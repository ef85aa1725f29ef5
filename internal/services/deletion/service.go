// Package deletion implements the merchant deletion guard: credential
// re-verification, debt and subscription-cooldown checks, then the hard
// cascade delete. The guarded mutation never starts unless every
// precondition passes; the first failure wins.
package deletion

import (
	"context"
	"log"
	"time"

	"sjfs/internal/models"
	"sjfs/internal/repositories"
	"sjfs/internal/services/audit"

	"golang.org/x/crypto/bcrypt"
)

// subscriptionCooldown is how long after any active-subscription update a
// self-delete stays blocked.
const subscriptionCooldown = 24 * time.Hour

// Credentials carries whichever re-verification secrets the path needs.
type Credentials struct {
	Password       string `json:"password"`
	TwoFactorToken string `json:"twoFactorToken"`
	AdminPassword  string `json:"adminPassword"`
}

type Service interface {
	// DeleteMerchant removes the merchant and all dependent data after the
	// path-specific preconditions pass. Returns the number of staff users
	// deleted in the cascade.
	DeleteMerchant(ctx context.Context, merchantID uint, actor *models.UserClaims, creds Credentials) (int64, error)
}

type service struct {
	users     repositories.UserRepository
	merchants repositories.MerchantRepository
	billing   repositories.BillingRepository
	subs      repositories.SubscriptionRepository
	cascade   repositories.CascadeRepository
	auditor   audit.Service
}

func NewService(
	users repositories.UserRepository,
	merchants repositories.MerchantRepository,
	billing repositories.BillingRepository,
	subs repositories.SubscriptionRepository,
	cascade repositories.CascadeRepository,
	auditor audit.Service,
) Service {
	return &service{
		users:     users,
		merchants: merchants,
		billing:   billing,
		subs:      subs,
		cascade:   cascade,
		auditor:   auditor,
	}
}

func (s *service) DeleteMerchant(ctx context.Context, merchantID uint, actor *models.UserClaims, creds Credentials) (int64, error) {
	merchant, err := s.merchants.GetByID(merchantID)
	if err != nil {
		return 0, err
	}

	selfDelete := actor.MerchantID == merchantID

	if selfDelete && actor.Role == models.RolePlatformAdmin {
		return 0, ErrOwnMerchant
	}

	if selfDelete {
		if err := s.checkSelfDelete(merchantID, actor, creds); err != nil {
			return 0, err
		}
	} else {
		if err := s.checkAdminDelete(actor, creds); err != nil {
			return 0, err
		}
	}

	staffCount, err := s.cascade.DeleteMerchantCascade(merchantID)
	if err != nil {
		return 0, err
	}

	// The merchant row is already gone; a failed audit write is swallowed.
	entry := audit.Entry{
		Action:     "merchant.deleted",
		EntityType: "merchant",
		EntityID:   merchantID,
		Details: models.JSON{
			"business_name": merchant.BusinessName,
			"staff_deleted": staffCount,
			"self_delete":   selfDelete,
		},
	}
	if !selfDelete {
		actorID := actor.UserID
		entry.ActorID = &actorID
	}
	if err := s.auditor.Record(ctx, entry); err != nil {
		log.Printf("merchant deletion: audit entry failed for merchant %d: %v", merchantID, err)
	}

	return staffCount, nil
}

// checkSelfDelete enforces the self-delete preconditions in order:
// password, 2FA, outstanding debt, subscription cooldown.
func (s *service) checkSelfDelete(merchantID uint, actor *models.UserClaims, creds Credentials) error {
	if actor.Role != models.RoleMerchantAdmin {
		return ErrForbidden
	}

	user, err := s.users.GetByID(actor.UserID)
	if err != nil {
		return err
	}

	if creds.Password == "" {
		return ErrPasswordRequired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(creds.Password)); err != nil {
		return ErrInvalidPassword
	}

	if user.TwoFactorEnabled {
		if creds.TwoFactorToken == "" {
			return ErrTwoFactorRequired
		}
		ok, remaining, consumed := verifyTwoFactor(user, creds.TwoFactorToken)
		if !ok {
			return ErrInvalidTwoFactor
		}
		if consumed {
			if err := s.users.UpdateBackupCodes(user.ID, remaining); err != nil {
				return err
			}
		}
	}

	outstanding, err := s.billing.SumOutstanding(merchantID)
	if err != nil {
		return err
	}
	if outstanding > 0 {
		return ErrOutstandingDebt
	}

	recent, err := s.subs.ListActiveUpdatedSince(merchantID, time.Now().Add(-subscriptionCooldown))
	if err != nil {
		return err
	}
	if len(recent) > 0 {
		return ErrRecentSubscription
	}

	return nil
}

// checkAdminDelete enforces the platform-admin path: a different merchant,
// and the admin's own password re-verified.
func (s *service) checkAdminDelete(actor *models.UserClaims, creds Credentials) error {
	if actor.Role != models.RolePlatformAdmin {
		return ErrForbidden
	}

	admin, err := s.users.GetByID(actor.UserID)
	if err != nil {
		return err
	}

	if creds.AdminPassword == "" {
		return ErrAdminPasswordRequired
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.Password), []byte(creds.AdminPassword)); err != nil {
		return ErrInvalidPassword
	}

	return nil
}
