package deletion

import (
	"context"
	"testing"
	"time"

	"sjfs/internal/models"
	"sjfs/internal/services/audit"

	"github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) GetByID(id uint) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepo) Update(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepo) UpdateBackupCodes(userID uint, codes []string) error {
	args := m.Called(userID, codes)
	return args.Error(0)
}

func (m *MockUserRepo) IncrementTokenVersion(userID uint) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockUserRepo) ListActiveByRole(merchantID uint, role string) ([]models.User, error) {
	args := m.Called(merchantID, role)
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockUserRepo) List(offset, limit int) ([]*models.User, int64, error) {
	args := m.Called(offset, limit)
	return args.Get(0).([]*models.User), args.Get(1).(int64), args.Error(2)
}

type MockMerchantRepo struct {
	mock.Mock
}

func (m *MockMerchantRepo) Create(merchant *models.Merchant) error {
	args := m.Called(merchant)
	return args.Error(0)
}

func (m *MockMerchantRepo) GetByID(id uint) (*models.Merchant, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Merchant), args.Error(1)
}

func (m *MockMerchantRepo) Update(merchant *models.Merchant) error {
	args := m.Called(merchant)
	return args.Error(0)
}

type MockBillingRepo struct {
	mock.Mock
}

func (m *MockBillingRepo) Create(record *models.BillingRecord) error {
	args := m.Called(record)
	return args.Error(0)
}

func (m *MockBillingRepo) SumOutstanding(merchantID uint) (float64, error) {
	args := m.Called(merchantID)
	return args.Get(0).(float64), args.Error(1)
}

type MockSubscriptionRepo struct {
	mock.Mock
}

func (m *MockSubscriptionRepo) GetActiveByMerchant(merchantID uint) (*models.Subscription, error) {
	args := m.Called(merchantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Subscription), args.Error(1)
}

func (m *MockSubscriptionRepo) ListActiveUpdatedSince(merchantID uint, since time.Time) ([]models.Subscription, error) {
	args := m.Called(merchantID, since)
	return args.Get(0).([]models.Subscription), args.Error(1)
}

type MockCascadeRepo struct {
	mock.Mock
}

func (m *MockCascadeRepo) DeleteMerchantCascade(merchantID uint) (int64, error) {
	args := m.Called(merchantID)
	return args.Get(0).(int64), args.Error(1)
}

type MockAuditor struct {
	mock.Mock
}

func (m *MockAuditor) Record(ctx context.Context, entry audit.Entry) error {
	args := m.Called(ctx, entry)
	return args.Error(0)
}

const ownerPassword = "correct horse battery"

// valid base32 secret for TOTP generation in tests
const totpSecret = "JBSWY3DPEHPK3PXP"

type deletionDeps struct {
	users     *MockUserRepo
	merchants *MockMerchantRepo
	billing   *MockBillingRepo
	subs      *MockSubscriptionRepo
	cascade   *MockCascadeRepo
	auditor   *MockAuditor
}

func newDeletionService(t *testing.T) (Service, *deletionDeps) {
	t.Helper()
	deps := &deletionDeps{
		users:     new(MockUserRepo),
		merchants: new(MockMerchantRepo),
		billing:   new(MockBillingRepo),
		subs:      new(MockSubscriptionRepo),
		cascade:   new(MockCascadeRepo),
		auditor:   new(MockAuditor),
	}
	svc := NewService(deps.users, deps.merchants, deps.billing, deps.subs, deps.cascade, deps.auditor)
	return svc, deps
}

func merchantOwner(t *testing.T, twoFactor bool, backupCodes ...string) *models.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(ownerPassword), bcrypt.MinCost)
	require.NoError(t, err)

	user := &models.User{
		Email:            "owner@acme.test",
		Password:         string(hash),
		Role:             models.RoleMerchantAdmin,
		TwoFactorEnabled: twoFactor,
		BackupCodes:      backupCodes,
	}
	if twoFactor {
		user.TwoFactorSecret = totpSecret
	}
	user.ID = 10
	return user
}

func ownerClaims() *models.UserClaims {
	return &models.UserClaims{UserID: 10, Role: models.RoleMerchantAdmin, MerchantID: 7}
}

func stubMerchant(deps *deletionDeps) {
	deps.merchants.On("GetByID", uint(7)).Return(&models.Merchant{ID: 7, BusinessName: "Acme"}, nil)
}

func stubCleanAccount(deps *deletionDeps) {
	deps.billing.On("SumOutstanding", uint(7)).Return(float64(0), nil)
	deps.subs.On("ListActiveUpdatedSince", uint(7), mock.Anything).Return([]models.Subscription{}, nil)
}

func TestDeleteMerchant_SelfDelete(t *testing.T) {
	svc, deps := newDeletionService(t)
	stubMerchant(deps)
	stubCleanAccount(deps)

	deps.users.On("GetByID", uint(10)).Return(merchantOwner(t, false), nil)
	deps.cascade.On("DeleteMerchantCascade", uint(7)).Return(int64(4), nil)
	deps.auditor.On("Record", mock.Anything, mock.Anything).Return(nil)

	count, err := svc.DeleteMerchant(context.Background(), 7, ownerClaims(), Credentials{Password: ownerPassword})

	require.NoError(t, err)
	assert.Equal(t, int64(4), count)
	deps.cascade.AssertExpectations(t)

	// the audit entry for a self-delete carries no actor: the actor's row is gone
	entry := deps.auditor.Calls[0].Arguments.Get(1).(audit.Entry)
	assert.Nil(t, entry.ActorID)
	assert.Equal(t, "merchant.deleted", entry.Action)
}

func TestDeleteMerchant_PasswordGate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"missing password", "", ErrPasswordRequired},
		{"wrong password", "not it", ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newDeletionService(t)
			stubMerchant(deps)
			deps.users.On("GetByID", uint(10)).Return(merchantOwner(t, false), nil)

			_, err := svc.DeleteMerchant(context.Background(), 7, ownerClaims(), Credentials{Password: tt.password})

			assert.ErrorIs(t, err, tt.wantErr)
			deps.cascade.AssertNotCalled(t, "DeleteMerchantCascade", mock.Anything)
			deps.billing.AssertNotCalled(t, "SumOutstanding", mock.Anything)
		})
	}
}

func TestDeleteMerchant_TwoFactorRequired(t *testing.T) {
	svc, deps := newDeletionService(t)
	stubMerchant(deps)
	deps.users.On("GetByID", uint(10)).Return(merchantOwner(t, true), nil)

	_, err := svc.DeleteMerchant(context.Background(), 7, ownerClaims(), Credentials{Password: ownerPassword})

	assert.ErrorIs(t, err, ErrTwoFactorRequired)
	deps.cascade.AssertNotCalled(t, "DeleteMerchantCascade", mock.Anything)
}

func TestDeleteMerchant_TwoFactorTOTP(t *testing.T) {
	svc, deps := newDeletionService(t)
	stubMerchant(deps)
	stubCleanAccount(deps)
	deps.users.On("GetByID", uint(10)).Return(merchantOwner(t, true), nil)
	deps.cascade.On("DeleteMerchantCascade", uint(7)).Return(int64(1), nil)
	deps.auditor.On("Record", mock.Anything, mock.Anything).Return(nil)

	code, err := totp.GenerateCode(totpSecret, time.Now())
	require.NoError(t, err)

	_, err = svc.DeleteMerchant(context.Background(), 7, ownerClaims(), Credentials{
		Password:       ownerPassword,
		TwoFactorToken: code,
	})

	require.NoError(t, err)
	// a passing TOTP code must not touch the backup codes
	deps.users.AssertNotCalled(t, "UpdateBackupCodes", mock.Anything, mock.Anything)
}

func TestDeleteMerchant_TwoFactorBackupCodeConsumed(t *testing.T) {
	svc, deps := newDeletionService(t)
	stubMerchant(deps)
	stubCleanAccount(deps)
	deps.users.On("GetByID", uint(10)).Return(merchantOwner(t, true, "code-aaa", "code-bbb", "code-ccc"), nil)
	deps.users.On("UpdateBackupCodes", uint(10), []string{"code-aaa", "code-ccc"}).Return(nil)
	deps.cascade.On("DeleteMerchantCascade", uint(7)).Return(int64(1), nil)
	deps.auditor.On("Record", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.DeleteMerchant(context.Background(), 7, ownerClaims(), Credentials{
		Password:       ownerPassword,
		TwoFactorToken: "code-bbb",
	})

	require.NoError(t, err)
	deps.users.AssertExpectations(t)
}

func TestDeleteMerchant_TwoFactorInvalidToken(t *testing.T) {
	svc, deps := newDeletionService(t)
	stubMerchant(deps)
	deps.users.On("GetByID", uint(10)).Return(merchantOwner(t, true, "code-aaa"), nil)

	_, err := svc.DeleteMerchant(context.Background(), 7, ownerClaims(), Credentials{
		Password:       ownerPassword,
		TwoFactorToken: "000000",
	})

	assert.ErrorIs(t, err, ErrInvalidTwoFactor)
	deps.users.AssertNotCalled(t, "UpdateBackupCodes", mock.Anything, mock.Anything)
	deps.cascade.AssertNotCalled(t, "DeleteMerchantCascade", mock.Anything)
}

func TestDeleteMerchant_OutstandingDebtBlocks(t *testing.T) {
	svc, deps := newDeletionService(t)
	stubMerchant(deps)
	deps.users.On("GetByID", uint(10)).Return(merchantOwner(t, false), nil)
	deps.billing.On("SumOutstanding", uint(7)).Return(float64(1250.50), nil)

	_, err := svc.DeleteMerchant(context.Background(), 7, ownerClaims(), Credentials{Password: ownerPassword})

	assert.ErrorIs(t, err, ErrOutstandingDebt)
	deps.subs.AssertNotCalled(t, "ListActiveUpdatedSince", mock.Anything, mock.Anything)
	deps.cascade.AssertNotCalled(t, "DeleteMerchantCascade", mock.Anything)
}

func TestDeleteMerchant_RecentSubscriptionBlocks(t *testing.T) {
	svc, deps := newDeletionService(t)
	stubMerchant(deps)
	deps.users.On("GetByID", uint(10)).Return(merchantOwner(t, false), nil)
	deps.billing.On("SumOutstanding", uint(7)).Return(float64(0), nil)

	var since time.Time
	deps.subs.On("ListActiveUpdatedSince", uint(7), mock.Anything).
		Run(func(args mock.Arguments) { since = args.Get(1).(time.Time) }).
		Return([]models.Subscription{{MerchantID: 7}}, nil)

	_, err := svc.DeleteMerchant(context.Background(), 7, ownerClaims(), Credentials{Password: ownerPassword})

	assert.ErrorIs(t, err, ErrRecentSubscription)
	assert.WithinDuration(t, time.Now().Add(-24*time.Hour), since, 2*time.Second)
	deps.cascade.AssertNotCalled(t, "DeleteMerchantCascade", mock.Anything)
}

func TestDeleteMerchant_SelfDeleteRequiresMerchantAdmin(t *testing.T) {
	svc, deps := newDeletionService(t)
	stubMerchant(deps)

	actor := &models.UserClaims{UserID: 11, Role: models.RoleMerchantStaff, MerchantID: 7}
	_, err := svc.DeleteMerchant(context.Background(), 7, actor, Credentials{Password: "x"})

	assert.ErrorIs(t, err, ErrForbidden)
	deps.cascade.AssertNotCalled(t, "DeleteMerchantCascade", mock.Anything)
}

func TestDeleteMerchant_AdminPath(t *testing.T) {
	svc, deps := newDeletionService(t)
	stubMerchant(deps)

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	admin := &models.User{Email: "root@platform.test", Password: string(hash), Role: models.RolePlatformAdmin}
	admin.ID = 1
	deps.users.On("GetByID", uint(1)).Return(admin, nil)
	deps.cascade.On("DeleteMerchantCascade", uint(7)).Return(int64(9), nil)
	deps.auditor.On("Record", mock.Anything, mock.Anything).Return(nil)

	actor := &models.UserClaims{UserID: 1, Role: models.RolePlatformAdmin}
	count, err := svc.DeleteMerchant(context.Background(), 7, actor, Credentials{AdminPassword: "admin-pass"})

	require.NoError(t, err)
	assert.Equal(t, int64(9), count)

	// the admin path skips the merchant-side checks entirely
	deps.billing.AssertNotCalled(t, "SumOutstanding", mock.Anything)
	deps.subs.AssertNotCalled(t, "ListActiveUpdatedSince", mock.Anything, mock.Anything)

	entry := deps.auditor.Calls[0].Arguments.Get(1).(audit.Entry)
	require.NotNil(t, entry.ActorID)
	assert.Equal(t, uint(1), *entry.ActorID)
}

func TestDeleteMerchant_AdminPasswordGate(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  error
	}{
		{"missing admin password", "", ErrAdminPasswordRequired},
		{"wrong admin password", "guess", ErrInvalidPassword},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, deps := newDeletionService(t)
			stubMerchant(deps)

			hash, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
			require.NoError(t, err)
			admin := &models.User{Password: string(hash), Role: models.RolePlatformAdmin}
			admin.ID = 1
			deps.users.On("GetByID", uint(1)).Return(admin, nil)

			actor := &models.UserClaims{UserID: 1, Role: models.RolePlatformAdmin}
			_, err = svc.DeleteMerchant(context.Background(), 7, actor, Credentials{AdminPassword: tt.password})

			assert.ErrorIs(t, err, tt.wantErr)
			deps.cascade.AssertNotCalled(t, "DeleteMerchantCascade", mock.Anything)
		})
	}
}

func TestDeleteMerchant_PlatformAdminOwnMerchant(t *testing.T) {
	svc, deps := newDeletionService(t)
	stubMerchant(deps)

	actor := &models.UserClaims{UserID: 1, Role: models.RolePlatformAdmin, MerchantID: 7}
	_, err := svc.DeleteMerchant(context.Background(), 7, actor, Credentials{AdminPassword: "admin-pass"})

	assert.ErrorIs(t, err, ErrOwnMerchant)
	deps.cascade.AssertNotCalled(t, "DeleteMerchantCascade", mock.Anything)
}

func TestDeleteMerchant_NonAdminCannotDeleteOtherMerchant(t *testing.T) {
	svc, deps := newDeletionService(t)
	stubMerchant(deps)

	actor := &models.UserClaims{UserID: 10, Role: models.RoleMerchantAdmin, MerchantID: 99}
	_, err := svc.DeleteMerchant(context.Background(), 7, actor, Credentials{Password: ownerPassword})

	assert.ErrorIs(t, err, ErrForbidden)
	deps.cascade.AssertNotCalled(t, "DeleteMerchantCascade", mock.Anything)
}

func TestVerifyTwoFactor_DoesNotMutateStoredCodes(t *testing.T) {
	user := merchantOwner(t, true, "code-aaa", "code-bbb")

	ok, remaining, consumed := verifyTwoFactor(user, "code-aaa")

	require.True(t, ok)
	assert.True(t, consumed)
	assert.Equal(t, []string{"code-bbb"}, remaining)
	// the caller persists the shrunken list; the in-memory user is untouched
	assert.Len(t, user.BackupCodes, 2)
}
