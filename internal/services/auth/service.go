package auth

import (
	"errors"
	"log"

	"sjfs/internal/models"
	"sjfs/internal/repositories"
	"sjfs/internal/utils"
	"sjfs/internal/validation"

	"golang.org/x/crypto/bcrypt"
)

type RegisterInput struct {
	BusinessName  string `json:"businessName"`
	BusinessEmail string `json:"businessEmail"`
	BusinessPhone string `json:"businessPhone"`
	AdminName     string `json:"adminName"`
	AdminEmail    string `json:"adminEmail"`
	Password      string `json:"password"`
}

type Service interface {
	Login(email, password string) (*models.User, string, string, error)
	Register(input RegisterInput) (*models.User, error)
	RefreshTokens(refreshToken string) (string, string, error)
	Logout(userID uint) error
	ChangePassword(userID uint, oldPassword, newPassword string) error
	GetUserTokenVersion(userID uint) (int, error)
	GetUserByID(userID uint) (*models.User, error)
}

type service struct {
	userRepo     repositories.UserRepository
	merchantRepo repositories.MerchantRepository
}

func NewService(userRepo repositories.UserRepository, merchantRepo repositories.MerchantRepository) Service {
	return &service{
		userRepo:     userRepo,
		merchantRepo: merchantRepo,
	}
}

func (s *service) Login(email, password string) (*models.User, string, string, error) {
	user, err := s.userRepo.GetByEmail(email)
	if err != nil {
		log.Printf("Login failed: user not found for email %s", email)
		return nil, "", "", errors.New("invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		log.Printf("Login failed: incorrect password for user ID %d", user.ID)
		return nil, "", "", errors.New("invalid credentials")
	}

	accessToken, refreshToken, err := utils.GenerateTokens(claimsFor(user))
	if err != nil {
		log.Println("Error generating tokens:", err)
		return nil, "", "", errors.New("error generating tokens")
	}

	return user, accessToken, refreshToken, nil
}

// Register creates a merchant together with its MERCHANT_ADMIN user.
func (s *service) Register(input RegisterInput) (*models.User, error) {
	if err := validation.ValidatePassword(input.Password); err != nil {
		return nil, err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.New("failed to hash password")
	}

	merchant := &models.Merchant{
		BusinessName:  input.BusinessName,
		BusinessEmail: input.BusinessEmail,
		BusinessPhone: input.BusinessPhone,
	}
	if err := s.merchantRepo.Create(merchant); err != nil {
		return nil, err
	}

	user := &models.User{
		Email:      input.AdminEmail,
		Password:   string(hashedPassword),
		Name:       input.AdminName,
		Role:       models.RoleMerchantAdmin,
		MerchantID: &merchant.ID,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	return user, nil
}

func (s *service) RefreshTokens(refreshToken string) (string, string, error) {
	_, claims, err := utils.ParseToken(refreshToken)
	if err != nil {
		return "", "", errors.New("invalid refresh token")
	}

	user, err := s.userRepo.GetByID(claims.UserID)
	if err != nil {
		return "", "", errors.New("user not found")
	}

	if user.TokenVersion != claims.TokenVersion {
		return "", "", errors.New("token version mismatch")
	}

	return utils.GenerateTokens(claimsFor(user))
}

func (s *service) Logout(userID uint) error {
	return s.userRepo.IncrementTokenVersion(userID)
}

func (s *service) ChangePassword(userID uint, oldPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return errors.New("failed to get user")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.New("invalid old password")
	}

	if err := validation.ValidatePassword(newPassword); err != nil {
		return err
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return errors.New("failed to hash password")
	}

	user.Password = string(hashedPassword)
	user.TokenVersion++ // Invalidate existing tokens

	if err := s.userRepo.Update(user); err != nil {
		return errors.New("failed to update password")
	}

	return nil
}

func (s *service) GetUserTokenVersion(userID uint) (int, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return 0, err
	}
	return user.TokenVersion, nil
}

func (s *service) GetUserByID(userID uint) (*models.User, error) {
	return s.userRepo.GetByID(userID)
}

func claimsFor(user *models.User) *models.UserClaims {
	var merchantID uint
	if user.MerchantID != nil {
		merchantID = *user.MerchantID
	}
	return &models.UserClaims{
		UserID:       user.ID,
		Email:        user.Email,
		Role:         user.Role,
		MerchantID:   merchantID,
		TokenVersion: user.TokenVersion,
		Permissions:  models.GetDefaultPermissions(user.Role),
	}
}
