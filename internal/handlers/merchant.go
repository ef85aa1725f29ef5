package handlers

import (
	"errors"
	"log"

	"sjfs/internal/models"
	"sjfs/internal/repositories"
	"sjfs/internal/services/deletion"
	"sjfs/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type MerchantHandler struct {
	merchantRepo    repositories.MerchantRepository
	deletionService deletion.Service
}

func NewMerchantHandler(merchantRepo repositories.MerchantRepository, deletionService deletion.Service) *MerchantHandler {
	return &MerchantHandler{
		merchantRepo:    merchantRepo,
		deletionService: deletionService,
	}
}

// Get handles GET /api/merchants/:id.
func (h *MerchantHandler) Get(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	merchantID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid merchant id")
	}
	if claims.Role != models.RolePlatformAdmin && claims.MerchantID != merchantID {
		return response.Forbidden(c, "Not allowed to view this merchant")
	}

	merchant, err := h.merchantRepo.GetByID(merchantID)
	if err != nil {
		return response.NotFound(c, "Merchant not found")
	}
	return response.Success(c, "Merchant retrieved", fiber.Map{"merchant": merchant})
}

// Delete handles DELETE /api/merchants/:id.
func (h *MerchantHandler) Delete(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	merchantID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid merchant id")
	}

	var creds deletion.Credentials
	if err := c.BodyParser(&creds); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	staffCount, err := h.deletionService.DeleteMerchant(c.Context(), merchantID, claims, creds)
	if err != nil {
		return mapDeletionError(c, err)
	}

	return response.Success(c, "Merchant deleted", fiber.Map{
		"deletedStaffCount": staffCount,
	})
}

func mapDeletionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, deletion.ErrForbidden),
		errors.Is(err, deletion.ErrOwnMerchant):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, deletion.ErrPasswordRequired),
		errors.Is(err, deletion.ErrAdminPasswordRequired):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, deletion.ErrInvalidPassword),
		errors.Is(err, deletion.ErrTwoFactorRequired),
		errors.Is(err, deletion.ErrInvalidTwoFactor),
		errors.Is(err, deletion.ErrOutstandingDebt),
		errors.Is(err, deletion.ErrRecentSubscription):
		return response.PreconditionFailed(c, err.Error())
	case errors.Is(err, repositories.ErrMerchantNotFound):
		return response.NotFound(c, err.Error())
	default:
		log.Printf("merchant deletion: %v", err)
		return response.ServerError(c, "Merchant deletion failed")
	}
}
