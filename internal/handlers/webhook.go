package handlers

import (
	"errors"

	"sjfs/internal/models"
	"sjfs/internal/repositories"
	"sjfs/internal/services/webhook"
	"sjfs/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type WebhookHandler struct {
	webhookService webhook.Service
}

func NewWebhookHandler(webhookService webhook.Service) *WebhookHandler {
	return &WebhookHandler{webhookService: webhookService}
}

// Create handles POST /api/webhooks.
func (h *WebhookHandler) Create(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	if claims.MerchantID == 0 {
		return response.Forbidden(c, "Only merchant users can manage webhooks")
	}

	var input webhook.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.URL == "" || len(input.Events) == 0 {
		return response.BadRequest(c, "URL and at least one event are required")
	}

	hook, err := h.webhookService.Register(c.Context(), claims.MerchantID, input)
	if err != nil {
		if errors.Is(err, webhook.ErrUnknownEvent) {
			return response.BadRequest(c, err.Error())
		}
		return response.ServerError(c, "Failed to create webhook")
	}

	// The secret is returned once, on creation.
	return response.Success(c, "Webhook created", fiber.Map{"webhook": hook})
}

// List handles GET /api/webhooks.
func (h *WebhookHandler) List(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	if claims.MerchantID == 0 {
		return response.Forbidden(c, "Only merchant users can manage webhooks")
	}

	hooks, err := h.webhookService.ListByMerchant(c.Context(), claims.MerchantID)
	if err != nil {
		return response.ServerError(c, "Failed to fetch webhooks")
	}
	return response.Success(c, "Webhooks retrieved", fiber.Map{"webhooks": hooks})
}

// Delete handles DELETE /api/webhooks/:id.
func (h *WebhookHandler) Delete(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	if claims.MerchantID == 0 {
		return response.Forbidden(c, "Only merchant users can manage webhooks")
	}

	id, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid webhook id")
	}

	if err := h.webhookService.Delete(c.Context(), id, claims.MerchantID); err != nil {
		if errors.Is(err, repositories.ErrWebhookNotFound) {
			return response.NotFound(c, err.Error())
		}
		return response.ServerError(c, "Failed to delete webhook")
	}
	return response.Success(c, "Webhook deleted", nil)
}
