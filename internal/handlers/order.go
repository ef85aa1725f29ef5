package handlers

import (
	"errors"
	"log"
	"strconv"

	"sjfs/internal/models"
	"sjfs/internal/repositories"
	"sjfs/internal/services/order"
	"sjfs/internal/utils/pagination"
	"sjfs/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

type OrderHandler struct {
	orderService order.Service
}

func NewOrderHandler(orderService order.Service) *OrderHandler {
	return &OrderHandler{orderService: orderService}
}

// UpdateStatus handles PUT /api/orders/:id.
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	orderID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid order id")
	}

	var input struct {
		Status         string `json:"status"`
		Notes          string `json:"notes"`
		TrackingNumber string `json:"trackingNumber"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if input.Status == "" {
		return response.BadRequest(c, "Status is required")
	}

	updated, effects, err := h.orderService.Transition(c.Context(), orderID,
		models.OrderStatus(input.Status), claims, order.TransitionInput{
			Notes:          input.Notes,
			TrackingNumber: input.TrackingNumber,
		})
	if err != nil {
		return mapOrderError(c, err)
	}

	// Side-effect failures are logged, never surfaced as request failures.
	for _, effect := range effects {
		if !effect.OK && !effect.Skipped {
			log.Printf("order %d: side effect %s failed: %s", updated.ID, effect.Kind, effect.Error)
		}
	}

	return response.Success(c, "Order status updated", fiber.Map{
		"order":        updated,
		"side_effects": effects,
	})
}

// Split handles POST /api/orders/:id/split.
func (h *OrderHandler) Split(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	orderID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid order id")
	}

	var input struct {
		WarehouseID uint                   `json:"warehouseId"`
		Items       []order.SplitItemInput `json:"items"`
	}
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}

	split, err := h.orderService.Split(c.Context(), orderID, input.WarehouseID, input.Items, claims)
	if err != nil {
		return mapOrderError(c, err)
	}

	return response.Success(c, "Order split created", fiber.Map{"split": split})
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)

	var input order.CreateInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request format")
	}
	if claims.MerchantID != 0 {
		input.MerchantID = claims.MerchantID
	}
	if input.MerchantID == 0 || input.CustomerName == "" {
		return response.BadRequest(c, "Merchant and customer name are required")
	}

	created, effects, err := h.orderService.Create(c.Context(), claims, input)
	if err != nil {
		return mapOrderError(c, err)
	}

	return response.Success(c, "Order created", fiber.Map{
		"order":        created,
		"side_effects": effects,
	})
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	orderID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid order id")
	}

	ord, err := h.orderService.Get(c.Context(), orderID)
	if err != nil {
		return mapOrderError(c, err)
	}
	return response.Success(c, "Order retrieved", fiber.Map{"order": ord})
}

// List handles GET /api/orders for the caller's merchant.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	claims := c.Locals("claims").(*models.UserClaims)
	p := pagination.ParseFromRequest(c)

	orders, total, err := h.orderService.ListByMerchant(c.Context(), claims.MerchantID, p.Offset, p.Limit)
	if err != nil {
		return response.ServerError(c, "Failed to fetch orders")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, orders))
}

func mapOrderError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrItemNotInOrder),
		errors.Is(err, order.ErrNoItems),
		errors.Is(err, order.ErrInvalidAmount):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, order.ErrRoleForbidden):
		return response.Forbidden(c, err.Error())
	case errors.Is(err, repositories.ErrOrderNotFound),
		errors.Is(err, repositories.ErrWarehouseNotFound):
		return response.NotFound(c, err.Error())
	default:
		log.Printf("order handler: %v", err)
		return response.ServerError(c, "Order operation failed")
	}
}

func parseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}
