package handlers

import (
	"log"

	"sjfs/internal/repositories"
	"sjfs/internal/services/notification"
	"sjfs/internal/services/stock"
	"sjfs/internal/utils/pagination"
	"sjfs/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler exposes platform-operator maintenance endpoints.
type AdminHandler struct {
	stockService        stock.Service
	notificationService notification.Service
	userRepo            repositories.UserRepository
}

func NewAdminHandler(stockService stock.Service, notificationService notification.Service, userRepo repositories.UserRepository) *AdminHandler {
	return &AdminHandler{
		stockService:        stockService,
		notificationService: notificationService,
		userRepo:            userRepo,
	}
}

// StockSweep handles POST /api/admin/stock-sweep. The sweep itself runs on an
// external schedule; this endpoint is its trigger.
func (h *AdminHandler) StockSweep(c *fiber.Ctx) error {
	summary, err := h.stockService.Sweep(c.Context())
	if err != nil {
		log.Printf("stock sweep failed: %v", err)
		return response.ServerError(c, "Stock sweep failed")
	}
	return response.Success(c, "Stock sweep completed", summary)
}

// PurgeNotifications handles POST /api/admin/notifications/purge.
func (h *AdminHandler) PurgeNotifications(c *fiber.Ctx) error {
	purged, err := h.notificationService.PurgeRead(c.Context())
	if err != nil {
		log.Printf("notification purge failed: %v", err)
		return response.ServerError(c, "Notification purge failed")
	}
	return response.Success(c, "Read notifications purged", fiber.Map{"purged": purged})
}

// ListUsers handles GET /api/admin/users.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	p := pagination.ParseFromRequest(c)

	users, total, err := h.userRepo.List(p.Offset, p.Limit)
	if err != nil {
		log.Printf("Error fetching paginated users: %v", err)
		return response.ServerError(c, "Failed to fetch users")
	}

	p.Total = total
	return c.JSON(pagination.Response(p, users))
}
