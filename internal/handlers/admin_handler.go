package handlers

import (
	"rapidreads/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler serves the admin dashboard endpoints.
type AdminHandler struct {
	statsService *services.StatsService
}

func NewAdminHandler(statsService *services.StatsService) *AdminHandler {
	return &AdminHandler{statsService: statsService}
}

// RegisterRoutes registers the admin routes behind auth.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	router.Get("/admin/stats", auth, h.HandleStats)
}

func (h *AdminHandler) HandleStats(c *fiber.Ctx) error {
	stats, err := h.statsService.Stats(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}
