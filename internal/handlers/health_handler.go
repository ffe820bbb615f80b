package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/config"
	"github.com/ahmetcoskunkizilkaya/seal-bridge/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	service string
	banner  string
	cfg     *config.Config
}

func NewHealthHandler(service, banner string, cfg *config.Config) *HealthHandler {
	return &HealthHandler{service: service, banner: banner, cfg: cfg}
}

// Root answers with a plain-text banner.
func (h *HealthHandler) Root(c *fiber.Ctx) error {
	return c.SendString(h.banner)
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	return c.JSON(dto.HealthResponse{
		OK:                  true,
		Status:              "ok",
		Service:             h.service,
		Timestamp:           time.Now().UTC().Format(time.RFC3339),
		SealTokenConfigured: h.cfg.SealTokenConfigured(),
	})
}
