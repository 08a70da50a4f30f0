package health

import (
	"grants-backend/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Handlers struct {
	Rdb *redis.Client
	DB  *gorm.DB
}

// JSON serves GET /health/json.
func (h *Handlers) JSON(c *fiber.Ctx) error {
	result := CollectHealth(c.Context(), h.Rdb, h.DB)
	return c.JSON(result)
}

// Reset serves GET /health/reset: clears the traffic counters.
func (h *Handlers) Reset(c *fiber.Ctx) error {
	if h.Rdb != nil {
		h.Rdb.Del(c.Context(),
			middleware.KeyReqTotal,
			middleware.KeyReqErrors,
			middleware.KeyResTime,
			middleware.KeyResCount,
			middleware.KeyLastReq,
		)
	}
	return c.JSON(fiber.Map{"reset": true})
}
