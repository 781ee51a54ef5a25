package health_handler

import (
	"context"
	"net/http"
	"time"

	"postman-backend/internal/logger"
	"postman-backend/internal/model/webresponse"

	"github.com/gin-gonic/gin"
)

// Pinger reports whether the backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	DB Pinger
}

func NewHealthHandler(db Pinger) *HealthHandler {
	return &HealthHandler{DB: db}
}

func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := h.DB.Ping(ctx); err != nil {
		logger.AppLogger.Error().Err(err).Msg("Health check failed")
		c.JSON(http.StatusServiceUnavailable, webresponse.HealthResponse{Status: "unavailable", Database: "down"})
		return
	}
	c.JSON(http.StatusOK, webresponse.HealthResponse{Status: "ok", Database: "up"})
}
