package relay_service

import (
	"postman-backend/internal/model/webrequest"

	"github.com/gin-gonic/gin"
)

type RelayService interface {
	SendRequest(c *gin.Context, request webrequest.RelayRequest) (any, int)
	ReplayLog(c *gin.Context, rawID string) (any, int)
}
