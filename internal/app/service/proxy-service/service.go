package proxy_service

import (
	"postman-backend/internal/model/webrequest"
	"postman-backend/internal/relayclient"

	"github.com/gin-gonic/gin"
)

type ProxyService interface {
	// Forward returns the upstream response on success, or a JSON error body
	// with its status when the request was rejected or could not be delivered.
	Forward(c *gin.Context, request webrequest.ProxyRequest) (*relayclient.ForwardResponse, any, int)
}
