package relay_handler

import "github.com/gin-gonic/gin"

type RelayHandler interface {
	SendRequest(c *gin.Context)
	ReplayLog(c *gin.Context)
}
