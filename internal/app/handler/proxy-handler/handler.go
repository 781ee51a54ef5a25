package proxy_handler

import "github.com/gin-gonic/gin"

type ProxyHandler interface {
	Forward(c *gin.Context)
}
