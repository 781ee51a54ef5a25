package log_handler

import "github.com/gin-gonic/gin"

type LogHandler interface {
	SaveLog(c *gin.Context)
	ListLogs(c *gin.Context)
	GetLog(c *gin.Context)
	DeleteAllLogs(c *gin.Context)
}
