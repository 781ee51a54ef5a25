package log_handler

import (
	log_service "postman-backend/internal/app/service/log-service"
	"postman-backend/internal/helper"
	"postman-backend/internal/model/webrequest"

	"github.com/gin-gonic/gin"
)

type LogHandlerImpl struct {
	LogService log_service.LogService
}

func (L *LogHandlerImpl) SaveLog(c *gin.Context) {
	var request webrequest.SaveLogRequest
	if err := helper.ReadJSON(c, &request); err != nil {
		helper.WriteBadJSON(c, err)
		return
	}

	response, statusCode := L.LogService.SaveLog(c, request)
	helper.WriteJSON(c, statusCode, response)
}

func (L *LogHandlerImpl) ListLogs(c *gin.Context) {
	request := webrequest.ListLogRequest{
		Page:  c.Query("page"),
		Limit: c.Query("limit"),
	}

	response, statusCode := L.LogService.ListLogs(c, request)
	helper.WriteJSON(c, statusCode, response)
}

func (L *LogHandlerImpl) GetLog(c *gin.Context) {
	response, statusCode := L.LogService.GetLog(c, c.Param("id"))
	helper.WriteJSON(c, statusCode, response)
}

func (L *LogHandlerImpl) DeleteAllLogs(c *gin.Context) {
	response, statusCode := L.LogService.DeleteAllLogs(c)
	helper.WriteJSON(c, statusCode, response)
}

func NewLogHandler(service log_service.LogService) LogHandler {
	return &LogHandlerImpl{
		LogService: service,
	}
}
