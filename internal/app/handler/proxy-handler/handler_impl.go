package proxy_handler

import (
	proxy_service "postman-backend/internal/app/service/proxy-service"
	"postman-backend/internal/helper"
	"postman-backend/internal/model/webrequest"

	"github.com/gin-gonic/gin"
)

type ProxyHandlerImpl struct {
	ProxyService proxy_service.ProxyService
}

func (P *ProxyHandlerImpl) Forward(c *gin.Context) {
	var request webrequest.ProxyRequest
	if err := helper.ReadJSON(c, &request); err != nil {
		helper.WriteBadJSON(c, err)
		return
	}

	upstream, response, statusCode := P.ProxyService.Forward(c, request)
	if upstream == nil {
		helper.WriteJSON(c, statusCode, response)
		return
	}

	contentType := upstream.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	c.Data(upstream.StatusCode, contentType, upstream.Body)
}

func NewProxyHandler(service proxy_service.ProxyService) ProxyHandler {
	return &ProxyHandlerImpl{
		ProxyService: service,
	}
}
