package proxy_service

import (
	"context"
	"net/http"
	"strings"

	log_service "postman-backend/internal/app/service/log-service"
	"postman-backend/internal/logger"
	"postman-backend/internal/model/webrequest"
	"postman-backend/internal/model/webresponse"
	"postman-backend/internal/relayclient"

	"github.com/gin-gonic/gin"
)

type Forwarder interface {
	Forward(ctx context.Context, method, target string, body []byte) (*relayclient.ForwardResponse, error)
}

type ProxyServiceImpl struct {
	Forwarder Forwarder
	APIBase   string
}

func NewProxyService(forwarder Forwarder, apiBase string) ProxyService {
	return &ProxyServiceImpl{
		Forwarder: forwarder,
		APIBase:   strings.TrimRight(apiBase, "/"),
	}
}

func (P *ProxyServiceImpl) Forward(c *gin.Context, request webrequest.ProxyRequest) (*relayclient.ForwardResponse, any, int) {
	if validate := request.Validate(); len(validate) != 0 {
		return nil, webresponse.MessageResponse{Message: log_service.MessageValidationFailed, Errors: validate}, http.StatusBadRequest
	}

	target, err := relayclient.ApplyParams(P.APIBase+request.Endpoint, request.ParamMap())
	if err != nil {
		logger.AppLogger.Error().Err(err).Str("api_base", P.APIBase).Msg("Invalid proxy target")
		return nil, gin.H{"error": "Error making API request"}, http.StatusInternalServerError
	}

	upstream, err := P.Forwarder.Forward(c.Request.Context(), request.MethodOrDefault(), target, request.BodyBytes())
	if err != nil {
		logger.AppLogger.Error().Err(err).Str("target", target).Msg("Proxy error")
		return nil, gin.H{"error": "Error making API request"}, http.StatusBadGateway
	}
	return upstream, nil, upstream.StatusCode
}
