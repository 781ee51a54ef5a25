package relay_handler

import (
	"net/http"
	"strconv"

	relay_service "postman-backend/internal/app/service/relay-service"
	"postman-backend/internal/helper"
	"postman-backend/internal/model/webrequest"
	"postman-backend/internal/model/webresponse"

	"github.com/gin-gonic/gin"
)

const UpstreamStatusHeader = "X-Upstream-Status"

type RelayHandlerImpl struct {
	RelayService relay_service.RelayService
}

func (R *RelayHandlerImpl) SendRequest(c *gin.Context) {
	var request webrequest.RelayRequest
	if err := helper.ReadJSON(c, &request); err != nil {
		helper.WriteBadJSON(c, err)
		return
	}

	response, statusCode := R.RelayService.SendRequest(c, request)
	writeRelayResponse(c, statusCode, response)
}

func (R *RelayHandlerImpl) ReplayLog(c *gin.Context) {
	response, statusCode := R.RelayService.ReplayLog(c, c.Param("id"))
	writeRelayResponse(c, statusCode, response)
}

// writeRelayResponse mirrors the target's status. Statuses that cannot carry a
// body are answered with 200 so the caller still receives its clientId.
func writeRelayResponse(c *gin.Context, statusCode int, response any) {
	if _, ok := response.(webresponse.RelayResponse); ok {
		c.Header(UpstreamStatusHeader, strconv.Itoa(statusCode))
		if !bodyAllowed(statusCode) {
			statusCode = http.StatusOK
		}
	}
	helper.WriteJSON(c, statusCode, response)
}

func bodyAllowed(status int) bool {
	switch {
	case status >= 100 && status <= 199:
		return false
	case status == http.StatusNoContent, status == http.StatusNotModified:
		return false
	}
	return true
}

func NewRelayHandler(service relay_service.RelayService) RelayHandler {
	return &RelayHandlerImpl{
		RelayService: service,
	}
}
