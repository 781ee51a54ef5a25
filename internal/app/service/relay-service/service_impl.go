package relay_service

import (
	"context"
	"errors"
	"net/http"
	"time"

	log_repository "postman-backend/internal/app/repository/log-repository"
	log_service "postman-backend/internal/app/service/log-service"
	"postman-backend/internal/helper"
	"postman-backend/internal/logger"
	"postman-backend/internal/metrics"
	"postman-backend/internal/model/data"
	"postman-backend/internal/model/entity"
	"postman-backend/internal/model/webrequest"
	"postman-backend/internal/model/webresponse"
	"postman-backend/internal/relayclient"

	"github.com/gin-gonic/gin"
)

const (
	messageRelaySucceeded = "Request successful and logged!"
	messageRelayFailed    = "Request failed and logged!"

	// recordTimeout bounds the log write, which outlives the caller's context.
	recordTimeout = 10 * time.Second
)

// Relayer performs outbound calls. *relayclient.Client satisfies it.
type Relayer interface {
	Do(ctx context.Context, call relayclient.Call) relayclient.Outcome
}

type RelayServiceImpl struct {
	LogService log_service.LogService
	Relayer    Relayer
}

func NewRelayService(logService log_service.LogService, relayer Relayer) RelayService {
	return &RelayServiceImpl{
		LogService: logService,
		Relayer:    relayer,
	}
}

func (R *RelayServiceImpl) SendRequest(c *gin.Context, request webrequest.RelayRequest) (any, int) {
	if validate := request.Validate(); len(validate) != 0 {
		return webresponse.MessageResponse{Message: log_service.MessageValidationFailed, Errors: validate}, http.StatusBadRequest
	}

	target, err := relayclient.ApplyParams(request.URL, request.ParamMap())
	if err != nil {
		target = request.URL
	}

	clientID, _ := request.TargetID()
	return R.relayAndRecord(c.Request.Context(), clientID, relayclient.Call{
		Method:  request.Method,
		URL:     target,
		Headers: request.HeaderMap(),
		Body:    request.Body(),
	})
}

// ReplayLog sends a stored request again and records the outcome on the same row.
func (R *RelayServiceImpl) ReplayLog(c *gin.Context, rawID string) (any, int) {
	id, ok := helper.ParsePositiveInt(rawID)
	if !ok {
		return webresponse.MessageResponse{
			Message: log_service.MessageValidationFailed,
			Errors:  []data.ValidationErrorData{{Field: "id", Message: "ID must be a positive integer"}},
		}, http.StatusBadRequest
	}

	stored, err := R.LogService.FindLog(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, log_repository.ErrLogNotFound) {
			return webresponse.MessageResponse{Message: log_service.MessageLogNotFound}, http.StatusNotFound
		}
		logger.AppLogger.Error().Err(err).Int64("id", id).Msg("Failed to load log for replay")
		return webresponse.MessageResponse{Message: log_service.MessageInternalError}, http.StatusInternalServerError
	}

	return R.relayAndRecord(c.Request.Context(), id, relayclient.Call{
		Method:  stored.Method,
		URL:     stored.URL,
		Headers: stored.HeaderMap(),
		Body:    stored.RequestBody,
	})
}

// relayAndRecord performs call and upserts exactly one log row for the outcome,
// successful or not. The row is written even when the caller has gone away.
func (R *RelayServiceImpl) relayAndRecord(ctx context.Context, clientID int64, call relayclient.Call) (any, int) {
	outcome := R.Relayer.Do(ctx, call)
	metrics.ObserveRelay(call.Method, outcome.Failed(), outcome.Elapsed)

	log := &entity.RequestLog{
		Method:       call.Method,
		URL:          call.URL,
		Headers:      entity.NewHeaders(call.Headers),
		RequestBody:  call.Body,
		ResponseBody: outcome.Body,
		StatusCode:   outcome.StatusCode,
		ResponseTime: outcome.ResponseTimeMillis(),
		Error:        outcome.ErrorMessage(),
	}

	recordCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), recordTimeout)
	defer cancel()

	result, err := R.LogService.Upsert(recordCtx, clientID, log)
	if err != nil {
		logger.AppLogger.Error().Err(err).Str("method", call.Method).Str("url", call.URL).Msg("Failed to record relayed request")
		return webresponse.MessageResponse{Message: log_service.MessageInternalError}, http.StatusInternalServerError
	}

	if outcome.Failed() {
		logger.AppLogger.Warn().Err(outcome.Err).
			Str("method", call.Method).
			Str("url", call.URL).
			Int64("client_id", result.Log.ID).
			Msg("Relayed request failed")

		return webresponse.RelayResponse{
			Message:  messageRelayFailed,
			Error:    outcome.Err.Error(),
			ClientID: result.Log.ID,
			Log:      result.Log,
		}, outcome.StatusCode
	}

	body := outcome.Body
	return webresponse.RelayResponse{
		Message:  messageRelaySucceeded,
		Response: &body,
		ClientID: result.Log.ID,
		Log:      result.Log,
	}, outcome.StatusCode
}
