package log_service

import (
	"context"
	"errors"
	"net/http"

	log_repository "postman-backend/internal/app/repository/log-repository"
	"postman-backend/internal/helper"
	"postman-backend/internal/logger"
	"postman-backend/internal/metrics"
	"postman-backend/internal/model/data"
	"postman-backend/internal/model/entity"
	"postman-backend/internal/model/webrequest"
	"postman-backend/internal/model/webresponse"

	"github.com/gin-gonic/gin"
)

const (
	MessageValidationFailed = "Validation failed"
	MessageInternalError    = "Internal server error"
	MessageLogNotFound      = "Log not found"
)

type LogServiceImpl struct {
	LogRepository log_repository.LogRepository
}

func NewLogService(repository log_repository.LogRepository) LogService {
	return &LogServiceImpl{
		LogRepository: repository,
	}
}

func (L *LogServiceImpl) SaveLog(c *gin.Context, request webrequest.SaveLogRequest) (any, int) {
	if validate := request.Validate(); len(validate) != 0 {
		return webresponse.MessageResponse{Message: MessageValidationFailed, Errors: validate}, http.StatusBadRequest
	}

	clientID, _ := request.TargetID()
	result, err := L.Upsert(c.Request.Context(), clientID, request.ToEntity())
	if err != nil {
		logger.AppLogger.Error().Err(err).Int64("client_id", clientID).Msg("Failed to save log")
		return webresponse.MessageResponse{Message: MessageInternalError}, http.StatusInternalServerError
	}

	if result.Created {
		return webresponse.SaveLogResponse{
			Message:  "Log saved",
			Log:      result.Log,
			ClientID: result.Log.ID,
		}, http.StatusCreated
	}
	return webresponse.SaveLogResponse{
		Message:  "Log updated",
		Log:      result.Log,
		ClientID: result.Log.ID,
	}, http.StatusOK
}

func (L *LogServiceImpl) Upsert(ctx context.Context, clientID int64, log *entity.RequestLog) (UpsertResult, error) {
	if clientID > 0 {
		err := L.LogRepository.UpdateByID(ctx, clientID, log)
		if err == nil {
			metrics.ObserveUpsert(false)
			return UpsertResult{Log: log, Created: false}, nil
		}
		if !errors.Is(err, log_repository.ErrLogNotFound) {
			return UpsertResult{}, err
		}
		logger.AppLogger.Debug().Int64("client_id", clientID).Msg("Unknown clientId, creating a new log")
	}

	if err := L.LogRepository.Create(ctx, log); err != nil {
		return UpsertResult{}, err
	}
	metrics.ObserveUpsert(true)
	return UpsertResult{Log: log, Created: true}, nil
}

func (L *LogServiceImpl) ListLogs(c *gin.Context, request webrequest.ListLogRequest) (any, int) {
	if validate := request.Validate(); len(validate) != 0 {
		return webresponse.MessageResponse{Message: MessageValidationFailed, Errors: validate}, http.StatusBadRequest
	}

	page, limit := request.PageValue(), request.LimitValue()
	logs, total, err := L.LogRepository.ListPage(c.Request.Context(), page, limit)
	if err != nil {
		logger.AppLogger.Error().Err(err).Int("page", page).Int("limit", limit).Msg("Failed to list logs")
		return webresponse.MessageResponse{Message: MessageInternalError}, http.StatusInternalServerError
	}

	return webresponse.ListLogsResponse{
		Logs:       logs,
		Total:      total,
		Page:       page,
		TotalPages: int((total + int64(limit) - 1) / int64(limit)),
	}, http.StatusOK
}

func (L *LogServiceImpl) GetLog(c *gin.Context, rawID string) (any, int) {
	id, ok := helper.ParsePositiveInt(rawID)
	if !ok {
		return webresponse.MessageResponse{
			Message: MessageValidationFailed,
			Errors:  []data.ValidationErrorData{{Field: "id", Message: "ID must be a positive integer"}},
		}, http.StatusBadRequest
	}

	log, err := L.FindLog(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, log_repository.ErrLogNotFound) {
			return webresponse.MessageResponse{Message: MessageLogNotFound}, http.StatusNotFound
		}
		logger.AppLogger.Error().Err(err).Int64("id", id).Msg("Failed to fetch log")
		return webresponse.MessageResponse{Message: "Error fetching log"}, http.StatusInternalServerError
	}

	return webresponse.GetLogResponse{Log: log}, http.StatusOK
}

func (L *LogServiceImpl) FindLog(ctx context.Context, id int64) (*entity.RequestLog, error) {
	return L.LogRepository.FindByID(ctx, id)
}

func (L *LogServiceImpl) DeleteAllLogs(c *gin.Context) (any, int) {
	deleted, err := L.LogRepository.DeleteAll(c.Request.Context())
	if err != nil {
		logger.AppLogger.Error().Err(err).Msg("Failed to delete logs")
		return webresponse.MessageResponse{Message: MessageInternalError}, http.StatusInternalServerError
	}

	logger.AppLogger.Info().Int64("deleted", deleted).Msg("Logs cleared")
	return webresponse.DeleteLogsResponse{
		Message:      "All logs deleted",
		DeletedCount: deleted,
	}, http.StatusOK
}
