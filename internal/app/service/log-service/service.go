package log_service

import (
	"context"
	"postman-backend/internal/model/entity"
	"postman-backend/internal/model/webrequest"

	"github.com/gin-gonic/gin"
)

// UpsertResult reports the stored row and whether it was newly created.
type UpsertResult struct {
	Log     *entity.RequestLog
	Created bool
}

type LogService interface {
	SaveLog(c *gin.Context, request webrequest.SaveLogRequest) (any, int)
	ListLogs(c *gin.Context, request webrequest.ListLogRequest) (any, int)
	GetLog(c *gin.Context, rawID string) (any, int)
	DeleteAllLogs(c *gin.Context) (any, int)

	// Upsert updates row clientID when it exists and creates a new row otherwise.
	// A clientID <= 0 always creates.
	Upsert(ctx context.Context, clientID int64, log *entity.RequestLog) (UpsertResult, error)
	FindLog(ctx context.Context, id int64) (*entity.RequestLog, error)
}
