package log_repository

import (
	"context"
	"errors"
	"postman-backend/internal/model/entity"
)

var ErrLogNotFound = errors.New("log not found")

type LogRepository interface {
	Create(ctx context.Context, log *entity.RequestLog) error
	UpdateByID(ctx context.Context, id int64, log *entity.RequestLog) error
	FindByID(ctx context.Context, id int64) (*entity.RequestLog, error)
	ListPage(ctx context.Context, page, limit int) ([]*entity.RequestLog, int64, error)
	DeleteAll(ctx context.Context) (int64, error)

	Ping(ctx context.Context) error
}
