package log_repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"postman-backend/internal/helper"
	"postman-backend/internal/model/entity"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

type LogRepositoryImpl struct {
	DB *gorm.DB
}

func NewLogRepository(db *gorm.DB) LogRepository {
	return &LogRepositoryImpl{DB: db}
}

func (R *LogRepositoryImpl) Create(ctx context.Context, log *entity.RequestLog) error {
	log.ID = 0
	log.Timestamp = helper.GetCurrentTime()
	log.Headers = entity.NewHeaders(log.Headers.Data())

	if err := R.DB.WithContext(ctx).Create(log).Error; err != nil {
		return fmt.Errorf("creating log: %w", err)
	}
	return nil
}

// UpdateByID overwrites every mutable column of row id, NULLs included.
// The timestamp always moves forward, even when the clock has not.
func (R *LogRepositoryImpl) UpdateByID(ctx context.Context, id int64, log *entity.RequestLog) error {
	err := R.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var current entity.RequestLog
		if err := tx.Select("id", "timestamp").Where("id = ?", id).Take(&current).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrLogNotFound
			}
			return err
		}

		now := helper.GetCurrentTime()
		if !now.After(current.Timestamp) {
			now = current.Timestamp.Add(time.Microsecond)
		}

		log.ID = id
		log.Timestamp = now
		log.Headers = entity.NewHeaders(log.Headers.Data())

		return tx.Model(&entity.RequestLog{ID: id}).Select("*").Omit("id").Updates(log).Error
	})
	if err != nil {
		if errors.Is(err, ErrLogNotFound) {
			return err
		}
		return fmt.Errorf("updating log %d: %w", id, err)
	}
	return nil
}

func (R *LogRepositoryImpl) FindByID(ctx context.Context, id int64) (*entity.RequestLog, error) {
	var log entity.RequestLog
	if err := R.DB.WithContext(ctx).Where("id = ?", id).Take(&log).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLogNotFound
		}
		return nil, fmt.Errorf("finding log %d: %w", id, err)
	}
	return &log, nil
}

// ListPage returns one page of logs, newest first, plus the total row count.
// Pages past the end come back empty.
func (R *LogRepositoryImpl) ListPage(ctx context.Context, page, limit int) ([]*entity.RequestLog, int64, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	db := R.DB.WithContext(ctx).Model(&entity.RequestLog{})

	var total int64
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("counting logs: %w", err)
	}

	logs := make([]*entity.RequestLog, 0, limit)
	if total == 0 || int64(offset) >= total {
		return logs, total, nil
	}

	err := R.DB.WithContext(ctx).
		Order(clause.OrderBy{Columns: []clause.OrderByColumn{
			{Column: clause.Column{Name: "timestamp"}, Desc: true},
			{Column: clause.Column{Name: "id"}, Desc: true},
		}}).
		Offset(offset).
		Limit(limit).
		Find(&logs).Error
	if err != nil {
		return nil, 0, fmt.Errorf("listing logs: %w", err)
	}
	return logs, total, nil
}

// DeleteAll removes every log and reports how many existed.
func (R *LogRepositoryImpl) DeleteAll(ctx context.Context) (int64, error) {
	var deleted int64
	err := R.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&entity.RequestLog{}).Count(&deleted).Error; err != nil {
			return err
		}
		return tx.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&entity.RequestLog{}).Error
	})
	if err != nil {
		return 0, fmt.Errorf("deleting logs: %w", err)
	}
	return deleted, nil
}

func (R *LogRepositoryImpl) Ping(ctx context.Context) error {
	sqlDB, err := R.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
