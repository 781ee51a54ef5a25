package database

import (
	"fmt"
	"postman-backend/internal/config"
	"postman-backend/internal/logger"
	"postman-backend/internal/model/entity"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDatabase opens the configured database, applies pool settings and migrates
// the schema. Callers own the returned handle.
func InitDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.NewGormLogger(logger.AppLogger),
	})
	if err != nil {
		return nil, fmt.Errorf("connecting to %s: %w", cfg.Driver, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	if cfg.Driver == "sqlite" {
		// a single connection keeps ":memory:" databases shared and serializes writers
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.AppLogger.Info().Str("driver", cfg.Driver).Msg("Database connection established")
	return db, nil
}

// Migrate creates or additively evolves the request_logs table.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&entity.RequestLog{}); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}
	return nil
}

func dialectorFor(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "postgres", "postgresql", "":
		return postgres.Open(PostgresDSN(cfg)), nil
	case "sqlite":
		return sqlite.Open(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}
}

func PostgresDSN(cfg config.DatabaseConfig) string {
	if cfg.URL != "" {
		return cfg.URL
	}
	return "host=" + cfg.Host +
		" user=" + cfg.User +
		" dbname=" + cfg.Name +
		" password=" + cfg.Password +
		" port=" + cfg.Port +
		" sslmode=" + cfg.SSLMode +
		" TimeZone=UTC" +
		" search_path=" + cfg.Schema
}
