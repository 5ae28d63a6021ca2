package app

import (
	"database/sql"
	"fmt"

	"contractor-erp/internal/config"
	"contractor-erp/internal/shared/connection"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type resources struct {
	gormDB *gorm.DB
	sqlDB  *sql.DB
	redis  *redis.Client
}

func connectDatabase(cfg *config.Config) (*gorm.DB, *sql.DB, error) {
	db := cfg.Database
	gormDB, err := connection.ConnectGORMWithRetry(db.Host, db.User, db.Password, db.Name, db.Port, db.SSLMode, db.MaxRetries)
	if err != nil {
		return nil, nil, err
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("get sql.DB: %w", err)
	}
	return gormDB, sqlDB, nil
}

func connectInfra(cfg *config.Config) (*resources, error) {
	gormDB, sqlDB, err := connectDatabase(cfg)
	if err != nil {
		return nil, err
	}

	rdb, err := connection.ConnectRedisWithRetry(cfg.Redis.Addr, cfg.Database.MaxRetries)
	if err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return &resources{gormDB: gormDB, sqlDB: sqlDB, redis: rdb}, nil
}

func (i *resources) Close() {
	if err := i.redis.Close(); err != nil {
		zap.L().Warn("close redis failed", zap.Error(err))
	}
	if err := i.sqlDB.Close(); err != nil {
		zap.L().Warn("close database failed", zap.Error(err))
	}
}
