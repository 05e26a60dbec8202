package database

import (
	"fmt"
	"time"

	"tujitume_backend/internal/config"
	"tujitume_backend/internal/logger"
	"tujitume_backend/internal/models"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OneAcceptedIndex - не больше одного принятого отклика на гиг
const OneAcceptedIndex = "ux_applications_one_accepted"

// Connect открывает пул GORM. Ошибки уникальности переводятся
// в gorm.ErrDuplicatedKey (TranslateError).
func Connect(cfg config.DatabaseConfig, debug bool) (*gorm.DB, error) {
	logLevel := gormlogger.Warn
	if debug {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(postgres.Open(cfg.DSN), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to GORM: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get *sql.DB from GORM: %w", err)
	}
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetimeMinutes) * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("database unavailable: %w", err)
	}
	return db, nil
}

// AutoMigrate выполняет миграцию всех моделей и создает частичный индекс,
// который AutoMigrate выразить не умеет.
func AutoMigrate(db *gorm.DB) error {
	start := time.Now()

	err := db.AutoMigrate(
		&models.User{},
		&models.Gig{},
		&models.Application{},
		&models.Review{},
		&models.Notification{},
	)
	if err == nil {
		err = db.Exec(fmt.Sprintf(
			"CREATE UNIQUE INDEX IF NOT EXISTS %s ON applications (gig_id) WHERE status = '%s'",
			OneAcceptedIndex, models.ApplicationStatusAccepted,
		)).Error
	}

	logger.DBLog("auto_migrate", time.Since(start), err)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
