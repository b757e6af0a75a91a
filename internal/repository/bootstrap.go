package repository

import (
	"fmt"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"agriintel/internal/model"
)

// Open connects to the backing database and runs migrations. With a
// DATABASE_URL it dials postgres; otherwise it opens a local CGO-free
// sqlite file so the service runs self-contained.
func Open(databaseURL, dbPath string) (*gorm.DB, error) {
	var (
		db  *gorm.DB
		err error
	)
	gormCfg := &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)}

	if databaseURL != "" {
		db, err = gorm.Open(postgres.Open(databaseURL), gormCfg)
	} else {
		db, err = gorm.Open(sqlite.Open(dbPath), gormCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := db.AutoMigrate(
		&model.Farm{},
		&model.NdviSample{},
		&model.SoilParameter{},
		&model.WeatherSnapshot{},
		&model.MarketQuote{},
		&model.CropHealthRecord{},
		&model.Notification{},
	); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	return db, nil
}
