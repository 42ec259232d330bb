package db

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"gorm.io/gorm"

	"lostark-hub/partyfinder/internal/config"
	"lostark-hub/partyfinder/internal/logging"
)

// Open connects GORM and sqlx for the configured driver.
func Open(cfg *config.Config) (*gorm.DB, *sqlx.DB, error) {
	switch cfg.DBDriver {
	case "sqlite":
		gdb, err := InitSQLiteORM(cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		sqlDB, err := SqlxFromGorm(gdb, "sqlite3")
		if err != nil {
			return nil, nil, err
		}
		return gdb, sqlDB, nil

	case "postgres":
		dsn := cfg.PostgresDSN()
		if err := InitPostgres(dsn); err != nil {
			return nil, nil, fmt.Errorf("failed to connect to postgres (sqlx): %w", err)
		}
		logging.Info("Connected to Postgres (sqlx)")

		gdb, err := InitPostgresORM(dsn)
		if err != nil {
			return nil, nil, err
		}
		return gdb, DB, nil
	}
	return nil, nil, fmt.Errorf("unsupported driver %q", cfg.DBDriver)
}
