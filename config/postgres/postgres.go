package postgres

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"Mafia/config"
	models "Mafia/models/postgres"
	mlog "Mafia/utils/logger"

	_ "github.com/lib/pq"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GormConfig builds the GORM settings. A verbose config logs every query.
func GormConfig(verbose bool) *gorm.Config {
	gormConfig := &gorm.Config{}
	if verbose {
		newLogger := logger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags), // io writer
			logger.Config{
				SlowThreshold:             time.Second, // Slow SQL threshold
				LogLevel:                  logger.Info, // Log level (Silent, Error, Warn, Info)
				IgnoreRecordNotFoundError: false,       // Ignore ErrRecordNotFound error for logger
				Colorful:                  true,        // Enable color
			},
		)
		gormConfig.Logger = newLogger
	} else {
		gormConfig.Logger = logger.Default.LogMode(logger.Warn)
	}
	return gormConfig
}

// ConnectGORM returns a GORM DB instance connected to PostgreSQL
func ConnectGORM(cfg config.PostgresConfig) (*gorm.DB, error) {
	// NOTE: See https://github.com/go-gorm/gorm/issues/5409
	sqlDB, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("error connecting to PostgreSQL: %w", err)
	}

	db, err := gorm.Open(pgdriver.New(pgdriver.Config{
		Conn:                 sqlDB,
		PreferSimpleProtocol: true,
	}), GormConfig(cfg.Verbose))
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error connecting to PostgreSQL with GORM: %w", err)
	}

	// Verify connection
	if err := sqlDB.Ping(); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error pinging PostgreSQL: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	mlog.Infof("Connected to PostgreSQL at %s:%s", cfg.Host, cfg.Port)
	return db, nil
}

// MigrateDatabase migrates the GORM models to the PostgreSQL database
func MigrateDatabase(db *gorm.DB) error {
	// NOTE: needs postgres driver v1.4.0, see https://github.com/pilinux/gorest/issues/167#issuecomment-1947114560
	// NOTE: for more info, execute db.Debug().AutoMigrate(...)
	if err := db.AutoMigrate(models.GameRecord{}); err != nil {
		return fmt.Errorf("auto migration failed: %w", err)
	}
	mlog.Info("PostgreSQL database migrated successfully")
	return nil
}

// CloseGORM closes the connection pool behind db.
func CloseGORM(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("error reading GORM PostgreSQL instance: %w", err)
	}
	return sqlDB.Close()
}
