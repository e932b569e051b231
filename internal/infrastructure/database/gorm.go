package database

import (
	"fmt"
	"log"
	"regexp"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dsnPassword = regexp.MustCompile(`(password=)([^\s]+)|(://[^:]+:)([^@]+)(@)`)

// ConnectGorm opens a postgres or sqlite database, retrying postgres while
// the container starts.
func ConnectGorm(driver, dsn string, debug bool) (*gorm.DB, error) {
	logLevel := logger.Silent
	if debug {
		logLevel = logger.Info
	}
	cfg := &gorm.Config{Logger: logger.Default.LogMode(logLevel), TranslateError: true}

	var dialector gorm.Dialector
	attempts := 1
	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
		attempts = 10
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	var db *gorm.DB
	var err error
	for i := 0; i < attempts; i++ {
		db, err = gorm.Open(dialector, cfg)
		if err == nil {
			break
		}
		log.Printf("[database][gorm] connect attempt=%d err=%v", i+1, err)
		if i < attempts-1 {
			time.Sleep(2 * time.Second)
		}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to connect database after retries: %w", err)
	}
	if err := db.Exec("SELECT 1").Error; err != nil {
		return nil, fmt.Errorf("db ping failed: %w", err)
	}

	log.Printf("[database][gorm] connected driver=%s dsn=%s", driver, MaskDSN(dsn))
	return db, nil
}

// MaskDSN hides the password of a key/value or URL style DSN.
func MaskDSN(dsn string) string {
	return dsnPassword.ReplaceAllString(dsn, "${1}${3}***${5}")
}
