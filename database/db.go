package database

import (
	"errors"
	"io/fs"
	"os"
	"path"
	"strings"
	"time"

	"github.com/protorns/tg-miniapp-server/config"
	"github.com/protorns/tg-miniapp-server/database/model"
	"github.com/protorns/tg-miniapp-server/logger"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var db *gorm.DB

func GetDBProvider() *gorm.DB {
	return GetDB()
}

func initModels() error {
	models := []any{
		&model.User{},
		&model.Setting{},
	}
	for _, model := range models {
		if err := db.AutoMigrate(model); err != nil {
			logger.Errorf("Error auto migrating model: %v", err)
			return err
		}
	}
	return nil
}

// InitDB opens the database. A non-empty dsn selects Postgres (the hosted
// setup); otherwise sqlitePath is opened, creating the folder when needed.
func InitDB(dsn string, sqlitePath string) error {
	var gormLogger gormlogger.Interface
	if config.IsDebug() {
		gormLogger = gormlogger.Default
	} else {
		gormLogger = gormlogger.Discard
	}

	c := &gorm.Config{
		Logger: gormLogger,
	}

	var err error
	if dsn != "" {
		db, err = gorm.Open(postgres.Open(dsn), c)
		if err != nil {
			return err
		}
	} else {
		dir := path.Dir(sqlitePath)
		if err := os.MkdirAll(dir, fs.ModePerm); err != nil {
			return err
		}
		db, err = gorm.Open(sqlite.Open(sqlitePath), c)
		if err != nil {
			return err
		}
	}

	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	if dsn == "" {
		// SQLite only: WAL keeps readers from blocking the upsert path.
		db.Exec("PRAGMA journal_mode=WAL;")
		db.Exec("PRAGMA synchronous=NORMAL;")
	}

	return initModels()
}

func CloseDB() error {
	if db != nil {
		sqlDB, err := db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}

func GetDB() *gorm.DB {
	return db
}

// Ping verifies the underlying connection, used by the health endpoint.
func Ping() error {
	if db == nil {
		return errors.New("database not initialized")
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// IsPostgres reports whether the active connection talks to Postgres.
func IsPostgres() bool {
	return db != nil && strings.Contains(db.Dialector.Name(), "postgres")
}

// WithTx runs fn inside a transaction, committing on nil and rolling back on
// error.
func WithTx(fn func(tx *gorm.DB) error) error {
	tx := db.Begin()
	if tx.Error != nil {
		return tx.Error
	}

	if err := fn(tx); err != nil {
		tx.Rollback()
		return err
	}
	return tx.Commit().Error
}

// WithTxResult is WithTx for operations that produce a value.
func WithTxResult[T any](fn func(tx *gorm.DB) (T, error)) (T, error) {
	var zero T
	tx := db.Begin()
	if tx.Error != nil {
		return zero, tx.Error
	}

	result, err := fn(tx)
	if err != nil {
		tx.Rollback()
		return zero, err
	}
	return result, tx.Commit().Error
}
