package database

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var (
	DB   *gorm.DB
	once sync.Once
)

// Connect opens (or creates) the single database file for this installation.
// One file per install, kept in the per-user application data directory unless
// DB_PATH points somewhere else.
func Connect() *gorm.DB {
	once.Do(func() {
		path := os.Getenv("DB_PATH")
		if path == "" {
			path = defaultPath()
		}

		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				log.Fatalf("failed to create data directory %s: %v", dir, err)
			}
		}

		// SQLite allows one writer at a time; serialize access through a
		// single connection instead of surfacing SQLITE_BUSY to callers.
		db, err := gorm.Open(sqlite.Open(path+"?_foreign_keys=on"), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to connect database: %v", err)
		}
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.SetMaxOpenConns(1)
		}

		DB = db
	})

	return DB
}

func GetDB() *gorm.DB {
	if DB == nil {
		return Connect()
	}
	return DB
}

func defaultPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		base = "."
	}
	return filepath.Join(base, "smarttales", "smarttales.db")
}
