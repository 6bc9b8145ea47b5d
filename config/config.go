package config

import (
	"fmt"
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// InitDB opens the single process-wide database connection. The handle
// is passed into every controller and service; nothing else opens one.
func InitDB() (*gorm.DB, error) {
	driver := os.Getenv("DB_DRIVER")
	if driver == "" {
		driver = "mysql"
	}

	switch driver {
	case "mysql":
		dsn := os.Getenv("DB_DSN")
		if dsn == "" {
			dsn = fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
				os.Getenv("DB_USER"),
				os.Getenv("DB_PASSWORD"),
				envOr("DB_HOST", "127.0.0.1"),
				envOr("DB_PORT", "3306"),
				envOr("DB_NAME", "gotogether"),
			)
		}
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	case "sqlite":
		path := envOr("DB_DSN", "gotogether.db")
		return gorm.Open(sqlite.Open(path), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
