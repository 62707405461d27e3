package database

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/showgrid/showgrid/internal/config"
)

func TestDSN(t *testing.T) {
	cfg := config.Config{
		DBUser: "showgrid",
		DBPass: "secret",
		DBHost: "db.internal",
		DBPort: "3306",
		DBName: "showgrid",
	}
	dsn := DSN(cfg)
	assert.Equal(t, "showgrid:secret@tcp(db.internal:3306)/showgrid?charset=utf8mb4&loc=UTC&parseTime=true", dsn)
}

func TestDSNWithoutPassword(t *testing.T) {
	cfg := config.Config{
		DBUser: "root",
		DBHost: "127.0.0.1",
		DBPort: "3307",
		DBName: "app",
	}
	dsn := DSN(cfg)
	assert.Equal(t, "root@tcp(127.0.0.1:3307)/app?charset=utf8mb4&loc=UTC&parseTime=true", dsn)
}
