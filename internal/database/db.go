package database

import (
	"context"
	"database/sql"
	"net"
	"net/url"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/showgrid/showgrid/internal/config"
)

// Pool sizing: the service is request-bound with short transactions,
// so a modest fixed pool with connection recycling is enough.
const (
	maxOpenConns    = 25
	maxIdleConns    = 25
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

// DSN builds the driver connection string from config.  parseTime
// maps DATETIME columns to time.Time and loc pins them to UTC, which
// the showtime and event date handling relies on.
func DSN(cfg config.Config) string {
	auth := cfg.DBUser
	if cfg.DBPass != "" {
		auth += ":" + cfg.DBPass
	}
	params := url.Values{}
	params.Set("charset", "utf8mb4")
	params.Set("parseTime", "true")
	params.Set("loc", "UTC")
	return auth + "@tcp(" + net.JoinHostPort(cfg.DBHost, cfg.DBPort) + ")/" + cfg.DBName + "?" + params.Encode()
}

// Open connects to MySQL, configures the pool and verifies the
// connection with a bounded ping.
func Open(cfg config.Config) (*sql.DB, error) {
	db, err := sql.Open("mysql", DSN(cfg))
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(maxOpenConns)
	db.SetMaxIdleConns(maxIdleConns)
	db.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return nil, err
	}
	return db, nil
}
