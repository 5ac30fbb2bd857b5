// Package database connects to the MySQL answer log store and keeps its
// schema current.
package database

import (
	"fmt"
	"maps"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/kotoba/internal/config"
)

const (
	// Headwords and answers are compared byte for byte, so ひらがな and
	// カタカナ never collate as equal.
	collation = "utf8mb4_bin"

	dialTimeout = 5 * time.Second

	defaultMaxOpenConns    = 8
	defaultMaxIdleConns    = 2
	defaultConnMaxLifetime = 3 * time.Minute
)

// MySQLConfig builds the driver configuration of the answer log store.
// Timestamps are read and written in UTC.
func MySQLConfig(cfg config.DatabaseConfig) *mysql.Config {
	mysqlCfg := mysql.NewConfig()
	mysqlCfg.User = cfg.Username
	mysqlCfg.Passwd = cfg.Password
	mysqlCfg.Net = "tcp"
	mysqlCfg.Addr = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	mysqlCfg.DBName = cfg.Database
	mysqlCfg.Collation = collation
	mysqlCfg.ParseTime = true
	mysqlCfg.Loc = time.UTC
	mysqlCfg.Timeout = dialTimeout
	mysqlCfg.MultiStatements = true
	if cfg.TLS {
		mysqlCfg.TLSConfig = "true"
	}
	if len(cfg.Params) > 0 {
		mysqlCfg.Params = maps.Clone(cfg.Params)
	}
	return mysqlCfg
}

// Open returns a connection pool for the answer log store. Pool settings
// left at zero fall back to sizes suited to one trainer process.
func Open(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	db, err := sqlx.Open("mysql", MySQLConfig(cfg).FormatDSN())
	if err != nil {
		return nil, fmt.Errorf("sqlx.Open() > %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen == 0 {
		maxOpen = defaultMaxOpenConns
	}
	maxIdle := cfg.MaxIdleConns
	if maxIdle == 0 {
		maxIdle = min(defaultMaxIdleConns, maxOpen)
	}
	lifetime := time.Duration(cfg.ConnMaxLifetime) * time.Second
	if lifetime == 0 {
		lifetime = defaultConnMaxLifetime
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(maxIdle)
	db.SetConnMaxLifetime(lifetime)
	return db, nil
}
