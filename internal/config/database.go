package config

import (
	"database/sql"
	"fmt"
	"net"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/rs/zerolog/log"
)

// DSN builds the MySQL data source name. ClientFoundRows makes UPDATE report matched
// rather than changed rows.
func (c *Config) DSN() string {
	cfg := mysql.NewConfig()
	cfg.User = c.DBUser
	cfg.Passwd = c.DBPass
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(c.DBHost, c.DBPort)
	cfg.DBName = c.DBName
	cfg.ParseTime = true
	cfg.ClientFoundRows = true
	return cfg.FormatDSN()
}

// ConnectDB opens the pool and retries the first ping before giving up.
func ConnectDB(dsn string, retries int, wait time.Duration) (*sql.DB, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	for i := 0; i < retries; i++ {
		err = db.Ping()
		if err == nil {
			db.SetMaxOpenConns(25)
			db.SetMaxIdleConns(25)
			db.SetConnMaxLifetime(5 * time.Minute)
			log.Info().Msg("Connected to DB")
			return db, nil
		}
		log.Warn().Err(err).Msgf("Retry %d: failed to connect to DB", i+1)
		time.Sleep(wait)
	}

	db.Close()
	return nil, fmt.Errorf("failed to connect to DB after %d retries: %w", retries, err)
}
