package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"
)

// Pool sizing for this API's workload: many short catalog reads plus
// the ledger's row-locking transactions, which hold a connection for
// the duration of the lock. Connections are recycled well before a
// typical MySQL wait_timeout so the pool never hands out a dead one.
const (
	maxOpenConns    = 25
	maxIdleConns    = 25
	connMaxLifetime = 30 * time.Minute
	pingTimeout     = 5 * time.Second
)

// Open builds the DSN from config values, opens the connection pool and
// verifies connectivity before returning. parseTime maps DATETIME
// columns onto time.Time, and loc=UTC pins every scanned timestamp to
// UTC so the dashboard's upcoming/past split never depends on the
// server's local zone.
func Open(user, pass, host, port, name string) (*sql.DB, error) {
	dsn := fmt.Sprintf("%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=true&loc=UTC",
		credentials(user, pass), host, port, name)

	db, err := sql.Open("mysql", dsn)
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

func credentials(user, pass string) string {
	if pass == "" {
		return user
	}
	return user + ":" + pass
}
