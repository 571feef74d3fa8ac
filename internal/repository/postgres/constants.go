package postgres

import (
	"fmt"
	"time"
)

const (
	poolHealthCheckPeriod = 1 * time.Minute
	poolMaxConnLifetime   = 1 * time.Hour
	poolMaxConnIdleTime   = 30 * time.Minute
	dbPingTimeout         = 5 * time.Second

	errUserNotFound = "user not found"
)

func errFailedParseDatabaseConfig(err error) error {
	return fmt.Errorf("failed to parse database config: %w", err)
}

func errFailedCreateConnectionPool(err error) error {
	return fmt.Errorf("failed to create connection pool: %w", err)
}

func errFailedPingDatabase(err error) error {
	return fmt.Errorf("failed to ping database: %w", err)
}

func errFailedCreateUser(err error) error {
	return fmt.Errorf("failed to create user: %w", err)
}

func errFailedGetUser(err error) error {
	return fmt.Errorf("failed to get user: %w", err)
}

func errFailedUpdateUser(err error) error {
	return fmt.Errorf("failed to update user: %w", err)
}
