package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresDB wraps the pgx connection pools. Writes always go to Pool; reads may
// go to a replica pool when a separate read URL is configured.
type PostgresDB struct {
	Pool     *pgxpool.Pool
	readPool *pgxpool.Pool
}

// NewPostgresDB creates a new PostgreSQL connection pool. readURL may equal
// databaseURL, in which case a single pool serves both reads and writes.
func NewPostgresDB(ctx context.Context, databaseURL, readURL string) (*PostgresDB, error) {
	pool, err := newPool(ctx, databaseURL)
	if err != nil {
		return nil, err
	}

	db := &PostgresDB{Pool: pool, readPool: pool}

	if readURL != "" && readURL != databaseURL {
		readPool, err := newPool(ctx, readURL)
		if err != nil {
			pool.Close()
			return nil, fmt.Errorf("read replica: %w", err)
		}
		db.readPool = readPool
	}

	return db, nil
}

func newPool(ctx context.Context, databaseURL string) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = time.Minute * 30
	config.HealthCheckPeriod = time.Minute
	config.ConnConfig.ConnectTimeout = time.Second * 5

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}

// GetReadPool returns the pool used for SELECT queries.
func (db *PostgresDB) GetReadPool() *pgxpool.Pool {
	return db.readPool
}

// Close closes the database connection pools
func (db *PostgresDB) Close() {
	if db.readPool != nil && db.readPool != db.Pool {
		db.readPool.Close()
	}
	if db.Pool != nil {
		db.Pool.Close()
	}
}

// Health checks the database connection
func (db *PostgresDB) Health(ctx context.Context) error {
	return db.Pool.Ping(ctx)
}
