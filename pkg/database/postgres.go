package database

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"retail-order-service/pkg/config"
)

type PostgresDB struct {
	DB     *sql.DB
	logger *logrus.Entry
}

func NewPostgresDB(cfg *config.DatabaseConfig) (*PostgresDB, error) {
	logger := logrus.WithField("component", "database")

	db, err := sql.Open("postgres", cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(time.Hour)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("Database connection established successfully")

	return &PostgresDB{
		DB:     db,
		logger: logger,
	}, nil
}

func (p *PostgresDB) GetDB() *sql.DB {
	return p.DB
}

func (p *PostgresDB) Close() error {
	if p.DB != nil {
		if err := p.DB.Close(); err != nil {
			p.logger.WithError(err).Error("Failed to close database connection")
			return fmt.Errorf("failed to close database: %w", err)
		}
		p.logger.Info("Database connection closed successfully")
	}
	return nil
}

func (p *PostgresDB) HealthCheck() error {
	if err := p.DB.Ping(); err != nil {
		return fmt.Errorf("database health check failed: %w", err)
	}
	return nil
}

// CreateTables creates the schema if it does not exist yet.
func (p *PostgresDB) CreateTables() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			customer_id BIGINT NOT NULL,
			order_number BIGINT NOT NULL UNIQUE,
			booking_time TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
			delivery_address TEXT NOT NULL DEFAULT '',
			delivery_cost DECIMAL(10,2) NOT NULL DEFAULT 0,
			product_cost DECIMAL(10,2) NOT NULL DEFAULT 0,
			paid BOOLEAN NOT NULL DEFAULT FALSE,
			status VARCHAR(50) NOT NULL DEFAULT 'INITIATED'
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price DECIMAL(10,2) NOT NULL DEFAULT 0,
			amount INTEGER NOT NULL DEFAULT 0,
			available BOOLEAN NOT NULL DEFAULT TRUE,
			description JSONB NOT NULL DEFAULT '{}'
		)`,
		`CREATE TABLE IF NOT EXISTS order_products (
			id BIGSERIAL PRIMARY KEY,
			order_id BIGINT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
			product_id BIGINT NOT NULL REFERENCES products(id),
			UNIQUE(order_id, product_id)
		)`,
		`CREATE TABLE IF NOT EXISTS operators (
			id BIGSERIAL PRIMARY KEY,
			username VARCHAR(255) NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS order_operators (
			order_id BIGINT PRIMARY KEY REFERENCES orders(id) ON DELETE CASCADE,
			operator_id BIGINT NOT NULL REFERENCES operators(id),
			assigned_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS order_history (
			id BIGSERIAL PRIMARY KEY,
			order_number BIGINT NOT NULL,
			state JSONB NOT NULL,
			event VARCHAR(50) NOT NULL,
			previous_record BIGINT,
			recorded_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_customer_id ON orders(customer_id)`,
		`CREATE INDEX IF NOT EXISTS idx_orders_status ON orders(status)`,
		`CREATE INDEX IF NOT EXISTS idx_order_products_product_id ON order_products(product_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_operators_operator_id ON order_operators(operator_id)`,
		`CREATE INDEX IF NOT EXISTS idx_order_history_order_number ON order_history(order_number)`,
	}

	for _, query := range queries {
		if _, err := p.DB.Exec(query); err != nil {
			return fmt.Errorf("failed to create table: %w", err)
		}
	}

	p.logger.Info("Database tables created successfully")
	return nil
}
