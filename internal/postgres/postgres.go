// Package postgres initializes and checks the relational store that holds
// customer records.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"net"
	"net/url"
	"strconv"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"go.uber.org/zap"

	"github.com/danieljhkim/churnguard/internal/config"
	"github.com/danieljhkim/churnguard/internal/util"
)

// VersionDisplayLen is how much of the server version string is shown
const VersionDisplayLen = 50

const dropCustomers = `DROP TABLE IF EXISTS customers CASCADE;`

const createCustomers = `
CREATE TABLE customers (
    customer_id VARCHAR(50) PRIMARY KEY,
    gender VARCHAR(10),
    senior_citizen INTEGER,
    partner VARCHAR(10),
    dependents VARCHAR(10),
    tenure INTEGER,
    phone_service VARCHAR(10),
    multiple_lines VARCHAR(20),
    internet_service VARCHAR(20),
    online_security VARCHAR(20),
    online_backup VARCHAR(20),
    device_protection VARCHAR(20),
    tech_support VARCHAR(20),
    streaming_tv VARCHAR(20),
    streaming_movies VARCHAR(20),
    contract VARCHAR(20),
    paperless_billing VARCHAR(10),
    payment_method VARCHAR(50),
    monthly_charges DECIMAL(10, 2),
    total_charges VARCHAR(20),
    churn VARCHAR(10),
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
);
`

// Execer is satisfied by *sql.DB and *sql.Tx
type Execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

// Step is one schema statement and what it does
type Step struct {
	Description string
	Statement   string
}

// Steps returns the statements that rebuild the schema, in order
func Steps() []Step {
	return []Step{
		{Description: "Dropped table 'customers' if present", Statement: dropCustomers},
		{Description: "Table 'customers' created", Statement: createCustomers},
	}
}

// DSN builds a connection URL from cfg
func DSN(cfg config.PostgresConfig) string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(cfg.User, cfg.Password),
		Host:   net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port)),
		Path:   "/" + cfg.Database,
	}
	q := url.Values{}
	if cfg.SSLMode != "" {
		q.Set("sslmode", cfg.SSLMode)
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// Open opens a pool against the configured server. It does not connect.
func Open(cfg config.PostgresConfig) (*sql.DB, error) {
	db, err := sql.Open("pgx", DSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("failed to open postgres: %w", err)
	}
	db.SetMaxOpenConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)
	return db, nil
}

// Init runs every schema step against db, stopping at the first failure
func Init(ctx context.Context, db Execer) error {
	for _, step := range Steps() {
		if _, err := db.ExecContext(ctx, step.Statement); err != nil {
			return fmt.Errorf("schema step %q failed: %w", step.Description, err)
		}
		util.Success("%s", step.Description)
	}
	return nil
}

// InitSchema rebuilds the schema inside one transaction
func InitSchema(ctx context.Context, db *sql.DB, logger *zap.Logger) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to postgres: %w", err)
	}
	defer tx.Rollback()

	if err := Init(ctx, tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit schema: %w", err)
	}
	logger.Debug("postgres schema committed", zap.Int("steps", len(Steps())))
	return nil
}

// Version returns the server's version() string
func Version(ctx context.Context, db *sql.DB) (string, error) {
	var version string
	if err := db.QueryRowContext(ctx, "SELECT version();").Scan(&version); err != nil {
		return "", fmt.Errorf("failed to query version: %w", err)
	}
	return version, nil
}

// ShortVersion truncates a version string for display
func ShortVersion(version string) string {
	runes := []rune(version)
	if len(runes) <= VersionDisplayLen {
		return version
	}
	return string(runes[:VersionDisplayLen]) + "..."
}
