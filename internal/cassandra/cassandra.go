// Package cassandra initializes and checks the wide-column store that holds
// customer events and support tickets.
package cassandra

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/gocql/gocql"
	"go.uber.org/zap"

	"github.com/danieljhkim/churnguard/internal/config"
	"github.com/danieljhkim/churnguard/internal/util"
)

// Hints are printed when the store cannot be reached
var Hints = []string{
	"Check if Cassandra is running: docker compose ps",
	"Cassandra takes 60-90 seconds to fully start",
	"Check logs: docker compose logs cassandra",
}

var identifier = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]{0,47}$`)

// Session is the part of a CQL session the schema tools need
type Session interface {
	Exec(ctx context.Context, stmt string) error
	ReleaseVersion(ctx context.Context) (string, error)
	Close()
}

// Step is one schema statement and what it does
type Step struct {
	Description string
	Statement   string
}

// Steps returns the statements that create the keyspace and rebuild its tables.
// Table names are qualified with the keyspace.
func Steps(keyspace string, replicationFactor int) ([]Step, error) {
	if !identifier.MatchString(keyspace) {
		return nil, fmt.Errorf("invalid keyspace name %q", keyspace)
	}
	if replicationFactor < 1 {
		return nil, fmt.Errorf("replication factor must be positive, got %d", replicationFactor)
	}

	return []Step{
		{
			Description: fmt.Sprintf("Keyspace '%s' created", keyspace),
			Statement: fmt.Sprintf(`CREATE KEYSPACE IF NOT EXISTS %s
    WITH replication = {'class': 'SimpleStrategy', 'replication_factor': %d}`, keyspace, replicationFactor),
		},
		{
			Description: "Dropped table 'customer_events' if present",
			Statement:   fmt.Sprintf("DROP TABLE IF EXISTS %s.customer_events", keyspace),
		},
		{
			Description: "Dropped table 'support_tickets' if present",
			Statement:   fmt.Sprintf("DROP TABLE IF EXISTS %s.support_tickets", keyspace),
		},
		{
			Description: "Table 'customer_events' created",
			Statement: fmt.Sprintf(`CREATE TABLE %s.customer_events (
    customer_id text,
    event_time timestamp,
    event_type text,
    event_data text,
    PRIMARY KEY (customer_id, event_time)
) WITH CLUSTERING ORDER BY (event_time DESC)`, keyspace),
		},
		{
			Description: "Table 'support_tickets' created",
			Statement: fmt.Sprintf(`CREATE TABLE %s.support_tickets (
    ticket_id uuid PRIMARY KEY,
    customer_id text,
    created_at timestamp,
    ticket_type text,
    description text,
    sentiment text,
    status text
)`, keyspace),
		},
	}, nil
}

// Init runs every schema step, stopping at the first failure
func Init(ctx context.Context, s Session, cfg config.CassandraConfig) error {
	steps, err := Steps(cfg.Keyspace, cfg.ReplicationFactor)
	if err != nil {
		return err
	}
	for _, step := range steps {
		if err := s.Exec(ctx, step.Statement); err != nil {
			return fmt.Errorf("schema step %q failed: %w", step.Description, err)
		}
		util.Success("%s", step.Description)
	}
	return nil
}

// NewCluster builds the gocql cluster configuration for cfg
func NewCluster(cfg config.CassandraConfig) *gocql.ClusterConfig {
	cluster := gocql.NewCluster(cfg.Hosts...)
	cluster.Port = cfg.Port
	if cfg.ConnectTimeout > 0 {
		cluster.ConnectTimeout = cfg.ConnectTimeout
		cluster.Timeout = cfg.ConnectTimeout
	}
	cluster.Consistency = gocql.One
	cluster.DisableInitialHostLookup = true
	if cfg.Username != "" {
		cluster.Authenticator = gocql.PasswordAuthenticator{
			Username: cfg.Username,
			Password: cfg.Password,
		}
	}
	return cluster
}

// Connect opens a session without selecting a keyspace
func Connect(cfg config.CassandraConfig, logger *zap.Logger) (Session, error) {
	start := time.Now()
	session, err := NewCluster(cfg).CreateSession()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to cassandra at %v:%d: %w", cfg.Hosts, cfg.Port, err)
	}
	logger.Debug("cassandra session opened",
		zap.Strings("hosts", cfg.Hosts),
		zap.Int("port", cfg.Port),
		zap.Duration("elapsed", time.Since(start)))
	return &gocqlSession{session: session}, nil
}

type gocqlSession struct {
	session *gocql.Session
}

func (s *gocqlSession) Exec(ctx context.Context, stmt string) error {
	return s.session.Query(stmt).WithContext(ctx).Exec()
}

func (s *gocqlSession) ReleaseVersion(ctx context.Context) (string, error) {
	var version string
	if err := s.session.Query("SELECT release_version FROM system.local").WithContext(ctx).Scan(&version); err != nil {
		return "", fmt.Errorf("failed to query release_version: %w", err)
	}
	return version, nil
}

func (s *gocqlSession) Close() {
	s.session.Close()
}
