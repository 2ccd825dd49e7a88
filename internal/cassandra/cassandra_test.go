package cassandra

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/danieljhkim/churnguard/internal/config"
)

type fakeSession struct {
	statements []string
	failOn     int
	version    string
	closed     bool
}

func (f *fakeSession) Exec(_ context.Context, stmt string) error {
	f.statements = append(f.statements, stmt)
	if f.failOn == len(f.statements) {
		return errors.New("Unauthorized")
	}
	return nil
}

func (f *fakeSession) ReleaseVersion(context.Context) (string, error) {
	return f.version, nil
}

func (f *fakeSession) Close() {
	f.closed = true
}

func TestSteps(t *testing.T) {
	steps, err := Steps("churn_keyspace", 3)
	require.NoError(t, err)
	require.Len(t, steps, 5)

	assert.Contains(t, steps[0].Statement, "CREATE KEYSPACE IF NOT EXISTS churn_keyspace")
	assert.Contains(t, steps[0].Statement, "'replication_factor': 3")
	assert.Equal(t, "DROP TABLE IF EXISTS churn_keyspace.customer_events", steps[1].Statement)
	assert.Equal(t, "DROP TABLE IF EXISTS churn_keyspace.support_tickets", steps[2].Statement)
	assert.Contains(t, steps[3].Statement, "PRIMARY KEY (customer_id, event_time)")
	assert.Contains(t, steps[3].Statement, "CLUSTERING ORDER BY (event_time DESC)")
	assert.Contains(t, steps[4].Statement, "ticket_id uuid PRIMARY KEY")

	for _, s := range steps[1:] {
		assert.Contains(t, s.Statement, "churn_keyspace.")
	}
}

func TestSteps_Validation(t *testing.T) {
	_, err := Steps("bad-name; DROP", 1)
	assert.Error(t, err)

	_, err = Steps("ks", 0)
	assert.Error(t, err)
}

func TestInit(t *testing.T) {
	s := &fakeSession{}
	require.NoError(t, Init(context.Background(), s, config.Defaults().Cassandra))
	assert.Len(t, s.statements, 5)
}

func TestInit_StopsAtFirstFailure(t *testing.T) {
	s := &fakeSession{failOn: 2}
	err := Init(context.Background(), s, config.Defaults().Cassandra)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "customer_events")
	assert.Len(t, s.statements, 2)
}

func TestNewCluster(t *testing.T) {
	cfg := config.Defaults().Cassandra
	cfg.Hosts = []string{"c1", "c2"}
	cfg.Port = 19042
	cfg.ConnectTimeout = 3 * time.Second
	cfg.Username = "cassandra"
	cfg.Password = "secret"

	cluster := NewCluster(cfg)
	assert.Equal(t, []string{"c1", "c2"}, cluster.Hosts)
	assert.Equal(t, 19042, cluster.Port)
	assert.Equal(t, 3*time.Second, cluster.ConnectTimeout)
	assert.Equal(t, gocql.One, cluster.Consistency)

	auth, ok := cluster.Authenticator.(gocql.PasswordAuthenticator)
	require.True(t, ok)
	assert.Equal(t, "cassandra", auth.Username)

	assert.Nil(t, NewCluster(config.Defaults().Cassandra).Authenticator)
}

// Runs against a live cluster when CHURNGUARD_TEST_CASSANDRA_HOSTS is set.
func TestInit_Integration(t *testing.T) {
	hosts := os.Getenv("CHURNGUARD_TEST_CASSANDRA_HOSTS")
	if hosts == "" {
		t.Skip("CHURNGUARD_TEST_CASSANDRA_HOSTS not set")
	}

	cfg := config.Defaults().Cassandra
	cfg.Hosts = strings.Split(hosts, ",")
	cfg.Keyspace = "churnguard_test"

	s, err := Connect(cfg, zap.NewNop())
	require.NoError(t, err)
	defer s.Close()

	ctx := context.Background()
	require.NoError(t, Init(ctx, s, cfg))

	version, err := s.ReleaseVersion(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, version)
}
