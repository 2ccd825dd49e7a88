package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds persisted user-configurable settings.
type Settings struct {
	HDFS      HDFSConfig      `yaml:"hdfs"`
	Postgres  PostgresConfig  `yaml:"postgres"`
	Cassandra CassandraConfig `yaml:"cassandra"`
}

// HDFSConfig locates the relay container and the HDFS namespace behind it.
type HDFSConfig struct {
	Docker     string `yaml:"docker"`      // docker CLI binary
	Container  string `yaml:"container"`   // relay container with the hdfs client
	NameNode   string `yaml:"namenode"`    // namespace URI prefix, e.g. hdfs://namenode:9000
	Root       string `yaml:"root"`        // namespace root, e.g. /churnguard
	RawSubdir  string `yaml:"raw-subdir"`  // raw data directory under Root
	ScratchDir string `yaml:"scratch-dir"` // relay-side directory for scratch files
	Dataset    string `yaml:"dataset"`     // host path of the default dataset for "hdfs upload"
}

// PostgresConfig holds connection parameters for the relational store.
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Database string `yaml:"database"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
}

// CassandraConfig holds connection parameters for the wide-column store.
type CassandraConfig struct {
	Hosts             []string      `yaml:"hosts"`
	Port              int           `yaml:"port"`
	Keyspace          string        `yaml:"keyspace"`
	ReplicationFactor int           `yaml:"replication-factor"`
	Username          string        `yaml:"username"`
	Password          string        `yaml:"password"`
	ConnectTimeout    time.Duration `yaml:"connect-timeout"`
}

// Defaults returns the settings used when nothing is configured.
// They match the docker-compose stack shipped with the platform.
func Defaults() *Settings {
	return &Settings{
		HDFS: HDFSConfig{
			Docker:     "docker",
			Container:  "namenode",
			NameNode:   "hdfs://namenode:9000",
			Root:       "/churnguard",
			RawSubdir:  "data/raw",
			ScratchDir: "/tmp",
			Dataset:    "data/raw/telco_churn.csv",
		},
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     5432,
			Database: "churn_db",
			User:     "churn_user",
			Password: "churn_pass",
			SSLMode:  "disable",
		},
		Cassandra: CassandraConfig{
			Hosts:             []string{"localhost"},
			Port:              9042,
			Keyspace:          "churn_keyspace",
			ReplicationFactor: 1,
			ConnectTimeout:    10 * time.Second,
		},
	}
}

// SettingsManager handles settings persistence.
type SettingsManager struct {
	paths *Paths
}

// NewSettingsManager creates a settings manager.
func NewSettingsManager(paths *Paths) *SettingsManager {
	return &SettingsManager{paths: paths}
}

// Path returns the settings file path.
func (sm *SettingsManager) Path() string {
	return sm.paths.SettingsFile()
}

// Load reads settings from disk. Keys absent from the file keep their defaults.
func (sm *SettingsManager) Load() (*Settings, error) {
	data, err := os.ReadFile(sm.Path())
	if err != nil {
		return nil, err
	}

	settings := Defaults()
	if err := yaml.Unmarshal(data, settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings: %w", err)
	}
	if err := settings.sanitize(); err != nil {
		return nil, err
	}

	return settings, nil
}

// Save writes settings to disk.
func (sm *SettingsManager) Save(settings *Settings) error {
	if settings == nil {
		return fmt.Errorf("settings required")
	}
	if err := settings.sanitize(); err != nil {
		return err
	}

	if err := os.MkdirAll(sm.paths.SettingsDir(), 0755); err != nil {
		return err
	}

	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}

	// The file may hold database passwords
	if err := os.WriteFile(sm.Path(), data, 0600); err != nil {
		return err
	}

	return nil
}

// LoadOrDefault reads settings if available, otherwise returns defaults.
func (sm *SettingsManager) LoadOrDefault() (*Settings, error) {
	settings, err := sm.Load()
	if err == nil {
		return settings, nil
	}
	if !os.IsNotExist(err) {
		return nil, err
	}

	return Defaults(), nil
}

// Resolve returns the effective settings: defaults, then the settings file,
// then CHURNGUARD_* environment variables.
func (sm *SettingsManager) Resolve() (*Settings, error) {
	settings, err := sm.LoadOrDefault()
	if err != nil {
		return nil, err
	}
	if err := settings.ApplyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := settings.sanitize(); err != nil {
		return nil, err
	}
	return settings, nil
}

// sanitize trims values and restores defaults for blank required fields.
func (s *Settings) sanitize() error {
	def := Defaults()

	h := &s.HDFS
	h.Docker = orDefault(h.Docker, def.HDFS.Docker)
	h.Container = orDefault(h.Container, def.HDFS.Container)
	h.NameNode = strings.TrimRight(strings.TrimSpace(h.NameNode), "/")
	h.Root = orDefault(h.Root, def.HDFS.Root)
	if !strings.HasPrefix(h.Root, "/") {
		return fmt.Errorf("hdfs.root must be absolute, got %q", h.Root)
	}
	h.RawSubdir = strings.Trim(strings.TrimSpace(h.RawSubdir), "/")
	h.ScratchDir = orDefault(h.ScratchDir, def.HDFS.ScratchDir)
	h.Dataset = strings.TrimSpace(h.Dataset)

	p := &s.Postgres
	p.Host = orDefault(p.Host, def.Postgres.Host)
	p.Database = orDefault(p.Database, def.Postgres.Database)
	p.User = orDefault(p.User, def.Postgres.User)
	p.SSLMode = orDefault(p.SSLMode, def.Postgres.SSLMode)
	if p.Port == 0 {
		p.Port = def.Postgres.Port
	}

	c := &s.Cassandra
	hosts := c.Hosts[:0]
	for _, host := range c.Hosts {
		if host = strings.TrimSpace(host); host != "" {
			hosts = append(hosts, host)
		}
	}
	c.Hosts = hosts
	if len(c.Hosts) == 0 {
		c.Hosts = def.Cassandra.Hosts
	}
	c.Keyspace = orDefault(c.Keyspace, def.Cassandra.Keyspace)
	if c.Port == 0 {
		c.Port = def.Cassandra.Port
	}
	if c.ReplicationFactor <= 0 {
		c.ReplicationFactor = def.Cassandra.ReplicationFactor
	}
	if c.ConnectTimeout <= 0 {
		c.ConnectTimeout = def.Cassandra.ConnectTimeout
	}

	return nil
}

func orDefault(value, def string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return def
	}
	return value
}
