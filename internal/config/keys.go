package config

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// settingKey binds a dotted key name to a field of Settings.
type settingKey struct {
	get    func(*Settings) string
	set    func(*Settings, string) error
	secret bool
}

var settingKeys = map[string]settingKey{
	"hdfs.docker":      stringKey(func(s *Settings) *string { return &s.HDFS.Docker }, true),
	"hdfs.container":   stringKey(func(s *Settings) *string { return &s.HDFS.Container }, true),
	"hdfs.namenode":    stringKey(func(s *Settings) *string { return &s.HDFS.NameNode }, false),
	"hdfs.root":        absPathKey(func(s *Settings) *string { return &s.HDFS.Root }),
	"hdfs.raw-subdir":  stringKey(func(s *Settings) *string { return &s.HDFS.RawSubdir }, false),
	"hdfs.scratch-dir": stringKey(func(s *Settings) *string { return &s.HDFS.ScratchDir }, true),
	"hdfs.dataset":     stringKey(func(s *Settings) *string { return &s.HDFS.Dataset }, false),

	"postgres.host":     stringKey(func(s *Settings) *string { return &s.Postgres.Host }, true),
	"postgres.port":     portKey(func(s *Settings) *int { return &s.Postgres.Port }),
	"postgres.database": stringKey(func(s *Settings) *string { return &s.Postgres.Database }, true),
	"postgres.user":     stringKey(func(s *Settings) *string { return &s.Postgres.User }, true),
	"postgres.password": secretKey(func(s *Settings) *string { return &s.Postgres.Password }),
	"postgres.sslmode":  stringKey(func(s *Settings) *string { return &s.Postgres.SSLMode }, true),

	"cassandra.hosts": {
		get: func(s *Settings) string { return strings.Join(s.Cassandra.Hosts, ",") },
		set: func(s *Settings, v string) error {
			var hosts []string
			for _, h := range strings.Split(v, ",") {
				if h = strings.TrimSpace(h); h != "" {
					hosts = append(hosts, h)
				}
			}
			if len(hosts) == 0 {
				return fmt.Errorf("cassandra.hosts requires at least one host")
			}
			s.Cassandra.Hosts = hosts
			return nil
		},
	},
	"cassandra.port":     portKey(func(s *Settings) *int { return &s.Cassandra.Port }),
	"cassandra.keyspace": stringKey(func(s *Settings) *string { return &s.Cassandra.Keyspace }, true),
	"cassandra.replication-factor": {
		get: func(s *Settings) string { return strconv.Itoa(s.Cassandra.ReplicationFactor) },
		set: func(s *Settings, v string) error {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || n < 1 {
				return fmt.Errorf("cassandra.replication-factor must be a positive integer, got %q", v)
			}
			s.Cassandra.ReplicationFactor = n
			return nil
		},
	},
	"cassandra.username": stringKey(func(s *Settings) *string { return &s.Cassandra.Username }, false),
	"cassandra.password": secretKey(func(s *Settings) *string { return &s.Cassandra.Password }),
	"cassandra.connect-timeout": {
		get: func(s *Settings) string { return s.Cassandra.ConnectTimeout.String() },
		set: func(s *Settings, v string) error {
			d, err := time.ParseDuration(strings.TrimSpace(v))
			if err != nil || d <= 0 {
				return fmt.Errorf("cassandra.connect-timeout must be a positive duration (e.g. 10s), got %q", v)
			}
			s.Cassandra.ConnectTimeout = d
			return nil
		},
	},
}

func stringKey(field func(*Settings) *string, required bool) settingKey {
	return settingKey{
		get: func(s *Settings) string { return *field(s) },
		set: func(s *Settings, v string) error {
			v = strings.TrimSpace(v)
			if required && v == "" {
				return fmt.Errorf("value must not be empty")
			}
			*field(s) = v
			return nil
		},
	}
}

func absPathKey(field func(*Settings) *string) settingKey {
	k := stringKey(field, true)
	set := k.set
	k.set = func(s *Settings, v string) error {
		if v = strings.TrimSpace(v); v != "" && !strings.HasPrefix(v, "/") {
			return fmt.Errorf("path must be absolute, got %q", v)
		}
		return set(s, v)
	}
	return k
}

func secretKey(field func(*Settings) *string) settingKey {
	k := stringKey(field, false)
	k.secret = true
	return k
}

func portKey(field func(*Settings) *int) settingKey {
	return settingKey{
		get: func(s *Settings) string { return strconv.Itoa(*field(s)) },
		set: func(s *Settings, v string) error {
			port, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil || port < 1 || port > 65535 {
				return fmt.Errorf("port must be an integer between 1 and 65535, got %q", v)
			}
			*field(s) = port
			return nil
		},
	}
}

// Keys returns all configurable setting keys (sorted)
func Keys() []string {
	keys := make([]string, 0, len(settingKeys))
	for k := range settingKeys {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// IsSecret reports whether a key's value should be masked on display
func IsSecret(key string) bool {
	return settingKeys[key].secret
}

// Get returns the value of a setting key
func (s *Settings) Get(key string) (string, error) {
	k, ok := settingKeys[key]
	if !ok {
		return "", unknownKeyError(key)
	}
	return k.get(s), nil
}

// Set validates and assigns the value of a setting key
func (s *Settings) Set(key, value string) error {
	k, ok := settingKeys[key]
	if !ok {
		return unknownKeyError(key)
	}
	if err := k.set(s, value); err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	return nil
}

// EnvVar returns the environment variable that overrides key,
// e.g. "postgres.password" -> "CHURNGUARD_POSTGRES_PASSWORD".
func EnvVar(key string) string {
	r := strings.NewReplacer(".", "_", "-", "_")
	return "CHURNGUARD_" + strings.ToUpper(r.Replace(key))
}

// ApplyEnv overrides settings from environment variables found by lookup
func (s *Settings) ApplyEnv(lookup func(string) (string, bool)) error {
	for _, key := range Keys() {
		value, ok := lookup(EnvVar(key))
		if !ok {
			continue
		}
		if err := s.Set(key, value); err != nil {
			return fmt.Errorf("%s: %w", EnvVar(key), err)
		}
	}
	return nil
}

func unknownKeyError(key string) error {
	return fmt.Errorf("unknown setting key %q (see 'churnguard setting list')", key)
}
