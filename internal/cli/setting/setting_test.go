package setting

import (
	"bytes"
	"strings"
	"testing"

	"github.com/danieljhkim/churnguard/internal/config"
)

func executeCommand(t *testing.T, paths *config.Paths, cmdArgs ...string) (string, string, error) {
	t.Helper()

	cmd := NewSettingCmd(func() *config.Paths { return paths })
	out := &bytes.Buffer{}
	errBuf := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errBuf)
	cmd.SetArgs(append([]string{}, cmdArgs...))

	err := cmd.Execute()
	return out.String(), errBuf.String(), err
}

func TestSettingList_PrintsAllConfigurableKeys(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	out, _, err := executeCommand(t, paths, "list")
	if err != nil {
		t.Fatalf("setting list returned error: %v", err)
	}

	for _, want := range []string{
		"- hdfs.container: namenode",
		"- hdfs.namenode: hdfs://namenode:9000",
		"- postgres.port: 5432",
		"- cassandra.hosts: localhost",
		"- postgres.password: ********",
	} {
		if !strings.Contains(out, want) {
			t.Fatalf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "churn_pass") {
		t.Fatalf("output should mask postgres.password:\n%s", out)
	}
}

func TestSettingList_MarksEnvOverrides(t *testing.T) {
	t.Setenv("CHURNGUARD_HDFS_CONTAINER", "nn2")

	out, _, err := executeCommand(t, config.NewPaths(t.TempDir()), "list")
	if err != nil {
		t.Fatalf("setting list returned error: %v", err)
	}
	if !strings.Contains(out, "- hdfs.container: namenode (overridden by CHURNGUARD_HDFS_CONTAINER)") {
		t.Fatalf("override not marked:\n%s", out)
	}
}

func TestSettingSet_UpdatesValueInSettingsFile(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	out, _, err := executeCommand(t, paths, "set", "postgres.port", "15432")
	if err != nil {
		t.Fatalf("setting set returned error: %v", err)
	}
	if !strings.Contains(out, "Updated postgres.port in "+paths.SettingsFile()) {
		t.Fatalf("unexpected output: %s", out)
	}

	settings, err := config.NewSettingsManager(paths).Load()
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if settings.Postgres.Port != 15432 {
		t.Fatalf("Postgres.Port = %d", settings.Postgres.Port)
	}
}

func TestSettingSet_RejectsInvalidPort(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	_, _, err := executeCommand(t, paths, "set", "cassandra.port", "ninety")
	if err == nil {
		t.Fatalf("expected error for non-numeric port")
	}
	if !strings.Contains(err.Error(), "cassandra.port") {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := config.NewSettingsManager(paths).Load(); err == nil {
		t.Fatalf("settings file must not be written on validation failure")
	}
}

func TestSettingSet_RejectsUnknownKey(t *testing.T) {
	_, _, err := executeCommand(t, config.NewPaths(t.TempDir()), "set", "unknown", "value")
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown setting key") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestSettingSet_WarnsWhenEnvOverrides(t *testing.T) {
	t.Setenv("CHURNGUARD_CASSANDRA_KEYSPACE", "other")

	_, errOut, err := executeCommand(t, config.NewPaths(t.TempDir()), "set", "cassandra.keyspace", "ks")
	if err != nil {
		t.Fatalf("setting set returned error: %v", err)
	}
	if !strings.Contains(errOut, "WARNING: CHURNGUARD_CASSANDRA_KEYSPACE is set") {
		t.Fatalf("expected override warning, got: %s", errOut)
	}
}

func TestSettingShow(t *testing.T) {
	paths := config.NewPaths(t.TempDir())

	out, _, err := executeCommand(t, paths, "show", "hdfs.scratch-dir")
	if err != nil {
		t.Fatalf("setting show returned error: %v", err)
	}
	if out != "/tmp\n" {
		t.Fatalf("unexpected output: %q", out)
	}

	out, _, err = executeCommand(t, paths, "show", "postgres.password")
	if err != nil {
		t.Fatalf("setting show returned error: %v", err)
	}
	if out != "********\n" {
		t.Fatalf("secret should be masked: %q", out)
	}

	out, _, err = executeCommand(t, paths, "show", "postgres.password", "--reveal")
	if err != nil {
		t.Fatalf("setting show returned error: %v", err)
	}
	if out != "churn_pass\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}

func TestSettingShow_UsesEnvOverride(t *testing.T) {
	t.Setenv("CHURNGUARD_POSTGRES_HOST", "db.internal")

	out, _, err := executeCommand(t, config.NewPaths(t.TempDir()), "show", "postgres.host")
	if err != nil {
		t.Fatalf("setting show returned error: %v", err)
	}
	if out != "db.internal\n" {
		t.Fatalf("unexpected output: %q", out)
	}
}
