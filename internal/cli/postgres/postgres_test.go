package postgres

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/danieljhkim/churnguard/internal/config"
)

// unreachablePaths returns paths whose settings point at a closed local port
func unreachablePaths(t *testing.T) *config.Paths {
	t.Helper()

	paths := config.NewPaths(t.TempDir())
	settings := config.Defaults()
	settings.Postgres.Host = "127.0.0.1"
	settings.Postgres.Port = 1
	if err := config.NewSettingsManager(paths).Save(settings); err != nil {
		t.Fatalf("save settings: %v", err)
	}
	return paths
}

func executeCommand(t *testing.T, paths *config.Paths, cmdArgs ...string) (string, error) {
	t.Helper()

	cmd := NewPostgresCmd(func() *config.Paths { return paths })
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(append([]string{}, cmdArgs...))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	err := cmd.ExecuteContext(ctx)
	return buf.String(), err
}

func TestPostgresTest_UnreachableServer(t *testing.T) {
	out, err := executeCommand(t, unreachablePaths(t), "test")
	if err == nil {
		t.Fatalf("expected connection error")
	}
	if strings.Contains(out, "Version:") {
		t.Fatalf("version must not be printed on failure:\n%s", out)
	}
}

func TestPostgresInit_UnreachableServer(t *testing.T) {
	_, err := executeCommand(t, unreachablePaths(t), "init")
	if err == nil {
		t.Fatalf("expected connection error")
	}
	if !strings.Contains(err.Error(), "failed to connect to postgres") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestPostgres_RejectsArgs(t *testing.T) {
	_, err := executeCommand(t, config.NewPaths(t.TempDir()), "init", "extra")
	if err == nil {
		t.Fatalf("expected error for extra argument")
	}
}
