package cli

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/danieljhkim/churnguard/internal/config"
)

func TestTailFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "churnguard.log")
	var b strings.Builder
	for i := 1; i <= 5; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	tests := []struct {
		n    int
		want []string
	}{
		{2, []string{"line 4", "line 5"}},
		{10, []string{"line 1", "line 2", "line 3", "line 4", "line 5"}},
		{0, nil},
	}
	for _, tt := range tests {
		got, err := tailFile(path, tt.n)
		if err != nil {
			t.Fatalf("tailFile(%d): %v", tt.n, err)
		}
		if strings.Join(got, "|") != strings.Join(tt.want, "|") {
			t.Errorf("tailFile(%d) = %v, want %v", tt.n, got, tt.want)
		}
	}
}

func TestLogsCmd(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	if err := os.MkdirAll(paths.LogsDir(), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(paths.DefaultLogFile(), []byte("a\nb\nc\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cmd := NewLogsCmd(func() *config.Paths { return paths })
	buf := &bytes.Buffer{}
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs([]string{"-n", "2"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("logs returned error: %v", err)
	}
	if !strings.HasSuffix(buf.String(), "b\nc\n") {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	if strings.Contains(buf.String(), "a\n") {
		t.Fatalf("only the last two lines should be shown:\n%s", buf.String())
	}
}

func TestLogsCmd_NoFileYet(t *testing.T) {
	paths := config.NewPaths(t.TempDir())
	cmd := NewLogsCmd(func() *config.Paths { return paths })
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("logs returned error: %v", err)
	}
}
