package hdfs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/danieljhkim/churnguard/internal/frame"
	"github.com/danieljhkim/churnguard/internal/util"
)

var (
	// ErrNotFound is returned when a local or remote file does not exist
	ErrNotFound = errors.New("not found")

	// ErrRelayUnavailable is returned when the relay container cannot be reached
	ErrRelayUnavailable = errors.New("relay unavailable")

	// ErrCommandFailed matches every *CommandError
	ErrCommandFailed = errors.New("relay command failed")

	// ErrVerification is returned when an upload finished but its listing came back empty
	ErrVerification = errors.New("upload not verified")

	// ErrParse is returned when retrieved content is not valid CSV
	ErrParse = frame.ErrParse
)

// CommandError describes a relay command that exited non-zero.
// Stderr is kept verbatim.
type CommandError struct {
	Args     []string
	ExitCode int
	Stderr   string
}

func (e *CommandError) Error() string {
	msg := fmt.Sprintf("%s exited with status %d", util.ShellJoin(e.Args), e.ExitCode)
	if stderr := strings.TrimSpace(e.Stderr); stderr != "" {
		msg += ": " + stderr
	}
	return msg
}

// Is matches ErrCommandFailed, and ErrNotFound when the hdfs client
// reported a missing path.
func (e *CommandError) Is(target error) bool {
	switch target {
	case ErrCommandFailed:
		return true
	case ErrNotFound:
		return strings.Contains(e.Stderr, "No such file or directory")
	}
	return false
}
