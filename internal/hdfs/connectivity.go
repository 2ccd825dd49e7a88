package hdfs

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Stage names one step of the connectivity check
type Stage string

const (
	StageRelay      Stage = "relay"
	StageFilesystem Stage = "filesystem"
)

// StageResult is the outcome of one stage
type StageResult struct {
	Stage  Stage
	OK     bool
	Detail string
}

// Connectivity reports which stages of the check ran and how they ended.
// FailedStage is empty when every stage passed.
type Connectivity struct {
	Stages      []StageResult
	FailedStage Stage
}

// OK reports whether every stage passed
func (c *Connectivity) OK() bool {
	return c.FailedStage == ""
}

func (c *Connectivity) pass(stage Stage, detail string) {
	c.Stages = append(c.Stages, StageResult{Stage: stage, OK: true, Detail: detail})
}

func (c *Connectivity) fail(stage Stage, detail string) {
	c.Stages = append(c.Stages, StageResult{Stage: stage, Detail: detail})
	c.FailedStage = stage
}

// CheckConnectivity verifies that the relay container is up and that the
// namespace answers a root listing. The filesystem stage only runs once the
// relay stage has passed.
func (b *Bridge) CheckConnectivity(ctx context.Context) (*Connectivity, error) {
	report := &Connectivity{}

	res, err := b.run(ctx, b.docker("ps", "--filter", "name="+b.cfg.Container, "--format", "{{.Status}}"))
	if err != nil {
		report.fail(StageRelay, failureDetail(err))
		if errors.Is(err, ErrRelayUnavailable) {
			return report, err
		}
		return report, fmt.Errorf("%w: %w", ErrRelayUnavailable, err)
	}
	status := strings.TrimSpace(res.Stdout)
	if !strings.Contains(status, "Up") {
		report.fail(StageRelay, fmt.Sprintf("container %s is not running", b.cfg.Container))
		return report, fmt.Errorf("%w: container %s is not running", ErrRelayUnavailable, b.cfg.Container)
	}
	report.pass(StageRelay, fmt.Sprintf("container %s: %s", b.cfg.Container, status))

	if _, err := b.run(ctx, b.dfs("-ls", "/")); err != nil {
		report.fail(StageFilesystem, failureDetail(err))
		return report, fmt.Errorf("hdfs is not accessible: %w", err)
	}
	report.pass(StageFilesystem, "hdfs dfs -ls / succeeded")

	return report, nil
}

func failureDetail(err error) string {
	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		if stderr := strings.TrimSpace(cmdErr.Stderr); stderr != "" {
			return stderr
		}
		return fmt.Sprintf("exit status %d", cmdErr.ExitCode)
	}
	return err.Error()
}
