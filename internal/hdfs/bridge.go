// Package hdfs moves files between the host and HDFS through a relay
// container that carries the hdfs client.
//
// Every transfer is two hops: "docker cp" between the host and a scratch
// file inside the container, and "hdfs dfs" between that scratch file and
// the namespace. Scratch files are removed once a transfer ends, whatever
// its outcome.
package hdfs

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/danieljhkim/churnguard/internal/config"
	"github.com/danieljhkim/churnguard/internal/env"
	"github.com/danieljhkim/churnguard/internal/frame"
	"github.com/danieljhkim/churnguard/internal/util"
)

// Bridge runs hdfs operations through the relay container
type Bridge struct {
	cfg    config.HDFSConfig
	runner env.Runner
	logger *zap.Logger

	now     func() time.Time
	newID   func() string
	tempDir string // host directory for downloads, "" means os.TempDir
}

// NewBridge creates a bridge. A nil logger discards diagnostics.
func NewBridge(cfg config.HDFSConfig, runner env.Runner, logger *zap.Logger) *Bridge {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Bridge{
		cfg:    cfg,
		runner: runner,
		logger: logger.Named("hdfs"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Container returns the relay container name
func (b *Bridge) Container() string {
	return b.cfg.Container
}

// UploadStatus is the outcome of an upload
type UploadStatus int

const (
	StatusFailed UploadStatus = iota
	StatusUploaded
	StatusUnverified
)

func (s UploadStatus) String() string {
	switch s {
	case StatusUploaded:
		return "uploaded"
	case StatusUnverified:
		return "unverified"
	default:
		return "failed"
	}
}

// UploadResult describes a finished upload attempt
type UploadResult struct {
	Local   string
	Remote  string
	Status  UploadStatus
	Listing string // "-ls" output of the destination when verified
}

// Upload copies a host file into HDFS. remoteName defaults to the base name
// of localPath and is resolved like any other remote path.
//
// A verified upload returns StatusUploaded and a nil error. When the final
// listing fails or is empty the result is StatusUnverified together with
// ErrVerification. Any earlier failure is StatusFailed.
func (b *Bridge) Upload(ctx context.Context, localPath, remoteName string) (*UploadResult, error) {
	result := &UploadResult{Local: localPath, Status: StatusFailed}

	info, err := os.Stat(localPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return result, fmt.Errorf("local file %s: %w", localPath, ErrNotFound)
		}
		return result, fmt.Errorf("failed to stat %s: %w", localPath, err)
	}
	if !info.Mode().IsRegular() {
		return result, fmt.Errorf("local file %s is not a regular file: %w", localPath, ErrNotFound)
	}

	if remoteName == "" {
		remoteName = filepath.Base(localPath)
	}
	dest := b.Resolve(remoteName)
	result.Remote = dest

	scratch := b.scratchPath("upload", filepath.Base(localPath))
	defer b.removeScratch(ctx, scratch)

	if _, err := b.run(ctx, b.docker("cp", localPath, b.cfg.Container+":"+scratch)); err != nil {
		return result, fmt.Errorf("failed to copy %s into %s: %w", localPath, b.cfg.Container, err)
	}
	if _, err := b.run(ctx, b.dfs("-mkdir", "-p", parentDir(dest))); err != nil {
		return result, fmt.Errorf("failed to create %s: %w", parentDir(dest), err)
	}
	if _, err := b.run(ctx, b.dfs("-put", "-f", scratch, dest)); err != nil {
		return result, fmt.Errorf("failed to put %s: %w", dest, err)
	}

	res, err := b.run(ctx, b.dfs("-ls", dest))
	if err != nil {
		result.Status = StatusUnverified
		return result, fmt.Errorf("%w: listing %s failed: %v", ErrVerification, dest, err)
	}
	listing := strings.TrimSpace(res.Stdout)
	if listing == "" {
		result.Status = StatusUnverified
		return result, fmt.Errorf("%w: listing %s is empty", ErrVerification, dest)
	}

	result.Status = StatusUploaded
	result.Listing = listing
	return result, nil
}

// Fetch returns the raw bytes of a remote file
func (b *Bridge) Fetch(ctx context.Context, remotePath string) ([]byte, error) {
	remote := b.Resolve(remotePath)

	scratch := b.scratchPath("download", baseName(remote))
	defer b.removeScratch(ctx, scratch)

	if _, err := b.run(ctx, b.dfs("-get", remote, scratch)); err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", remote, err)
	}

	tmp, err := os.CreateTemp(b.tempDir, "churnguard_hdfs_*")
	if err != nil {
		return nil, fmt.Errorf("failed to create host temp file: %w", err)
	}
	local := tmp.Name()
	tmp.Close()
	defer func() {
		if err := util.RemoveQuietly(local); err != nil {
			b.logger.Warn("failed to remove host temp file", zap.String("path", local), zap.Error(err))
		}
	}()

	if _, err := b.run(ctx, b.docker("cp", b.cfg.Container+":"+scratch, local)); err != nil {
		return nil, fmt.Errorf("failed to copy %s out of %s: %w", remote, b.cfg.Container, err)
	}

	data, err := os.ReadFile(local)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", local, err)
	}
	return data, nil
}

// Download fetches a remote CSV file and parses it
func (b *Bridge) Download(ctx context.Context, remotePath string) (*frame.Frame, error) {
	data, err := b.Fetch(ctx, remotePath)
	if err != nil {
		return nil, err
	}

	f, err := frame.ParseCSV(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", b.Resolve(remotePath), err)
	}
	b.logger.Debug("parsed remote csv",
		zap.String("path", b.Resolve(remotePath)),
		zap.Int("rows", f.Rows()),
		zap.Int("bytes", len(data)))
	return f, nil
}

var foundHeader = regexp.MustCompile(`^Found \d+ items?$`)

// List returns the "-ls" lines of a directory without the "Found N items"
// header. An empty p lists the raw-data directory. An empty directory yields
// an empty slice and no error.
func (b *Bridge) List(ctx context.Context, p string) ([]string, error) {
	dir := b.RawDir()
	if p != "" {
		dir = b.Resolve(p)
	}

	res, err := b.run(ctx, b.dfs("-ls", dir))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	return parseListing(res.Stdout), nil
}

func parseListing(out string) []string {
	entries := []string{}
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" || foundHeader.MatchString(line) {
			continue
		}
		entries = append(entries, line)
	}
	return entries
}

// FileInfo is what "-stat %n %b %y" reports for a path
type FileInfo struct {
	Path    string
	Name    string
	Size    int64
	ModTime time.Time
	Raw     string
}

// Stat reports the name, size and modification time of a remote path
func (b *Bridge) Stat(ctx context.Context, p string) (*FileInfo, error) {
	remote := b.Resolve(p)

	res, err := b.run(ctx, b.dfs("-stat", "%n %b %y", remote))
	if err != nil {
		return nil, fmt.Errorf("failed to stat %s: %w", remote, err)
	}

	info, err := parseStat(strings.TrimSpace(res.Stdout))
	if err != nil {
		return nil, err
	}
	info.Path = remote
	return info, nil
}

func parseStat(raw string) (*FileInfo, error) {
	fields := strings.Fields(raw)
	if len(fields) < 4 {
		return nil, fmt.Errorf("unexpected stat output %q", raw)
	}

	n := len(fields)
	var size int64
	if _, err := fmt.Sscan(fields[n-3], &size); err != nil {
		return nil, fmt.Errorf("unexpected size in stat output %q", raw)
	}
	mtime, err := time.Parse("2006-01-02 15:04:05", fields[n-2]+" "+fields[n-1])
	if err != nil {
		return nil, fmt.Errorf("unexpected time in stat output %q", raw)
	}

	return &FileInfo{
		Name:    strings.Join(fields[:n-3], " "),
		Size:    size,
		ModTime: mtime,
		Raw:     raw,
	}, nil
}

// DFS runs "hdfs dfs <args...>" inside the relay container.
// The result is returned even when the command fails so callers can show its output.
func (b *Bridge) DFS(ctx context.Context, args []string) (*env.Result, error) {
	return b.run(ctx, b.dfs(args...))
}

// StreamDFS is DFS with output written to stdout and stderr as it arrives.
// Runners that cannot stream are run to completion and their output copied.
func (b *Bridge) StreamDFS(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	streamer, ok := b.runner.(env.Streamer)
	if !ok {
		res, err := b.DFS(ctx, args)
		if res != nil {
			io.WriteString(stdout, res.Stdout)
			io.WriteString(stderr, res.Stderr)
		}
		return err
	}

	full := b.dfs(args...)
	b.logger.Debug("streaming relay command", zap.String("cmd", util.ShellJoin(full)))

	var errBuf bytes.Buffer
	res, err := streamer.Stream(ctx, full, stdout, io.MultiWriter(stderr, &errBuf))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRelayUnavailable, err)
	}
	if !res.Success() {
		return &CommandError{Args: full, ExitCode: res.ExitCode, Stderr: errBuf.String()}
	}
	return nil
}

func (b *Bridge) docker(args ...string) []string {
	return append([]string{b.cfg.Docker}, args...)
}

func (b *Bridge) dfs(args ...string) []string {
	return b.docker(append([]string{"exec", b.cfg.Container, "hdfs", "dfs"}, args...)...)
}

func (b *Bridge) run(ctx context.Context, args []string) (*env.Result, error) {
	b.logger.Debug("running relay command", zap.String("cmd", util.ShellJoin(args)))

	res, err := b.runner.Run(ctx, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrRelayUnavailable, err)
	}
	if !res.Success() {
		b.logger.Debug("relay command failed",
			zap.String("cmd", util.ShellJoin(args)),
			zap.Int("exit_code", res.ExitCode),
			zap.String("stderr", strings.TrimSpace(res.Stderr)))
		return res, &CommandError{Args: args, ExitCode: res.ExitCode, Stderr: res.Stderr}
	}
	return res, nil
}

// scratchPath names a relay-side file unique to one transfer
func (b *Bridge) scratchPath(prefix, base string) string {
	id := strings.ReplaceAll(b.newID(), "-", "")
	if len(id) > 8 {
		id = id[:8]
	}
	name := fmt.Sprintf("%s_%d_%s", prefix, b.now().UnixNano(), id)
	if base != "" && base != "/" && base != "." {
		name += "_" + base
	}
	return path.Join(b.cfg.ScratchDir, name)
}

// removeScratch deletes a relay-side scratch path. A "-get" of an HDFS
// directory leaves a directory there, hence -r. Failures are logged only.
func (b *Bridge) removeScratch(ctx context.Context, scratch string) {
	if _, err := b.run(context.WithoutCancel(ctx), b.docker("exec", b.cfg.Container, "rm", "-rf", scratch)); err != nil {
		b.logger.Warn("failed to remove relay scratch file",
			zap.String("container", b.cfg.Container),
			zap.String("path", scratch),
			zap.Error(err))
	}
}
