package hdfs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/danieljhkim/churnguard/internal/env"
)

// fakeRelay emulates docker plus an hdfs client inside one container.
// HDFS paths are stored without their authority.
type fakeRelay struct {
	mu sync.Mutex

	container string
	running   bool
	startErr  error

	scratch    map[string][]byte // files inside the container
	scratchDir map[string]bool   // directories inside the container
	files   map[string][]byte // hdfs files
	dirs    map[string]bool   // hdfs directories

	// fail forces an operation to exit 1; keys are "cp-in", "cp-out", "rm",
	// "ps" or an hdfs flag such as "-put".
	fail map[string]string
	// emptyListing makes "-ls" of a file print nothing
	emptyListing bool

	calls [][]string
}

func newFakeRelay() *fakeRelay {
	return &fakeRelay{
		container: "namenode",
		running:   true,
		scratch:    map[string][]byte{},
		scratchDir: map[string]bool{},
		files:     map[string][]byte{},
		dirs:      map[string]bool{"/": true},
		fail:      map[string]string{},
	}
}

func (f *fakeRelay) Run(_ context.Context, args []string) (*env.Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.calls = append(f.calls, append([]string(nil), args...))
	if f.startErr != nil {
		return nil, f.startErr
	}
	if len(args) < 2 || args[0] != "docker" {
		return nil, fmt.Errorf("unexpected command %v", args)
	}

	switch args[1] {
	case "ps":
		if msg, ok := f.fail["ps"]; ok {
			return exit(args, 1, "", msg), nil
		}
		if f.running {
			return exit(args, 0, "Up 3 minutes\n", ""), nil
		}
		return exit(args, 0, "", ""), nil
	case "cp":
		return f.copy(args)
	case "exec":
		if args[2] != f.container {
			return exit(args, 1, "", "Error: No such container: "+args[2]), nil
		}
		if args[3] == "rm" {
			if msg, ok := f.fail["rm"]; ok {
				return exit(args, 1, "", msg), nil
			}
			return f.remove(args)
		}
		if args[3] == "hdfs" && args[4] == "dfs" {
			return f.dfs(args, args[5:])
		}
	}
	return exit(args, 127, "", "unknown command"), nil
}

// streamingRelay adds env.Streamer to fakeRelay
type streamingRelay struct {
	*fakeRelay
	streamed int
}

func (s *streamingRelay) Stream(ctx context.Context, args []string, stdout, stderr io.Writer) (*env.Result, error) {
	res, err := s.Run(ctx, args)
	if err != nil {
		return nil, err
	}
	s.streamed++
	io.WriteString(stdout, res.Stdout)
	io.WriteString(stderr, res.Stderr)
	return &env.Result{Args: res.Args, ExitCode: res.ExitCode}, nil
}

func (f *fakeRelay) copy(args []string) (*env.Result, error) {
	src, dst := args[2], args[3]
	prefix := f.container + ":"

	if strings.HasPrefix(dst, prefix) {
		if msg, ok := f.fail["cp-in"]; ok {
			return exit(args, 1, "", msg), nil
		}
		data, err := os.ReadFile(src)
		if err != nil {
			return exit(args, 1, "", err.Error()), nil
		}
		f.scratch[strings.TrimPrefix(dst, prefix)] = data
		return exit(args, 0, "", ""), nil
	}

	if msg, ok := f.fail["cp-out"]; ok {
		return exit(args, 1, "", msg), nil
	}
	if f.scratchDir[strings.TrimPrefix(src, prefix)] {
		return exit(args, 1, "", "Error response from daemon: cannot copy directory onto file "+dst), nil
	}
	data, ok := f.scratch[strings.TrimPrefix(src, prefix)]
	if !ok {
		return exit(args, 1, "", "Error: Could not find the file "+src), nil
	}
	if err := os.WriteFile(dst, data, 0644); err != nil {
		return exit(args, 1, "", err.Error()), nil
	}
	return exit(args, 0, "", ""), nil
}

func (f *fakeRelay) dfs(args, dfsArgs []string) (*env.Result, error) {
	op := dfsArgs[0]
	if msg, ok := f.fail[op]; ok {
		return exit(args, 1, "", msg), nil
	}

	switch op {
	case "-ls":
		p := hdfsPath(dfsArgs[1])
		if data, ok := f.files[p]; ok {
			if f.emptyListing {
				return exit(args, 0, "", ""), nil
			}
			return exit(args, 0, lsLine(p, len(data))+"\n", ""), nil
		}
		if !f.dirs[p] {
			return exit(args, 1, "", fmt.Sprintf("ls: `%s': No such file or directory\n", dfsArgs[1])), nil
		}
		children := f.children(p)
		if len(children) == 0 {
			return exit(args, 0, "", ""), nil
		}
		var b strings.Builder
		fmt.Fprintf(&b, "Found %d items\n", len(children))
		for _, c := range children {
			b.WriteString(c + "\n")
		}
		return exit(args, 0, b.String(), ""), nil
	case "-mkdir":
		for p := hdfsPath(dfsArgs[2]); ; p = path.Dir(p) {
			f.dirs[p] = true
			if p == "/" {
				break
			}
		}
		return exit(args, 0, "", ""), nil
	case "-put":
		src, dst := dfsArgs[2], hdfsPath(dfsArgs[3])
		data, ok := f.scratch[src]
		if !ok {
			return exit(args, 1, "", fmt.Sprintf("put: `%s': No such file or directory\n", src)), nil
		}
		if !f.dirs[path.Dir(dst)] {
			return exit(args, 1, "", fmt.Sprintf("put: `%s': No such file or directory: `%s'\n", dfsArgs[3], path.Dir(dst))), nil
		}
		f.files[dst] = append([]byte(nil), data...)
		return exit(args, 0, "", ""), nil
	case "-get":
		src, dst := hdfsPath(dfsArgs[1]), dfsArgs[2]
		if f.dirs[src] {
			f.scratchDir[dst] = true
			for p, data := range f.files {
				if strings.HasPrefix(p, src+"/") {
					f.scratch[dst+strings.TrimPrefix(p, src)] = append([]byte(nil), data...)
				}
			}
			return exit(args, 0, "", ""), nil
		}
		data, ok := f.files[src]
		if !ok {
			return exit(args, 1, "", fmt.Sprintf("get: `%s': No such file or directory\n", dfsArgs[1])), nil
		}
		f.scratch[dst] = append([]byte(nil), data...)
		return exit(args, 0, "", ""), nil
	case "-stat":
		p := hdfsPath(dfsArgs[2])
		data, ok := f.files[p]
		if !ok {
			return exit(args, 1, "", fmt.Sprintf("stat: `%s': No such file or directory\n", dfsArgs[2])), nil
		}
		return exit(args, 0, fmt.Sprintf("%s %d 2024-01-02 10:00:00\n", path.Base(p), len(data)), ""), nil
	}
	return exit(args, 255, "", op+": Unknown command"), nil
}

// remove behaves like rm: directories need -r, -f ignores missing paths.
func (f *fakeRelay) remove(args []string) (*env.Result, error) {
	flags, target := args[4], args[5]
	if f.scratchDir[target] {
		if !strings.Contains(flags, "r") {
			return exit(args, 1, "", fmt.Sprintf("rm: cannot remove '%s': Is a directory\n", target)), nil
		}
		delete(f.scratchDir, target)
		for p := range f.scratch {
			if strings.HasPrefix(p, target+"/") {
				delete(f.scratch, p)
			}
		}
		return exit(args, 0, "", ""), nil
	}
	delete(f.scratch, target)
	return exit(args, 0, "", ""), nil
}

func (f *fakeRelay) children(dir string) []string {
	var out []string
	for p, data := range f.files {
		if path.Dir(p) == dir {
			out = append(out, lsLine(p, len(data)))
		}
	}
	for p := range f.dirs {
		if p != dir && path.Dir(p) == dir {
			out = append(out, "drwxr-xr-x   - root supergroup          0 2024-01-02 10:00 "+p)
		}
	}
	sort.Strings(out)
	return out
}

func (f *fakeRelay) scratchFiles() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []string
	for p := range f.scratch {
		out = append(out, p)
	}
	for p := range f.scratchDir {
		out = append(out, p)
	}
	return out
}

func (f *fakeRelay) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func (f *fakeRelay) ran(sub ...string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	needle := strings.Join(sub, " ")
	for _, c := range f.calls {
		if strings.Contains(strings.Join(c, " "), needle) {
			return true
		}
	}
	return false
}

func hdfsPath(p string) string {
	_, rest := splitAuthority(p)
	return rest
}

func lsLine(p string, size int) string {
	return fmt.Sprintf("-rw-r--r--   1 root supergroup %10d 2024-01-02 10:00 %s", size, p)
}

func exit(args []string, code int, stdout, stderr string) *env.Result {
	return &env.Result{Args: args, ExitCode: code, Stdout: stdout, Stderr: stderr}
}
