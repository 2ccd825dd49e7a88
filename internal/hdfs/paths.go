package hdfs

import (
	"path"
	"strings"
)

// RawDir returns the fully qualified raw-data directory
func (b *Bridge) RawDir() string {
	return b.qualify(path.Join(b.cfg.Root, b.cfg.RawSubdir))
}

// Resolve maps a user-supplied path into the HDFS namespace.
// Namespace-qualified and absolute paths are kept as given; anything else
// is placed under the raw-data directory.
func (b *Bridge) Resolve(p string) string {
	if strings.HasPrefix(p, "hdfs://") || strings.HasPrefix(p, "/") {
		return p
	}
	return b.qualify(path.Join(b.cfg.Root, b.cfg.RawSubdir, p))
}

func (b *Bridge) qualify(p string) string {
	if b.cfg.NameNode == "" {
		return p
	}
	return strings.TrimRight(b.cfg.NameNode, "/") + p
}

// splitAuthority separates "scheme://host:port" from the path part.
// Plain paths have an empty authority.
func splitAuthority(p string) (authority, rest string) {
	i := strings.Index(p, "://")
	if i < 0 {
		return "", p
	}
	j := strings.Index(p[i+3:], "/")
	if j < 0 {
		return p, "/"
	}
	return p[:i+3+j], p[i+3+j:]
}

// parentDir is path.Dir that leaves the "//" of a scheme intact
func parentDir(p string) string {
	authority, rest := splitAuthority(p)
	return authority + path.Dir(rest)
}

func baseName(p string) string {
	_, rest := splitAuthority(p)
	return path.Base(rest)
}
