package fs

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FS is the set of filesystem calls the browser relies on. Every call may
// fail; callers substitute empty or neutral values instead of propagating.
type FS interface {
	ReadDir(path string) ([]fs.DirEntry, error)
	Stat(path string) (fs.FileInfo, error)
	Lstat(path string) (fs.FileInfo, error)
	Readlink(path string) (string, error)
}

// OS implements FS on top of the host filesystem.
type OS struct{}

func (OS) ReadDir(path string) ([]fs.DirEntry, error) { return os.ReadDir(path) }
func (OS) Stat(path string) (fs.FileInfo, error)      { return os.Stat(path) }
func (OS) Lstat(path string) (fs.FileInfo, error)     { return os.Lstat(path) }
func (OS) Readlink(path string) (string, error)       { return os.Readlink(path) }

// IsDir reports whether path resolves (following symlinks) to a directory.
func IsDir(fsys FS, path string) bool {
	info, err := fsys.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// HasPathPrefix reports whether prefix names path itself or one of its
// ancestors, comparing whole path components: "/a/b" is a prefix of
// "/a/b/c" but not of "/a/bc".
func HasPathPrefix(path, prefix string) bool {
	path = filepath.Clean(path)
	prefix = filepath.Clean(prefix)
	if path == prefix {
		return true
	}
	if !strings.HasSuffix(prefix, string(filepath.Separator)) {
		prefix += string(filepath.Separator)
	}
	return strings.HasPrefix(path, prefix)
}

// Ancestors returns the chain of directories from root down to target,
// both included. It returns nil when target is not under root.
func Ancestors(root, target string) []string {
	root = filepath.Clean(root)
	target = filepath.Clean(target)
	if !HasPathPrefix(target, root) {
		return nil
	}

	var chain []string
	for p := target; ; p = filepath.Dir(p) {
		chain = append(chain, p)
		if p == root {
			break
		}
		if parent := filepath.Dir(p); parent == p {
			break
		}
	}

	for i, j := 0, len(chain)-1; i < j; i, j = i+1, j-1 {
		chain[i], chain[j] = chain[j], chain[i]
	}
	return chain
}

// IsExecutable reports whether any execute bit is set.
func IsExecutable(mode fs.FileMode) bool {
	return mode.Perm()&0o111 != 0
}
