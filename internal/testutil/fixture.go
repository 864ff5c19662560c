// Package testutil provides filesystem fixtures shared by the package tests.
package testutil

import (
	iofs "io/fs"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/tormodhaugland/treecd/internal/fs"
)

// MkDirs creates each relative directory under root.
func MkDirs(t *testing.T, root string, dirs ...string) {
	t.Helper()
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(root, d), 0o755); err != nil {
			t.Fatalf("mkdir %s: %v", d, err)
		}
	}
}

// WriteFile creates a file of the given size and mode under root.
func WriteFile(t *testing.T, root, name string, size int, mode os.FileMode) string {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.WriteFile(path, make([]byte, size), mode); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	// WriteFile is subject to umask
	if err := os.Chmod(path, mode); err != nil {
		t.Fatalf("chmod %s: %v", name, err)
	}
	return path
}

// Symlink creates root/name pointing at target (used verbatim).
func Symlink(t *testing.T, root, name, target string) string {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.Symlink(target, path); err != nil {
		t.Fatalf("symlink %s -> %s: %v", name, target, err)
	}
	return path
}

// CountingFS wraps an FS and records how often each directory is read.
type CountingFS struct {
	fs.FS

	mu    sync.Mutex
	reads map[string]int
}

// NewCountingFS wraps fsys, or the host filesystem when fsys is nil.
func NewCountingFS(fsys fs.FS) *CountingFS {
	if fsys == nil {
		fsys = fs.OS{}
	}
	return &CountingFS{FS: fsys, reads: make(map[string]int)}
}

func (c *CountingFS) ReadDir(path string) ([]iofs.DirEntry, error) {
	c.mu.Lock()
	c.reads[path]++
	c.mu.Unlock()
	return c.FS.ReadDir(path)
}

// Reads returns the number of ReadDir calls made for path.
func (c *CountingFS) Reads(path string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.reads[path]
}

// TotalReads returns the number of ReadDir calls across all paths.
func (c *CountingFS) TotalReads() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	n := 0
	for _, v := range c.reads {
		n += v
	}
	return n
}
