// Package inspect implements the file list popup: a listing of the
// non-directory entries of a directory with size, modification time and
// permissions, plus its scroll state.
package inspect

import (
	"fmt"
	iofs "io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/tormodhaugland/treecd/internal/fs"
)

// Kind decides how an entry is styled.
type Kind int

const (
	KindFile   Kind = iota // regular file
	KindExec               // regular file with an execute bit
	KindLink               // symlink to a non-directory
	KindBroken             // symlink whose target cannot be resolved
)

func (k Kind) String() string {
	switch k {
	case KindFile:
		return "file"
	case KindExec:
		return "executable"
	case KindLink:
		return "symlink"
	case KindBroken:
		return "broken symlink"
	default:
		return "unknown"
	}
}

// Entry is one row of the popup.
type Entry struct {
	Name    string
	Target  string // raw link target for symlinks
	Kind    Kind
	Size    int64
	ModTime time.Time
	Mode    iofs.FileMode
}

// TimeLayout is the minute-precision layout used for modification times.
const TimeLayout = "2006-01-02 15:04"

// Label is the display name, including the link annotation.
func (e Entry) Label() string {
	switch e.Kind {
	case KindBroken:
		return e.Name + " -> ???"
	case KindLink:
		target := e.Target
		if target == "" {
			target = "???"
		}
		return e.Name + " -> " + target
	default:
		return e.Name
	}
}

func (e Entry) SizeString() string { return FormatSize(e.Size) }

func (e Entry) TimeString() string {
	if e.ModTime.IsZero() {
		return "???"
	}
	return e.ModTime.Local().Format(TimeLayout)
}

func (e Entry) PermString() string { return PermString(e.Mode) }

// List reads dir and returns its non-directory entries sorted by name.
// Directories, symlinks to directories and special files are skipped. The
// metadata shown for symlinks is that of the link itself.
func List(fsys fs.FS, dir string) ([]Entry, error) {
	dirEntries, err := fsys.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	sort.Slice(dirEntries, func(i, j int) bool {
		return dirEntries[i].Name() < dirEntries[j].Name()
	})

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entry, ok := describe(fsys, filepath.Join(dir, de.Name()), de.Name())
		if ok {
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

func describe(fsys fs.FS, path, name string) (Entry, bool) {
	info, err := fsys.Lstat(path)
	if err != nil || info.IsDir() {
		return Entry{}, false
	}

	entry := Entry{
		Name:    name,
		Size:    info.Size(),
		ModTime: info.ModTime(),
		Mode:    info.Mode(),
	}

	switch {
	case info.Mode()&os.ModeSymlink != 0:
		entry.Target, _ = fsys.Readlink(path)
		resolved, err := fsys.Stat(path)
		if err != nil {
			entry.Kind = KindBroken
			break
		}
		if resolved.IsDir() {
			return Entry{}, false
		}
		entry.Kind = KindLink
	case info.Mode().IsRegular():
		entry.Kind = KindFile
		if fs.IsExecutable(info.Mode()) {
			entry.Kind = KindExec
		}
	default:
		return Entry{}, false
	}
	return entry, true
}

// FormatSize renders a byte count with 1024-based units.
func FormatSize(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)

	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/GB)
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/MB)
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/KB)
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// PermString renders the nine permission bits as rwxrwxrwx.
func PermString(mode iofs.FileMode) string {
	const letters = "rwxrwxrwx"
	perm := mode.Perm()
	out := []byte("---------")
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			out[i] = letters[i]
		}
	}
	return string(out)
}
