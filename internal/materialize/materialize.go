package materialize

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"

	"go.uber.org/zap"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
	execPerm fs.FileMode = 0o755
)

// Materializer copies template trees onto the local filesystem.
type Materializer struct {
	logger *zap.Logger
}

// New creates a Materializer. A nil logger discards all output.
func New(logger *zap.Logger) *Materializer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Materializer{logger: logger}
}

// MaterializeDir copies the directory tree rooted at srcDir into dst.
func (m *Materializer) MaterializeDir(srcDir, dst string) error {
	return m.Materialize(os.DirFS(srcDir), dst)
}

// Materialize copies every directory and regular file of src into dst,
// creating dst and any missing ancestors first.
func (m *Materializer) Materialize(src fs.FS, dst string) error {
	if err := checkSource(src); err != nil {
		return err
	}
	return m.copyDir(src, ".", dst)
}

// Plan returns the sorted, slash-separated paths of every file Materialize
// would write. It applies the same entry-kind rules as Materialize.
func Plan(src fs.FS) ([]string, error) {
	if err := checkSource(src); err != nil {
		return nil, err
	}

	var files []string
	err := fs.WalkDir(src, ".", func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrSourceRead, p, err)
		}
		if entry.IsDir() {
			return nil
		}
		if !entry.Type().IsRegular() {
			return unsupported(p, entry)
		}
		files = append(files, p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

func checkSource(src fs.FS) error {
	info, err := fs.Stat(src, ".")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrSourceMissing, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: template root is not a directory", ErrSourceMissing)
	}
	return nil
}

// copyDir mirrors the source directory dir into dst, recursing into
// sub-directories.
func (m *Materializer) copyDir(src fs.FS, dir, dst string) error {
	if err := os.MkdirAll(dst, dirPerm); err != nil {
		return fmt.Errorf("%w: creating directory %s: %w", ErrDestinationWrite, dst, err)
	}

	entries, err := fs.ReadDir(src, dir)
	if err != nil {
		return fmt.Errorf("%w: reading directory %s: %w", ErrSourceRead, dir, err)
	}

	for _, entry := range entries {
		srcPath := path.Join(dir, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		switch {
		case entry.IsDir():
			if err := m.copyDir(src, srcPath, dstPath); err != nil {
				return err
			}
		case entry.Type().IsRegular():
			if err := m.copyFile(src, srcPath, dstPath, entry); err != nil {
				return err
			}
		default:
			return unsupported(srcPath, entry)
		}
	}

	return nil
}

// copyFile writes the full content of the source file to dst, truncating
// any existing file. Only the executable bit is carried over.
func (m *Materializer) copyFile(src fs.FS, srcPath, dst string, entry fs.DirEntry) error {
	data, err := fs.ReadFile(src, srcPath)
	if err != nil {
		return fmt.Errorf("%w: reading file %s: %w", ErrSourceRead, srcPath, err)
	}

	perm := filePerm
	if info, err := entry.Info(); err == nil && info.Mode().Perm()&0o111 != 0 {
		perm = execPerm
	}

	if err := os.WriteFile(dst, data, perm); err != nil {
		return fmt.Errorf("%w: writing file %s: %w", ErrDestinationWrite, dst, err)
	}

	m.logger.Debug("copied file",
		zap.String("path", srcPath),
		zap.Int("bytes", len(data)),
	)
	return nil
}

func unsupported(p string, entry fs.DirEntry) error {
	return fmt.Errorf("%w: %s (%s)", ErrUnsupportedEntry, p, KindOf(entry.Type()))
}

// KindOf names the type of a non-regular entry, such as "symlink" or
// "named pipe".
func KindOf(mode fs.FileMode) string {
	switch {
	case mode&fs.ModeSymlink != 0:
		return "symlink"
	case mode&fs.ModeNamedPipe != 0:
		return "named pipe"
	case mode&fs.ModeSocket != 0:
		return "socket"
	case mode&fs.ModeDevice != 0:
		return "device"
	default:
		return mode.Type().String()
	}
}
