package fileutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

// deniedFs fails Open and Stat for the configured paths, like a directory or
// file the current user may not read.
type deniedFs struct {
	afero.Fs
	denied map[string]bool
}

func newDeniedFs(base afero.Fs, paths ...string) *deniedFs {
	d := &deniedFs{Fs: base, denied: make(map[string]bool)}
	for _, p := range paths {
		d.denied[filepath.Clean(p)] = true
	}
	return d
}

func (d *deniedFs) Open(name string) (afero.File, error) {
	if d.denied[filepath.Clean(name)] {
		return nil, &os.PathError{Op: "open", Path: name, Err: os.ErrPermission}
	}
	return d.Fs.Open(name)
}

func (d *deniedFs) Stat(name string) (os.FileInfo, error) {
	if d.denied[filepath.Clean(name)] {
		return nil, &os.PathError{Op: "stat", Path: name, Err: os.ErrPermission}
	}
	return d.Fs.Stat(name)
}

// writeFiles creates each relative path under root in fs with a small body.
func writeFiles(t *testing.T, fs afero.Fs, root string, paths ...string) {
	t.Helper()
	for _, p := range paths {
		full := filepath.Join(root, p)
		require.NoError(t, fs.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, afero.WriteFile(fs, full, []byte("test content"), 0644))
	}
}

func setTimes(t *testing.T, fs afero.Fs, path string, mtime time.Time) {
	t.Helper()
	require.NoError(t, fs.Chtimes(path, mtime, mtime))
}

// collectFiles walks root and returns every file path found.
func collectFiles(ctx context.Context, fs afero.Fs, root string) ([]string, error) {
	var files []string
	err := Walk(ctx, fs, root, func(path string) {
		files = append(files, path)
	})
	return files, err
}
