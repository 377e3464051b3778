package fileutil

import (
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/harrison/sweepsafe/internal/models"
)

// ErrNotRegular is returned by ReadMetadata for directories, devices, sockets
// and other entries that are not regular files.
var ErrNotRegular = errors.New("not a regular file")

// maxAccessYear marks access times at the top of the representable range,
// which some platforms use to mean "never recorded".
const maxAccessYear = 9999

// ReadMetadata stats path and returns its metadata.
// Any stat failure is returned wrapped; callers are expected to skip the file.
func ReadMetadata(fs afero.Fs, path string) (models.Metadata, error) {
	info, err := fs.Stat(path)
	if err != nil {
		return models.Metadata{}, fmt.Errorf("stat %s: %w", path, err)
	}
	if !info.Mode().IsRegular() {
		return models.Metadata{}, fmt.Errorf("%s: %w", path, ErrNotRegular)
	}

	name := filepath.Base(path)
	meta := models.Metadata{
		Name:         name,
		FullPath:     path,
		SizeBytes:    info.Size(),
		LastModified: info.ModTime(),
		Extension:    filepath.Ext(name),
	}

	if accessed, ok := accessTime(info); ok && validAccessTime(accessed) {
		meta.LastAccessed = &accessed
	}

	return meta, nil
}

// validAccessTime rejects sentinel values that mean "not tracked".
func validAccessTime(t time.Time) bool {
	if t.IsZero() || !t.After(time.Unix(0, 0)) {
		return false
	}
	return t.Year() < maxAccessYear
}
