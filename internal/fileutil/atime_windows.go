//go:build windows

package fileutil

import (
	"os"
	"syscall"
	"time"
)

// accessTime extracts the last access FILETIME. A zero FILETIME lands before
// the Unix epoch and is filtered out by validAccessTime.
func accessTime(info os.FileInfo) (time.Time, bool) {
	data, ok := info.Sys().(*syscall.Win32FileAttributeData)
	if !ok || data == nil {
		return time.Time{}, false
	}
	if data.LastAccessTime.HighDateTime == 0 && data.LastAccessTime.LowDateTime == 0 {
		return time.Time{}, false
	}
	return time.Unix(0, data.LastAccessTime.Nanoseconds()), true
}
