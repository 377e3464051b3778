//go:build darwin || freebsd || netbsd

package fileutil

import (
	"os"
	"syscall"
	"time"
)

// accessTime extracts atime from the platform stat structure.
func accessTime(info os.FileInfo) (time.Time, bool) {
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok || stat == nil {
		return time.Time{}, false
	}
	sec, nsec := stat.Atimespec.Unix()
	return time.Unix(sec, nsec), true
}
