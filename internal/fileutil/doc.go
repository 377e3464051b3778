// Package fileutil walks directory trees and captures per-file metadata.
//
// Everything here is read-only: directories are listed and files are stat'ed,
// nothing is opened for reading or writing. All operations go through an
// afero.Fs so callers can substitute an in-memory or read-only filesystem.
//
// # Walking
//
// Walk performs a depth-first traversal driven by an explicit stack rather than
// recursion, so deeply nested trees cannot exhaust the goroutine stack. A
// directory that cannot be listed (permission denied, name too long, or any
// other error) is skipped together with everything beneath it and the walk
// carries on with the directories already discovered. Symbolic links are
// reported as files, never descended into.
//
//	err := fileutil.Walk(ctx, afero.NewOsFs(), "/data", func(path string) {
//	    fmt.Println(path)
//	})
//	if errors.Is(err, context.Canceled) {
//	    // partial walk
//	}
//
// Sibling order follows the directory listing and callers must not depend on it.
//
// # Metadata
//
// ReadMetadata stats a single file and returns size, modification time,
// extension and, where the platform exposes it, the last access time. Access
// times that are really sentinels (the Unix epoch, a zero FILETIME, or dates
// at the end of the representable range) are dropped so callers fall back to
// the modification time.
package fileutil
