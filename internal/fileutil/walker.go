package fileutil

import (
	"context"
	"path/filepath"

	"github.com/spf13/afero"
)

// VisitFunc receives the path of every file discovered by Walk.
type VisitFunc func(path string)

// Walk visits every non-directory entry reachable from root.
//
// The root itself is treated like any other directory: if it cannot be listed
// the walk simply yields nothing. Listing errors are never returned. The only
// error Walk returns is ctx.Err() when the context is cancelled, in which case
// the files already passed to visit form a valid partial result.
func Walk(ctx context.Context, fs afero.Fs, root string, visit VisitFunc) error {
	stack := []string{filepath.Clean(root)}
	seen := make(map[string]bool)

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return err
		}

		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if seen[current] {
			continue
		}
		seen[current] = true

		infos, err := afero.ReadDir(fs, current)
		if err != nil {
			// Unlistable directory: skip it and its subtree.
			continue
		}

		var files []string
		for _, info := range infos {
			path := filepath.Join(current, info.Name())
			if info.IsDir() {
				stack = append(stack, path)
				continue
			}
			files = append(files, path)
		}

		for _, path := range files {
			if err := ctx.Err(); err != nil {
				return err
			}
			visit(path)
		}
	}

	return nil
}
