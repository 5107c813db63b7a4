// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package csproj

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"go.astrophena.name/updatecsproj/logger"
)

// Ext is the file name extension of project files.
const Ext = ".csproj"

// Find returns the paths of all project files in dir and its
// subdirectories. Symbolic links to directories are neither followed nor
// returned, even if their names look like project files.
//
// The order of returned paths is the traversal order: files of a directory
// come before files of its subdirectories, and subdirectories are visited
// in reverse lexical order.
//
// Any failure to read a directory stops the search.
func Find(ctx context.Context, dir string) ([]string, error) {
	var (
		files []string
		stack = []string{dir}
	)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		entries, err := os.ReadDir(cur)
		if err != nil {
			return nil, err
		}
		logger.Debug(ctx, "scanning directory", slog.String("dir", cur))

		for _, e := range entries {
			path := filepath.Join(cur, e.Name())
			if e.IsDir() {
				stack = append(stack, path)
				continue
			}
			if isProjectFile(e.Name()) && !isDirLink(e, path) {
				logger.Debug(ctx, "found project file", slog.String("path", path))
				files = append(files, path)
			}
		}
	}
	return files, nil
}

// isDirLink reports whether e is a symbolic link resolving to a directory.
// Dangling links are not directories.
func isDirLink(e fs.DirEntry, path string) bool {
	if e.Type()&fs.ModeSymlink == 0 {
		return false
	}
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
