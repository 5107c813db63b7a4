// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

//go:build windows || darwin

package csproj

import (
	"path/filepath"
	"strings"
)

// isProjectFile reports whether name has the project file extension,
// ignoring case as the file systems of this platform do.
func isProjectFile(name string) bool {
	return strings.EqualFold(filepath.Ext(name), Ext)
}
