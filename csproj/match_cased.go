// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

//go:build !windows && !darwin

package csproj

import "path/filepath"

// isProjectFile reports whether name has the project file extension.
// File names are case-sensitive on this platform.
func isProjectFile(name string) bool {
	return filepath.Ext(name) == Ext
}
