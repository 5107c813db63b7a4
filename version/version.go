// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package version reports build information embedded into the running binary.
package version

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"runtime/debug"
	"strings"
	"time"
)

// Info describes the build of the running binary.
type Info struct {
	Name      string
	Module    string
	Commit    string
	Modified  bool
	BuildTime time.Time
	Go        string
	OS        string
	Arch      string
}

// String returns a multi-line human-readable representation of Info.
func (i Info) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s", i.Name)
	if i.Module != "" {
		fmt.Fprintf(&sb, " (%s)", i.Module)
	}
	sb.WriteString("\n")
	if i.Commit != "" {
		commit := i.Commit
		if i.Modified {
			commit += " (modified)"
		}
		fmt.Fprintf(&sb, "commit: %s\n", commit)
	}
	if !i.BuildTime.IsZero() {
		fmt.Fprintf(&sb, "built at: %s\n", i.BuildTime.Format(time.RFC1123))
	}
	fmt.Fprintf(&sb, "go: %s %s/%s\n", i.Go, i.OS, i.Arch)
	return sb.String()
}

// Version returns build information of the running binary.
func Version() Info {
	info := Info{
		Name: CmdName(),
		Go:   runtime.Version(),
		OS:   runtime.GOOS,
		Arch: runtime.GOARCH,
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	info.Module = bi.Main.Path
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			info.Commit = s.Value
		case "vcs.modified":
			info.Modified = s.Value == "true"
		case "vcs.time":
			info.BuildTime, _ = time.Parse(time.RFC3339, s.Value)
		}
	}
	return info
}

// CmdName returns the base name of the current executable without
// extension, falling back to "unknown".
func CmdName() string {
	exe, err := os.Executable()
	if err != nil {
		if len(os.Args) == 0 {
			return "unknown"
		}
		exe = os.Args[0]
	}
	base := filepath.Base(exe)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
