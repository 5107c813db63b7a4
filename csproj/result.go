// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package csproj

import "fmt"

// Result is the outcome of patching a single project file.
type Result int

const (
	// Success means the file was normalized and written back.
	Success Result = iota
	// MissingProjectRoot means the root element is not <Project>.
	MissingProjectRoot
	// MissingSdkAttribute means the <Project> root has no Sdk attribute.
	MissingSdkAttribute
	// MissingPropertyGroup means the document has no <PropertyGroup>.
	MissingPropertyGroup
)

func (r Result) String() string {
	switch r {
	case Success:
		return "success"
	case MissingProjectRoot:
		return "missing project root"
	case MissingSdkAttribute:
		return "missing Sdk attribute"
	case MissingPropertyGroup:
		return "missing property group"
	}
	return fmt.Sprintf("Result(%d)", int(r))
}

// Message returns a human-readable report line for the file at path.
func (r Result) Message(path string) string {
	switch r {
	case Success:
		return fmt.Sprintf("Updated file %s", path)
	case MissingProjectRoot:
		return fmt.Sprintf("File %s does not have <Project> as the root element", path)
	case MissingSdkAttribute:
		return fmt.Sprintf("File %s has a <Project> root node but does not have an Sdk Attribute in the root node", path)
	case MissingPropertyGroup:
		return fmt.Sprintf("File %s has a <Project> root node and Sdk attribute but does not have any PropertyGroup nodes", path)
	}
	return fmt.Sprintf("File %s: %v", path, r)
}
