// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

/*
Updatecsproj normalizes build settings of the C# projects in the current
directory.

It walks the current directory and its subdirectories looking for *.csproj
files. If more than three are found, it refuses to do anything. Otherwise
each file is checked to be an SDK-style project (a <Project> root with an Sdk
attribute) with at least one <PropertyGroup>. The first PropertyGroup of
such a project gets:

  - TargetFramework set to net48, unless it already names a framework that
    is not .NET Framework 4.x (for example, net6.0 is kept).
  - DebugType set to embedded.
  - LangVersion set to Latest.

The file is then rewritten in place, indented and without an XML
declaration. One line describing the outcome is printed for every file.

Pass -v to log details about the search and the changed fields to stderr.
*/
package main
