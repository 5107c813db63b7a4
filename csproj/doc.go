// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package csproj finds MSBuild project files and normalizes a few build
// settings in them.
//
// [Find] collects project files in a directory tree. [Patch] loads one
// project file, checks that it is an SDK-style project with at least one
// PropertyGroup, and rewrites it in place so that the first PropertyGroup
// has:
//
//	<TargetFramework>net48</TargetFramework>  (only if absent or .NET Framework 4.x)
//	<DebugType>embedded</DebugType>
//	<LangVersion>Latest</LangVersion>
//
// Files that fail the shape checks are reported with a [Result] and left
// untouched.
package csproj
