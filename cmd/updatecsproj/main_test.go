// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"flag"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"golang.org/x/tools/txtar"

	"go.astrophena.name/updatecsproj/cli/clitest"
	"go.astrophena.name/updatecsproj/csproj"
	"go.astrophena.name/updatecsproj/testutil"
	"go.astrophena.name/updatecsproj/version"
)

// runCase is the case.json file of a testdata archive. Other files of the
// archive form the directory tree the command runs in, except those under
// want/, which hold the expected contents of files the run modifies.
type runCase struct {
	Args []string `json:"args"`
	// WantErr is "", "too many", "help", "no single root" or "syntax".
	WantErr string `json:"want_err"`
	// WantErrLine is the line printed for the error. $NAME is replaced
	// with the command name and $WORK with the directory of the tree.
	WantErrLine string `json:"want_err_line"`
	Lines       []struct {
		Path   string `json:"path"`
		Result string `json:"result"`
	} `json:"want_lines"`
	WantInStderr string `json:"want_in_stderr"`
}

var results = []csproj.Result{
	csproj.Success,
	csproj.MissingProjectRoot,
	csproj.MissingSdkAttribute,
	csproj.MissingPropertyGroup,
}

func parseResult(t *testing.T, s string) csproj.Result {
	t.Helper()
	for _, r := range results {
		if r.String() == s {
			return r
		}
	}
	t.Fatalf("unknown result %q", s)
	return 0
}

func newApp(t *testing.T) *app { return new(app) }

// chdirTree extracts ar into a temporary directory, makes it the working
// directory of the test and returns its path as the command will see it.
func chdirTree(t *testing.T, ar *txtar.Archive) string {
	t.Helper()
	dir := t.TempDir()
	testutil.ExtractTxtar(t, ar, dir)
	t.Chdir(dir)
	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	return wd
}

func TestRun(t *testing.T) {
	testutil.Run(t, filepath.Join("testdata", "*.txtar"), func(t *testing.T, match string) {
		ar := testutil.ReadTxtar(t, match)

		var (
			c    runCase
			tree = new(txtar.Archive)
			want = make(map[string]string)
		)
		for _, f := range ar.Files {
			switch {
			case f.Name == "case.json":
				if err := json.Unmarshal(f.Data, &c); err != nil {
					t.Fatalf("Unmarshal(case.json): %v", err)
				}
			case strings.HasPrefix(f.Name, "want/"):
				want[strings.TrimPrefix(f.Name, "want/")] = string(f.Data)
			default:
				tree.Files = append(tree.Files, f)
			}
		}

		wd := chdirTree(t, tree)

		var stdout strings.Builder
		for _, l := range c.Lines {
			path := filepath.Join(wd, filepath.FromSlash(l.Path))
			stdout.WriteString(parseResult(t, l.Result).Message(path) + "\n")
		}

		tc := clitest.Case[*app]{
			Args:               c.Args,
			WantStdout:         stdout.String(),
			WantInStderr:       c.WantInStderr,
			WantNothingPrinted: len(c.Lines) == 0 && c.WantInStderr == "",
			CheckFunc: func(t *testing.T, _ *app) {
				for _, f := range tree.Files {
					got, err := os.ReadFile(filepath.Join(wd, filepath.FromSlash(f.Name)))
					if err != nil {
						t.Fatal(err)
					}
					wantContent, changed := want[f.Name]
					if !changed {
						wantContent = string(f.Data)
					}
					testutil.AssertEqual(t, string(got), wantContent)
				}
			},
		}
		if c.WantErrLine != "" {
			line := filepath.FromSlash(c.WantErrLine)
			line = strings.ReplaceAll(line, "$NAME", version.CmdName())
			tc.WantErrLine = strings.ReplaceAll(line, "$WORK", wd)
		}
		switch c.WantErr {
		case "":
		case "too many":
			tc.WantErr = errTooManyFiles
		case "help":
			tc.WantErr = flag.ErrHelp
		case "no single root":
			tc.WantErr = csproj.ErrNoSingleRoot
		case "syntax":
			tc.WantErrType = &xml.SyntaxError{}
		default:
			t.Fatalf("unknown want_err %q", c.WantErr)
		}

		clitest.Run(t, newApp, map[string]clitest.Case[*app]{"run": tc})
	})
}

func TestRunTwiceIsStable(t *testing.T) {
	wd := chdirTree(t, txtar.Parse([]byte(`-- App.csproj --
<?xml version="1.0"?>
<Project Sdk="Microsoft.NET.Sdk">
	<PropertyGroup>
		<TargetFramework>net6.0</TargetFramework>
	</PropertyGroup>
</Project>
`)))

	var snapshots []string
	snapshot := func(t *testing.T, _ *app) {
		snapshots = append(snapshots, string(testutil.BuildTxtar(t, wd)))
	}
	wantStdout := csproj.Success.Message(filepath.Join(wd, "App.csproj")) + "\n"

	for _, run := range []string{"first", "second"} {
		clitest.Run(t, newApp, map[string]clitest.Case[*app]{
			run: {WantStdout: wantStdout, CheckFunc: snapshot},
		})
	}

	testutil.AssertEqual(t, len(snapshots), 2)
	testutil.AssertEqual(t, snapshots[1], snapshots[0])
	if !strings.Contains(snapshots[0], "<TargetFramework>net6.0</TargetFramework>") {
		t.Fatalf("TargetFramework must be kept, got:\n%s", snapshots[0])
	}
}

func TestRunCancelled(t *testing.T) {
	const in = "<Project Sdk=\"Microsoft.NET.Sdk\"><PropertyGroup/></Project>\n"
	wd := chdirTree(t, txtar.Parse([]byte("-- a.csproj --\n"+in)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	clitest.Run(t, newApp, map[string]clitest.Case[*app]{
		"cancelled before first file": {
			Context:            ctx,
			WantErr:            context.Canceled,
			WantNothingPrinted: true,
			CheckFunc: func(t *testing.T, _ *app) {
				b, err := os.ReadFile(filepath.Join(wd, "a.csproj"))
				if err != nil {
					t.Fatal(err)
				}
				testutil.AssertEqual(t, string(b), in)
			},
		},
	})
}
