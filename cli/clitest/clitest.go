// © 2025 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package clitest provides a table-driven harness for testing [cli.App]
// implementations.
package clitest

import (
	"bytes"
	"context"
	"errors"
	"io"
	"reflect"
	"strings"
	"testing"

	"go.astrophena.name/updatecsproj/cli"
)

// Case describes a single invocation of an application and the expectations
// about its outcome.
type Case[T cli.App] struct {
	// Args are the command-line arguments, without the program name.
	Args []string
	// Stdin is the standard input. If nil, it is empty.
	Stdin io.Reader
	// Env holds environment variables visible to the application.
	Env map[string]string
	// Context is the parent context of the run. If nil, it is
	// context.Background().
	Context context.Context

	// WantNothingPrinted requires both stdout and stderr to be empty.
	WantNothingPrinted bool
	// WantStdout, if set, must equal stdout exactly.
	WantStdout string
	// WantInStdout is a substring that stdout must contain.
	WantInStdout string
	// WantInStderr is a substring that stderr must contain.
	WantInStderr string
	// WantErr is matched against the returned error with [errors.Is].
	WantErr error
	// WantErrType is matched against the returned error with [errors.As].
	WantErrType error
	// WantErrLine, if set, must equal what [cli.PrintError] writes for the
	// returned error.
	WantErrLine string
	// CheckFunc, if set, runs after the application finished.
	CheckFunc func(*testing.T, T)
}

// Run executes each case in a subtest with a fresh application returned by
// setup.
func Run[T cli.App](t *testing.T, setup func(*testing.T) T, cases map[string]Case[T]) {
	t.Helper()
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			app := setup(t)

			stdin := tc.Stdin
			if stdin == nil {
				stdin = strings.NewReader("")
			}
			var stdout, stderr bytes.Buffer
			env := &cli.Env{
				Args:   tc.Args,
				Stdin:  stdin,
				Stdout: &stdout,
				Stderr: &stderr,
				Getenv: func(key string) string { return tc.Env[key] },
			}

			ctx := tc.Context
			if ctx == nil {
				ctx = context.Background()
			}
			err := cli.Run(cli.WithEnv(ctx, env), app)

			switch {
			case tc.WantErr != nil:
				if !errors.Is(err, tc.WantErr) {
					t.Fatalf("want error %v, got %v", tc.WantErr, err)
				}
			case tc.WantErrType != nil:
				target := reflect.New(reflect.TypeOf(tc.WantErrType))
				if !errors.As(err, target.Interface()) {
					t.Fatalf("want error of type %T, got %v", tc.WantErrType, err)
				}
			case err != nil:
				t.Fatalf("unexpected error: %v", err)
			}

			if tc.WantErrLine != "" {
				var line bytes.Buffer
				cli.PrintError(&line, err)
				if line.String() != tc.WantErrLine {
					t.Errorf("error line = %q, want %q", line.String(), tc.WantErrLine)
				}
			}
			if tc.WantNothingPrinted && (stdout.Len() > 0 || stderr.Len() > 0) {
				t.Errorf("want nothing printed, got stdout %q and stderr %q", stdout.String(), stderr.String())
			}
			if tc.WantStdout != "" && stdout.String() != tc.WantStdout {
				t.Errorf("stdout = %q, want %q", stdout.String(), tc.WantStdout)
			}
			if tc.WantInStdout != "" && !strings.Contains(stdout.String(), tc.WantInStdout) {
				t.Errorf("stdout must contain %q, got %q", tc.WantInStdout, stdout.String())
			}
			if tc.WantInStderr != "" && !strings.Contains(stderr.String(), tc.WantInStderr) {
				t.Errorf("stderr must contain %q, got %q", tc.WantInStderr, stderr.String())
			}
			if tc.CheckFunc != nil {
				tc.CheckFunc(t, app)
			}
		})
	}
}
