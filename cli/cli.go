// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package cli provides helpers for creating simple, single-command
// command-line applications.
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"golang.org/x/term"

	"go.astrophena.name/updatecsproj/logger"
	"go.astrophena.name/updatecsproj/version"
)

// Main runs an application, handling signal-based cancellation and printing
// errors to stderr prefixed with the command name. It is intended to be
// called directly from a program's main function.
func Main(app App) {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	err := Run(ctx, app)
	cancel()

	if err == nil || errors.Is(err, ErrExitVersion) {
		return
	}
	PrintError(os.Stderr, err)
	os.Exit(1)
}

// PrintError writes err to w the way [Main] reports it: one line prefixed
// with the command name. Errors from flag parsing and version exits are
// not printed.
func PrintError(w io.Writer, err error) {
	if err == nil || !isPrintableError(err) {
		return
	}
	fmt.Fprintf(w, "%s: %v\n", version.CmdName(), err)
}

type unprintableError struct{ err error }

func (e *unprintableError) Error() string { return e.err.Error() }
func (e *unprintableError) Unwrap() error { return e.err }

func isPrintableError(err error) bool {
	if errors.Is(err, flag.ErrHelp) {
		return false
	}
	var ue *unprintableError
	return !errors.As(err, &ue)
}

// ErrExitVersion signals that the application should exit successfully after
// printing the version information.
var ErrExitVersion = &unprintableError{errors.New("version flag exit")}

// App represents a runnable command-line application.
type App interface {
	// Run executes the application's primary logic.
	Run(context.Context) error
}

// HasFlags is an App that can define its own command-line flags.
type HasFlags interface {
	App

	// Flags registers flags with the given FlagSet. It may replace the
	// FlagSet's Usage function.
	Flags(*flag.FlagSet)
}

// AppFunc is an adapter to allow the use of ordinary functions as an App.
type AppFunc func(context.Context) error

// Run calls the underlying function.
func (f AppFunc) Run(ctx context.Context) error {
	return f(ctx)
}

type ctxKey int

var envKey ctxKey

// GetEnv retrieves the application's environment from a context.
// If the context has no environment, it returns one based on the current OS.
func GetEnv(ctx context.Context) *Env {
	e, ok := ctx.Value(envKey).(*Env)
	if !ok {
		return OSEnv()
	}
	return e
}

// WithEnv returns a new context that carries the provided application environment.
func WithEnv(ctx context.Context, e *Env) context.Context {
	return context.WithValue(ctx, envKey, e)
}

// Env encapsulates the application's environment, including arguments,
// standard I/O streams, and environment variables.
type Env struct {
	Args   []string
	Getenv func(string) string
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// OSEnv creates an Env based on the current operating system environment.
func OSEnv() *Env {
	return &Env{
		Args:   os.Args[1:],
		Getenv: os.Getenv,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// IsTerminal reports whether fd refers to a terminal. Tests may replace it.
var IsTerminal = term.IsTerminal

// useColor reports whether log output written to w may be colorized.
func (e *Env) useColor(w io.Writer) bool {
	if e.Getenv != nil && e.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := w.(interface{ Fd() uintptr })
	return ok && IsTerminal(int(f.Fd()))
}

// Run executes an application. It parses flags, handles the standard -v and
// -version flags, sets up logging to the environment's standard error, and
// then runs the app.
func Run(ctx context.Context, app App) error {
	name := version.CmdName()
	env := GetEnv(ctx)

	flags := flag.NewFlagSet(name, flag.ContinueOnError)
	flags.SetOutput(env.Stderr)
	flags.Usage = func() {
		fmt.Fprintf(env.Stderr, "Usage of %s:\n\n", name)
		flags.PrintDefaults()
	}
	if fa, ok := app.(HasFlags); ok {
		fa.Flags(flags)
	}

	var showVersion, verbose bool
	if flags.Lookup("version") == nil {
		flags.BoolVar(&showVersion, "version", false, "Show version.")
	}
	if flags.Lookup("v") == nil {
		flags.BoolVar(&verbose, "v", false, "Enable debug logging.")
	}

	if err := flags.Parse(env.Args); err != nil {
		// Already reported by the flag package, if at all.
		return &unprintableError{err}
	}

	if showVersion {
		fmt.Fprint(env.Stderr, version.Version())
		return ErrExitVersion
	}

	if logger.IsDefault(logger.Get(ctx)) {
		l := logger.New(nil)
		l.Attach(l.NewTerminalHandler(env.Stderr, env.useColor(env.Stderr)))
		ctx = logger.Put(ctx, l)
	}
	if verbose {
		logger.Get(ctx).Level.Set(slog.LevelDebug)
	}

	env.Args = flags.Args()
	return app.Run(WithEnv(ctx, env))
}
