// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"go.astrophena.name/updatecsproj/cli"
	"go.astrophena.name/updatecsproj/csproj"
	"go.astrophena.name/updatecsproj/logger"
)

// maxFiles is the number of project files processed in one run.
const maxFiles = 3

var errTooManyFiles = errors.New("too many csproj files to process")

func main() { cli.Main(new(app)) }

type app struct{}

// Flags silences usage: -help exits with a failure status and prints nothing.
func (a *app) Flags(fs *flag.FlagSet) {
	fs.Usage = func() {}
}

func (a *app) Run(ctx context.Context) error {
	env := cli.GetEnv(ctx)

	dir, err := os.Getwd()
	if err != nil {
		return err
	}

	files, err := csproj.Find(ctx, dir)
	if err != nil {
		return err
	}
	if len(files) > maxFiles {
		return fmt.Errorf("%w: found %d, the limit is %d", errTooManyFiles, len(files), maxFiles)
	}

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return err
		}
		res, err := csproj.Patch(ctx, file)
		if err != nil {
			return err
		}
		logger.Debug(ctx, "processed project file", slog.String("path", file), slog.String("result", res.String()))
		fmt.Fprintln(env.Stdout, res.Message(file))
	}
	return nil
}
