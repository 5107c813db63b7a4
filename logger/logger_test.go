// © 2024 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package logger

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"go.astrophena.name/updatecsproj/testutil"
)

func TestGetDefault(t *testing.T) {
	l := Get(context.Background())
	testutil.AssertEqual(t, IsDefault(l), true)
	// Must not panic or print anything.
	Info(context.Background(), "discarded")
}

func TestAttachDetach(t *testing.T) {
	l := New(nil)
	ctx := Put(context.Background(), l)

	var buf bytes.Buffer
	h := l.NewTerminalHandler(&buf, false)
	l.Attach(h)

	Info(ctx, "first", slog.String("path", "a.csproj"))
	Debug(ctx, "hidden")
	l.Detach(h)
	Info(ctx, "second")

	out := buf.String()
	if !strings.Contains(out, "first") || !strings.Contains(out, "path=a.csproj") {
		t.Fatalf("output must contain first record, got %q", out)
	}
	if strings.Contains(out, "hidden") {
		t.Fatalf("debug record must be filtered at info level, got %q", out)
	}
	if strings.Contains(out, "second") {
		t.Fatalf("record after Detach must not be written, got %q", out)
	}
}

func TestLevelVar(t *testing.T) {
	l := New(nil)
	ctx := Put(context.Background(), l)

	var buf bytes.Buffer
	l.Attach(l.NewTerminalHandler(&buf, false))
	l.Level.Set(slog.LevelDebug)

	Debug(ctx, "visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Fatalf("debug record must be written at debug level, got %q", buf.String())
	}
}

func TestWithAttrs(t *testing.T) {
	l := New(nil)
	var buf bytes.Buffer
	l.Attach(l.NewTerminalHandler(&buf, false))

	l.With("file", "x.csproj").WithGroup("g").Warn("patched", "field", "DebugType")
	out := buf.String()
	for _, want := range []string{"file=x.csproj", "g.field=DebugType", "WRN"} {
		if !strings.Contains(out, want) {
			t.Errorf("output must contain %q, got %q", want, out)
		}
	}
}
