// © 2026 Ilya Mateyko. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

package csproj

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/beevik/etree"

	"go.astrophena.name/updatecsproj/logger"
)

// Values written into the first PropertyGroup.
const (
	TargetFramework = "net48"
	DebugType       = "embedded"
	LangVersion     = "Latest"
)

// ErrNoSingleRoot is returned by [Patch] for files that parse but are not
// a single XML element, such as empty files, plain text or several root
// elements.
var ErrNoSingleRoot = errors.New("no single root element")

// Patch normalizes the project file at path and writes it back in place.
//
// Files that are not SDK-style projects with a PropertyGroup are reported
// through the returned Result and are not modified. A non-nil error means
// the file could not be read, parsed or written; the Result is then
// meaningless.
func Patch(ctx context.Context, path string) (Result, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return Success, fmt.Errorf("%s: %w", path, err)
	}
	if !singleRoot(doc) {
		return Success, fmt.Errorf("%s: %w", path, ErrNoSingleRoot)
	}

	res := Normalize(ctx, doc)
	if res != Success {
		logger.Debug(ctx, "skipping project file", slog.String("path", path), slog.String("reason", res.String()))
		return res, nil
	}

	if err := save(doc, path); err != nil {
		return Success, err
	}
	return Success, nil
}

// Normalize validates doc and sets the managed fields of its first
// PropertyGroup. The document is only modified when it returns Success.
func Normalize(ctx context.Context, doc *etree.Document) Result {
	root := doc.Root()
	if root == nil || root.Tag != "Project" {
		return MissingProjectRoot
	}
	if attr(root, "Sdk") == nil {
		return MissingSdkAttribute
	}
	pg := firstDescendant(root, "PropertyGroup")
	if pg == nil {
		return MissingPropertyGroup
	}

	if tf := child(pg, "TargetFramework"); tf == nil {
		add(ctx, pg, "TargetFramework", TargetFramework)
	} else if old := innerText(tf); strings.Contains(strings.ToLower(old), "net4") {
		set(ctx, tf, TargetFramework)
	}

	if dt := child(pg, "DebugType"); dt == nil {
		add(ctx, pg, "DebugType", DebugType)
	} else {
		set(ctx, dt, DebugType)
	}

	if lv := child(pg, "LangVersion"); lv == nil {
		add(ctx, pg, "LangVersion", LangVersion)
	} else {
		set(ctx, lv, LangVersion)
	}

	return Success
}

// singleRoot reports whether doc has exactly one top-level element and no
// text outside it.
func singleRoot(doc *etree.Document) bool {
	var elems int
	for _, t := range doc.Child {
		switch t := t.(type) {
		case *etree.Element:
			elems++
		case *etree.CharData:
			if strings.TrimSpace(t.Data) != "" {
				return false
			}
		}
	}
	return elems == 1
}

func save(doc *etree.Document, path string) (err error) {
	for _, pi := range declarations(doc) {
		doc.RemoveChild(pi)
	}
	doc.WriteSettings.CanonicalText = true
	doc.WriteSettings.CanonicalAttrVal = true
	doc.Indent(2)

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if _, err := doc.WriteTo(f); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// declarations returns the <?xml ...?> processing instructions at the top
// level of doc.
func declarations(doc *etree.Document) []etree.Token {
	var pis []etree.Token
	for _, t := range doc.Child {
		if pi, ok := t.(*etree.ProcInst); ok && pi.Target == "xml" {
			pis = append(pis, pi)
		}
	}
	return pis
}

// attr returns the unprefixed attribute key of e, or nil.
func attr(e *etree.Element, key string) *etree.Attr {
	for i := range e.Attr {
		if a := &e.Attr[i]; a.Space == "" && a.Key == key {
			return a
		}
	}
	return nil
}

// child returns the first unprefixed child element of e named tag, or nil.
func child(e *etree.Element, tag string) *etree.Element {
	for _, c := range e.ChildElements() {
		if c.Space == "" && c.Tag == tag {
			return c
		}
	}
	return nil
}

// firstDescendant returns the first element below e named tag in document
// order, or nil.
func firstDescendant(e *etree.Element, tag string) *etree.Element {
	stack := e.ChildElements()
	slices.Reverse(stack)
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if cur.Space == "" && cur.Tag == tag {
			return cur
		}
		children := cur.ChildElements()
		slices.Reverse(children)
		stack = append(stack, children...)
	}
	return nil
}

// innerText returns the concatenated character data inside e.
func innerText(e *etree.Element) string {
	var sb strings.Builder
	for _, t := range e.Child {
		switch t := t.(type) {
		case *etree.CharData:
			sb.WriteString(t.Data)
		case *etree.Element:
			sb.WriteString(innerText(t))
		}
	}
	return sb.String()
}

func add(ctx context.Context, pg *etree.Element, tag, value string) {
	pg.CreateElement(tag).SetText(value)
	logger.Debug(ctx, "added field", slog.String("field", tag), slog.String("value", value))
}

// set replaces the whole content of e with value.
func set(ctx context.Context, e *etree.Element, value string) {
	old := innerText(e)
	for len(e.Child) > 0 {
		e.RemoveChildAt(0)
	}
	e.SetText(value)
	logger.Debug(ctx, "set field", slog.String("field", e.Tag), slog.String("old", old), slog.String("value", value))
}
