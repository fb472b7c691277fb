// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package converter

import (
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/kylelemons/godebug/diff"
)

func baseNames(files []ImageFile) string {
	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name()
	}
	return strings.Join(names, "\n")
}

func TestScan(t *testing.T) {
	defer setTestLogger(t)()
	for i, tc := range []struct {
		Name  string
		Files []string
		Want  []string
	}{
		{Name: "sorted", Files: []string{"b.png", "a.jpg", "c.heic"}, Want: []string{"a.jpg", "b.png", "c.heic"}},
		{Name: "unsupported", Files: []string{"notes.txt", "x.pdf", "y.webp"}, Want: []string{"y.webp"}},
		{Name: "mixedCase",
			Files: []string{"a.JPG", "b.jpg", "c.Png", "d.TIF", "e.tiff", "f.GIF", "g.BMP"},
			Want:  []string{"a.JPG", "b.jpg", "d.TIF", "e.tiff", "f.GIF", "g.BMP"}},
		{Name: "empty"},
	} {
		dir := mkTestDir(t, "scan-"+tc.Name)
		for _, nm := range tc.Files {
			writeFile(t, dir, nm, "")
		}
		files, err := Scan(dir)
		if err != nil {
			t.Errorf("%d. %s: %+v", i, tc.Name, err)
			continue
		}
		if d := diff.Diff(strings.Join(tc.Want, "\n"), baseNames(files)); d != "" {
			t.Errorf("%d. %s: %s", i, tc.Name, d)
		}
		for _, f := range files {
			if filepath.Dir(f.Path) != dir {
				t.Errorf("%d. %s: %q is not in %q", i, tc.Name, f.Path, dir)
			}
		}
	}
}

func TestScanMissingDir(t *testing.T) {
	files, err := Scan(filepath.Join(testDir, "does-not-exist"))
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 0 {
		t.Errorf("got %v, wanted nothing", files)
	}
}

func TestScanIdempotent(t *testing.T) {
	dir := mkTestDir(t, "scan-idem")
	for _, nm := range []string{"z.gif", "10.png", "2.png", "A.JPEG", "a.jpeg"} {
		writeFile(t, dir, nm, "")
	}
	first, err := Scan(dir)
	if err != nil {
		t.Fatal(err)
	}
	second, err := Scan(dir)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("got %v, then %v", first, second)
	}
	const want = "10.png\n2.png\nA.JPEG\na.jpeg\nz.gif"
	if d := diff.Diff(want, baseNames(first)); d != "" {
		t.Error(d)
	}
}

func TestFormatOf(t *testing.T) {
	for fn, want := range map[string]string{
		"a.jpg":   "jpeg",
		"a.JPEG":  "jpeg",
		"b.TIF":   "tiff",
		"b.tiff":  "tiff",
		"c.heic":  "heic",
		"d.WebP":  "webp",
		"e/f.png": "png",
		"noext":   "",
	} {
		if got := FormatOf(fn); got != want {
			t.Errorf("%q: got %q, want %q.", fn, got, want)
		}
	}
}
