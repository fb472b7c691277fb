// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package converter

import (
	"context"
	"fmt"
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/testr"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
)

func setTestLogger(t *testing.T) func() {
	SetLogger(testr.New(t))
	return func() { SetLogger(logr.Discard()) }
}

var testDir string

// heicChildEnv makes the test binary act as the HEIC decoder child.
const heicChildEnv = "IMGPDF_TEST_HEIC2PNG"

// testHEICDecoder decodes HEIC in a child process: the test binary itself.
var testHEICDecoder = &ExternalDecoder{Args: []string{os.Args[0]}, Env: []string{heicChildEnv + "=decode"}}

func TestMain(m *testing.M) {
	switch os.Getenv(heicChildEnv) {
	case "":
	case "decode":
		if err := HEICToPNG(os.Stdout, os.Stdin); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
		os.Exit(0)
	default:
		// what a Go runtime crash looks like from the outside
		fmt.Fprintln(os.Stderr, "fatal error: unexpected signal during runtime execution")
		fmt.Fprintln(os.Stderr, "[signal SIGSEGV: segmentation violation]")
		os.Exit(2)
	}

	var err error
	testDir, err = os.MkdirTemp("", "imgpdf-test-")
	if err != nil {
		fmt.Println(err)
		os.Exit(13)
	}
	api.DisableConfigDir()
	_ = LoadConfig(context.Background(), "")
	code := m.Run()
	_ = os.RemoveAll(testDir)
	os.Exit(code)
}

func mkTestDir(t *testing.T, prefix string) string {
	t.Helper()
	dn, err := os.MkdirTemp(testDir, prefix+"-*")
	if err != nil {
		t.Fatal(err)
	}
	return dn
}

// solid returns a w x h image filled with c.
func solid(w, h int, c color.Color) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// writeImage encodes img into fn, in the format implied by its extension.
func writeImage(t *testing.T, fn string, img image.Image) {
	t.Helper()
	fh, err := os.Create(fn)
	if err != nil {
		t.Fatal(err)
	}
	switch FormatOf(fn) {
	case "png":
		err = png.Encode(fh, img)
	case "jpeg":
		err = jpeg.Encode(fh, img, nil)
	case "gif":
		err = gif.Encode(fh, img, nil)
	case "bmp":
		err = bmp.Encode(fh, img)
	case "tiff":
		err = tiff.Encode(fh, img, nil)
	default:
		err = fmt.Errorf("cannot encode %s", fn)
	}
	if closeErr := fh.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
}

// copyTestdata copies testdata/src into dir/name.
func copyTestdata(t *testing.T, dir, name, src string) string {
	t.Helper()
	b, err := os.ReadFile(filepath.Join("testdata", src))
	if err != nil {
		t.Fatal(err)
	}
	return writeFile(t, dir, name, string(b))
}

// writeFile writes garbage (or empty) content into dir/name.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	fn := filepath.Join(dir, name)
	if err := os.WriteFile(fn, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return fn
}
