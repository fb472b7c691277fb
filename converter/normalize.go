// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package converter

import (
	"bufio"
	"context"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"time"

	_ "image/gif" // to be able to open GIF files
	_ "image/png" // to be able to open PNG files

	_ "golang.org/x/image/bmp"  // to be able to open BMP files
	_ "golang.org/x/image/tiff" // to be able to open TIFF files
	_ "golang.org/x/image/webp" // to be able to open WebP files

	"github.com/pkg/errors"
	"golang.org/x/image/draw"
)

// ColorMode is the coarse colour model of a decoded image.
type ColorMode uint8

const (
	// ModeRGB needs no conversion.
	ModeRGB = ColorMode(iota)
	// ModeAlpha carries an alpha channel.
	ModeAlpha
	// ModePalette is paletted; the palette entries may be transparent.
	ModePalette
	// ModeOther is any other model (gray, CMYK...), converted directly to RGB.
	ModeOther
)

func (m ColorMode) String() string {
	switch m {
	case ModeRGB:
		return "RGB"
	case ModeAlpha:
		return "alpha"
	case ModePalette:
		return "palette"
	default:
		return "other"
	}
}

// ColorModeOf classifies img.
func ColorModeOf(img image.Image) ColorMode {
	switch x := img.(type) {
	case *image.YCbCr:
		return ModeRGB
	case *image.RGBA:
		if x.Opaque() {
			return ModeRGB
		}
		return ModeAlpha
	case *image.Paletted:
		return ModePalette
	case *image.NRGBA, *image.RGBA64, *image.NRGBA64,
		*image.Alpha, *image.Alpha16, *image.NYCbCrA:
		return ModeAlpha
	}
	return ModeOther
}

// Flatten returns an RGB rendition of img.
// Transparent and paletted images are composited over a white background of the same size,
// other non-RGB images are converted as is.
func Flatten(img image.Image) image.Image {
	mode := ColorModeOf(img)
	if mode == ModeRGB {
		return img
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	if mode == ModeOther {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
		return dst
	}
	draw.Draw(dst, dst.Bounds(), image.White, image.Point{}, draw.Src)
	draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Over)
	return dst
}

// Failure is a file that could not be normalized.
type Failure struct {
	File ImageFile
	Err  error
}

func (f Failure) Error() string { return f.File.Name() + ": " + f.Err.Error() }
func (f Failure) Unwrap() error { return f.Err }

// Normalizer converts images to RGB JPEGs in TempDir.
type Normalizer struct {
	// Progress receives one line per processed file, if not nil.
	Progress io.Writer
	TempDir  string
	Quality  int
	// HEICDecoder decodes HEIC images out of process, if set.
	// Otherwise they are decoded in process.
	HEICDecoder *ExternalDecoder
}

// TempName returns the name of the i-th intermediate JPEG.
func (n *Normalizer) TempName(i int) string {
	return filepath.Join(n.TempDir, fmt.Sprintf("temp_%04d.jpg", i))
}

func (n *Normalizer) quality() int {
	if n.Quality <= 0 || n.Quality > 100 {
		return JPEGQuality
	}
	return n.Quality
}

// NormalizeFile decodes f and writes it as the i-th intermediate JPEG,
// returning the JPEG's name.
func (n *Normalizer) NormalizeFile(ctx context.Context, i int, f ImageFile) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	start := time.Now()
	typ, err := DetectImageType(f.Path)
	if err != nil {
		return "", err
	}
	fh, err := os.Open(f.Path)
	if err != nil {
		return "", errors.Wrapf(err, "open %s", f.Path)
	}
	var img image.Image
	var format string
	if n.HEICDecoder != nil && isHEIC(typ) {
		format = "heic"
		img, err = n.HEICDecoder.Decode(ctx, fh)
	} else {
		img, format, err = image.Decode(bufio.NewReader(fh))
	}
	_ = fh.Close()
	if err != nil {
		return "", errors.Wrapf(err, "decode %s as %s", f.Name(), typ)
	}
	mode := ColorModeOf(img)
	loggerFrom(ctx).V(1).Info("decoded", "file", f.Path, "format", format, "mime", typ,
		"mode", mode, "size", img.Bounds().Size())

	dst := n.TempName(i)
	ofh, err := os.Create(dst)
	if err != nil {
		return "", errors.Wrapf(err, "create %s", dst)
	}
	if err = jpeg.Encode(ofh, Flatten(img), &jpeg.Options{Quality: n.quality()}); err != nil {
		_ = ofh.Close()
		_ = os.Remove(dst)
		return "", errors.Wrapf(err, "encode %s", dst)
	}
	if err = ofh.Close(); err != nil {
		_ = os.Remove(dst)
		return "", errors.Wrapf(err, "write %s", dst)
	}
	normalizeDuration.UpdateDuration(start)
	return dst, nil
}

// NormalizeAll normalizes the files in order, skipping the ones that fail.
//
// The returned names are in the order of files. A non-nil error is returned
// only when ctx is done; the names created so far are returned with it.
func (n *Normalizer) NormalizeAll(ctx context.Context, files []ImageFile) ([]string, []Failure, error) {
	if err := os.MkdirAll(n.TempDir, 0750); err != nil {
		return nil, nil, errors.Wrapf(err, "create temp dir %s", n.TempDir)
	}
	logger := loggerFrom(ctx)
	names := make([]string, 0, len(files))
	var failures []Failure
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			return names, failures, err
		}
		if n.Progress != nil {
			fmt.Fprintf(n.Progress, "processing: %s (%d/%d)\n", f.Name(), i+1, len(files))
		}
		fn, err := n.NormalizeFile(ctx, i, f)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return names, failures, ctxErr
			}
			logger.Error(err, "normalize", "file", f.Path)
			if n.Progress != nil {
				fmt.Fprintf(n.Progress, "error processing %s: %v\n", f.Name(), err)
			}
			failures = append(failures, Failure{File: f, Err: err})
			imagesFailed.Inc()
			continue
		}
		names = append(names, fn)
		imagesConverted.Inc()
	}
	return names, failures, nil
}
