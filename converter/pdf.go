// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package converter

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"
	"github.com/pdfcpu/pdfcpu/pkg/api"
)

// OutputName returns the name of the PDF made of the images in dir at t:
// the base name of the absolute directory, an underscore and the date as YYYYMMDD.
func OutputName(dir string, t time.Time) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	return filepath.Base(abs) + "_" + t.Format("20060102") + ".pdf", nil
}

// ImagesToPdf writes the images as the pages of one PDF into destfn, in the given order.
// Each page has the size of its image.
//
// destfn is replaced atomically, so a failed call leaves no partial PDF behind.
func ImagesToPdf(ctx context.Context, destfn string, filenames ...string) error {
	if len(filenames) == 0 {
		return errors.New("filenames required")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	start := time.Now()
	rs := make([]io.Reader, 0, len(filenames))
	defer func() {
		for _, r := range rs {
			_ = r.(io.Closer).Close()
		}
	}()
	for _, fn := range filenames {
		fh, err := os.Open(fn)
		if err != nil {
			return err
		}
		rs = append(rs, fh)
	}

	dir := filepath.Dir(destfn)
	fh, err := renameio.NewPendingFile(destfn, renameio.WithTempDir(dir), renameio.WithPermissions(0644))
	if err != nil {
		return err
	}
	defer fh.Cleanup()
	if err = api.ImportImages(nil, fh, rs, nil, nil); err != nil {
		return fmt.Errorf("import %d images: %w", len(rs), err)
	}
	if err = fh.CloseAtomicallyReplace(); err != nil {
		return err
	}
	assembleDuration.UpdateDuration(start)
	loggerFrom(ctx).V(1).Info("ImagesToPdf", "dest", destfn, "images", len(filenames), "dur", time.Since(start).String())
	return nil
}

// PdfPageNum returns the number of pages
func PdfPageNum(ctx context.Context, srcfn string) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	return api.PageCountFile(srcfn)
}
