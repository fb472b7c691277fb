// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package converter

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// Pipeline converts the images of Dir into one PDF in OutDir.
type Pipeline struct {
	// Out receives the progress and summary lines. Defaults to io.Discard.
	Out io.Writer
	// Now returns the date for the output name. Defaults to time.Now.
	Now func() time.Time

	// HEICDecoder decodes the HEIC images in a child process, if set.
	HEICDecoder *ExternalDecoder

	Dir     string
	TempDir string
	OutDir  string
}

// Result summarizes a run.
type Result struct {
	// Output is the created PDF, empty if none has been created.
	Output    string
	Converted []ImageFile
	Failed    []Failure
	Found     int
}

// Run scans Dir, normalizes the images into TempDir, assembles them into the output PDF
// and removes the temporary files.
//
// Finding no images, or none converting successfully, is not an error:
// the returned Result has an empty Output.
// The temporary files are removed in every case.
func (p *Pipeline) Run(ctx context.Context) (Result, error) {
	var res Result
	out := p.Out
	if out == nil {
		out = io.Discard
	}
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	ctx, logger := startRun(ctx)

	outName, err := OutputName(p.Dir, now())
	if err != nil {
		return res, err
	}
	destfn := filepath.Join(p.OutDir, outName)

	files, err := Scan(p.Dir)
	if err != nil {
		return res, err
	}
	res.Found = len(files)
	imagesScanned.Add(len(files))
	if len(files) == 0 {
		fmt.Fprintln(out, "no supported image files found")
		fmt.Fprintf(out, "supported formats: %s\n", strings.Join(SupportedExtensions, ", "))
		return res, nil
	}
	fmt.Fprintf(out, "found %d image files\n", len(files))
	fmt.Fprintf(out, "output file: %s\n", outName)
	logger.Info("start", "dir", p.Dir, "files", len(files), "dest", destfn)

	n := Normalizer{Progress: out, TempDir: p.TempDir, Quality: JPEGQuality, HEICDecoder: p.HEICDecoder}
	names, failures, err := n.NormalizeAll(ctx, files)
	res.Failed = failures
	defer func() {
		fmt.Fprintln(out, "cleaning up temporary files...")
		Cleanup(p.TempDir, names)
	}()
	if err != nil {
		fmt.Fprintf(out, "error during processing: %v\n", err)
		logger.Error(err, "normalize")
		return res, err
	}

	if len(names) == 0 {
		fmt.Fprintln(out, "no images were processed successfully")
		return res, nil
	}

	fmt.Fprintln(out, "creating PDF...")
	if fileExists(destfn) {
		logger.Info("overwrite", "dest", destfn)
	}
	if err = ImagesToPdf(ctx, destfn, names...); err != nil {
		fmt.Fprintf(out, "error during processing: %v\n", err)
		logger.Error(err, "ImagesToPdf", "dest", destfn)
		return res, err
	}
	pdfsCreated.Inc()
	res.Output = destfn
	failed := make(map[string]struct{}, len(failures))
	for _, f := range failures {
		failed[f.File.Path] = struct{}{}
	}
	for _, f := range files {
		if _, ok := failed[f.Path]; !ok {
			res.Converted = append(res.Converted, f)
		}
	}
	fmt.Fprintf(out, "PDF created: %s\n", outName)
	fmt.Fprintf(out, "successfully processed %d image files\n", len(names))
	if pages, err := PdfPageNum(ctx, destfn); err != nil {
		logger.Info("WARN count pages", "dest", destfn, "error", err)
	} else {
		logger.Info("done", "dest", destfn, "pages", pages, "failed", len(failures))
	}
	return res, nil
}
