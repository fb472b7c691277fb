// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package converter

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/gen2brain/heic"
)

// HEICToPNG decodes the HEIC image read from r and writes it to w as PNG.
//
// The decoder uses libheif if it can be loaded, and a WebAssembly build of it otherwise.
// A failing decoder may crash the whole process, so this is meant to run in a child process,
// see ExternalDecoder.
func HEICToPNG(w io.Writer, r io.Reader) error {
	img, err := heic.Decode(bufio.NewReader(r))
	if err != nil {
		return fmt.Errorf("decode heic: %w", err)
	}
	bw := bufio.NewWriter(w)
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err = enc.Encode(bw, img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return bw.Flush()
}

// HEICLibrary reports whether libheif has been loaded, or the error why not.
func HEICLibrary() error { return heic.Dynamic() }

// ExternalDecoder decodes images in a child process: Args is executed with the
// image on its stdin, and it must write the image as PNG to its stdout.
type ExternalDecoder struct {
	Args []string
	// Env is appended to the environment of the child.
	Env []string
}

// Decode runs the child with r as its stdin and decodes its output.
// A crashing child is just an error.
func (d *ExternalDecoder) Decode(ctx context.Context, r io.Reader) (image.Image, error) {
	if d == nil || len(d.Args) == 0 {
		return nil, errors.New("no decoder command")
	}
	cmd := exec.CommandContext(ctx, d.Args[0], d.Args[1:]...)
	if len(d.Env) != 0 {
		cmd.Env = append(os.Environ(), d.Env...)
	}
	cmd.Stdin = r
	var out, errout bytes.Buffer
	cmd.Stdout, cmd.Stderr = &out, &errout
	if err := cmd.Run(); err != nil {
		// the first line of a Go crash is the reason, the rest is the goroutine dump
		msg, _, _ := strings.Cut(strings.TrimSpace(errout.String()), "\n")
		return nil, fmt.Errorf("%q: %s: %w", cmd.Args, msg, err)
	}
	if errout.Len() != 0 {
		loggerFrom(ctx).Info("WARN decoder", "args", d.Args, "error", errout.String())
	}
	return png.Decode(&out)
}

func isHEIC(mimeType string) bool {
	return strings.HasPrefix(mimeType, "image/heic") || strings.HasPrefix(mimeType, "image/heif")
}
