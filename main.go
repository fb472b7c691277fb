// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/go-logr/zerologr"
	"github.com/google/renameio/v2"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/rs/zerolog"

	"github.com/tgulacsi/go/globalctx"
	"github.com/tgulacsi/imgpdf/converter"
)

var zl = zerolog.New(os.Stderr).With().Timestamp().Logger().Level(zerolog.InfoLevel)
var logger = zerologr.New(&zl)

func main() {
	if err := Main(); err != nil {
		logger.Error(err, "Main")
		os.Exit(1)
	}
}

func Main() error {
	var (
		configFile, logFile, metricsFile string
		verbose                          bool
	)

	fs := flag.NewFlagSet("imgpdf", flag.ContinueOnError)
	fs.StringVar(&configFile, "config", "", "config file (TOML)")
	fs.StringVar(&logFile, "logfile", "", "logfile")
	fs.StringVar(&metricsFile, "metrics", "", "write metrics in Prometheus text format to this file (- for stderr)")
	fs.BoolVar(&verbose, "v", false, "verbose logging")
	heicCmd := &ffcli.Command{
		Name:       "heic2png",
		ShortUsage: "imgpdf heic2png < in.heic > out.png",
		ShortHelp:  "converts the HEIC image read from stdin to PNG on stdout",
		Exec: func(ctx context.Context, args []string) error {
			if err := converter.HEICLibrary(); err != nil {
				logger.V(1).Info("libheif is not available, using the WebAssembly decoder", "error", err)
			}
			return converter.HEICToPNG(os.Stdout, os.Stdin)
		},
	}
	appCmd := &ffcli.Command{
		Name:       "imgpdf",
		ShortUsage: "imgpdf [flags]",
		ShortHelp:  "imgpdf converts the images of the images directory into one PDF",
		LongHelp: `imgpdf reads the images (jpg, jpeg, png, bmp, tiff, tif, heic, webp, gif) in the "images" directory,
and writes them, sorted by name, as one PDF named images_YYYYMMDD.pdf into the current directory.`,
		FlagSet:     fs,
		Subcommands: []*ffcli.Command{heicCmd},
		Exec: func(ctx context.Context, args []string) error {
			if len(args) != 0 {
				return fmt.Errorf("unexpected arguments %q", args)
			}
			p := converter.Pipeline{
				Out:     os.Stdout,
				Dir:     *converter.ConfImages,
				TempDir: *converter.ConfTempDir,
				OutDir:  ".",
			}
			if exe, err := os.Executable(); err != nil {
				logger.Info("WARN HEIC images are decoded in process", "error", err)
			} else {
				p.HEICDecoder = &converter.ExternalDecoder{Args: []string{exe, "heic2png"}}
			}
			res, err := p.Run(ctx)
			if err != nil {
				// already reported, not a reason for a failure exit code
				logger.Error(err, "run", "dir", p.Dir)
			}
			logger.V(1).Info("result", "found", res.Found, "converted", len(res.Converted),
				"failed", len(res.Failed), "output", res.Output)
			if metricsFile != "" {
				if err := writeMetrics(metricsFile); err != nil {
					logger.Error(err, "write metrics", "file", metricsFile)
				}
			}
			return nil
		},
	}

	if err := appCmd.Parse(os.Args[1:]); err != nil {
		return err
	}
	if verbose {
		zl = zl.Level(zerolog.DebugLevel)
	}
	closeLogfile, err := logToFile(logFile)
	if err != nil {
		return err
	}
	converter.SetLogger(logger.WithName("converter"))
	api.DisableConfigDir()

	ctx, cancel := globalctx.Wrap(context.Background())
	defer cancel()
	logger.V(1).Info("Loading config", "file", configFile)
	if err = converter.LoadConfig(ctx, configFile); err != nil {
		return err
	}
	if closeLogfile == nil {
		if closeLogfile, err = logToFile(*converter.ConfLogFile); err != nil {
			logger.Error(err, "logToFile")
		}
	}
	if closeLogfile != nil {
		defer func() {
			logger.V(1).Info("close log file", "error", closeLogfile())
		}()
	}

	return appCmd.Run(ctx)
}

func logToFile(fn string) (func() error, error) {
	if fn == "" {
		return nil, nil
	}
	fh, err := os.OpenFile(fn, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0640)
	if err != nil {
		logger.Error(err, "open log file", "file", fn)
		return nil, fmt.Errorf("%s: %w", fn, err)
	}
	level := zl.GetLevel()
	zl = zerolog.New(zerolog.MultiLevelWriter(os.Stderr, fh)).With().Timestamp().Logger().Level(level)
	logger.Info("Logging to", "file", fh.Name())
	return fh.Close, nil
}

func writeMetrics(fn string) error {
	if fn == "-" {
		converter.WriteMetrics(os.Stderr)
		return nil
	}
	var buf bytes.Buffer
	converter.WriteMetrics(&buf)
	return renameio.WriteFile(fn, buf.Bytes(), 0644)
}
