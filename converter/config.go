// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

// Package converter implements converting a directory of images into one PDF.
package converter

import (
	"context"

	"github.com/go-logr/logr"
	config "github.com/stvp/go-toml-config"
)

var logger = logr.Discard()

// SetLogger sets the package-wide logger.
func SetLogger(lgr logr.Logger) { logger = lgr }

var (
	// ConfImages is the directory the images are read from.
	ConfImages = config.String("images", "images")

	// ConfTempDir is the scratch directory for the intermediate JPEGs.
	ConfTempDir = config.String("tempdir", "temp_converted")

	// ConfLogFile specifies the file to log - instead of command line.
	ConfLogFile = config.String("logfile", "")
)

// JPEGQuality is the quality of the intermediate JPEG files.
const JPEGQuality = 95

// LoadConfig loads TOML config file
func LoadConfig(ctx context.Context, fn string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if fn == "" {
		return nil
	}
	if err := config.Parse(fn); err != nil {
		logger.Info("WARN Cannot open config file", "file", fn, "error", err)
		return err
	}
	logger.V(1).Info("config", "images", *ConfImages, "tempdir", *ConfTempDir, "logfile", *ConfLogFile)
	return nil
}
