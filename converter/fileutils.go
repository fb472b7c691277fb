// Copyright 2013, 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package converter

import (
	"os"
)

func fileExists(fn string) bool {
	if _, err := os.Stat(fn); err == nil {
		return true
	}
	return false
}

func unlink(fn, mark string) error {
	err := os.Remove(fn)
	if err != nil {
		logger.V(1).Info("unlink", "file", fn, "mark", mark, "error", err)
	}
	return err
}

// Cleanup removes the given files, then the (then hopefully empty) directory.
// Errors are ignored; a directory that is not empty is left in place.
func Cleanup(dir string, filenames []string) {
	for _, fn := range filenames {
		_ = unlink(fn, "cleanup")
	}
	if dir == "" {
		return
	}
	_ = unlink(dir, "cleanup")
}
