// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package converter

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

// ErrNotImage is returned for files whose content is not an image.
var ErrNotImage = errors.New("not an image")

// DetectImageType returns the MIME type of the file's content,
// and ErrNotImage if it is not an image.
func DetectImageType(fn string) (string, error) {
	mt, err := mimetype.DetectFile(fn)
	if err != nil {
		return "", err
	}
	typ := mt.String()
	if i := strings.IndexByte(typ, ';'); i >= 0 {
		typ = typ[:i]
	}
	if !strings.HasPrefix(typ, "image/") {
		return typ, fmt.Errorf("%s: %w", typ, ErrNotImage)
	}
	return typ, nil
}
