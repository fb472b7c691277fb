// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package converter

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
)

// SupportedExtensions lists the accepted file extensions, without the dot.
// Both the lowercase and the uppercase variant is matched.
var SupportedExtensions = []string{"jpg", "jpeg", "png", "bmp", "tiff", "tif", "heic", "webp", "gif"}

// ImageFile is an image found in the input directory.
type ImageFile struct {
	Path   string
	Format string // inferred from the extension
}

func (f ImageFile) String() string { return f.Path }

// Name returns the base name of the file.
func (f ImageFile) Name() string { return filepath.Base(f.Path) }

// FormatOf returns the image format name inferred from the file extension.
func FormatOf(fn string) string {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fn), "."))
	switch ext {
	case "jpg":
		return "jpeg"
	case "tif":
		return "tiff"
	}
	return ext
}

// Scan returns the supported images in dir, ordered by path.
//
// Each extension is globbed twice (lower and upper case), and the matches are
// deduplicated by their path string. As the glob matches directory entry names,
// a file is always reported under its on-disk name, so it can appear only once
// even on a case-insensitive filesystem. Mixed case extensions (".Jpg") are not matched.
func Scan(dir string) ([]ImageFile, error) {
	seen := make(map[string]struct{})
	for _, ext := range SupportedExtensions {
		for _, pat := range []string{"*." + ext, "*." + strings.ToUpper(ext)} {
			matches, err := filepath.Glob(filepath.Join(escapeGlob(dir), pat))
			if err != nil {
				return nil, fmt.Errorf("glob %q in %q: %w", pat, dir, err)
			}
			for _, m := range matches {
				seen[m] = struct{}{}
			}
		}
	}
	paths := make([]string, 0, len(seen))
	for p := range seen {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	files := make([]ImageFile, len(paths))
	for i, p := range paths {
		files[i] = ImageFile{Path: p, Format: FormatOf(p)}
	}
	logger.V(1).Info("scanned", "dir", dir, "files", len(files))
	return files, nil
}

var globEscaper = strings.NewReplacer(`*`, `\*`, `?`, `\?`, `[`, `\[`)

// escapeGlob escapes the meta characters of the directory part,
// so only the extension pattern is interpreted.
func escapeGlob(dir string) string {
	if filepath.Separator == '\\' {
		return dir
	}
	return globEscaper.Replace(strings.ReplaceAll(dir, `\`, `\\`))
}
