// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package converter

import (
	"io"

	"github.com/VictoriaMetrics/metrics"
)

var (
	metricsSet = metrics.NewSet()

	imagesScanned     = metricsSet.NewCounter("imgpdf_images_scanned_total")
	imagesConverted   = metricsSet.NewCounter("imgpdf_images_converted_total")
	imagesFailed      = metricsSet.NewCounter("imgpdf_images_failed_total")
	pdfsCreated       = metricsSet.NewCounter("imgpdf_pdfs_created_total")
	normalizeDuration = metricsSet.NewHistogram("imgpdf_normalize_duration_seconds")
	assembleDuration  = metricsSet.NewHistogram("imgpdf_assemble_duration_seconds")
)

// WriteMetrics writes the collected metrics in Prometheus text format.
func WriteMetrics(w io.Writer) { metricsSet.WritePrometheus(w) }
