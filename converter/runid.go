// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package converter

import (
	"context"
	"crypto/rand"

	"github.com/go-logr/logr"
	"github.com/oklog/ulid/v2"
)

type ctxRunID struct{}

// WithRunID returns a context whose runs use runID.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, ctxRunID{}, runID)
}

// RunID returns the run id of ctx, or "" if it has none.
func RunID(ctx context.Context) string {
	s, _ := ctx.Value(ctxRunID{}).(string)
	return s
}

// startRun returns ctx with a run id (a fresh ULID if ctx has none)
// and a logger carrying it, as returned by loggerFrom.
func startRun(ctx context.Context) (context.Context, logr.Logger) {
	runID := RunID(ctx)
	if runID == "" {
		runID = NewULID().String()
		ctx = WithRunID(ctx, runID)
	}
	lgr := logger.WithValues("run", runID)
	return logr.NewContext(ctx, lgr), lgr
}

// loggerFrom returns the logger of the run in ctx, or the package logger outside of a run.
func loggerFrom(ctx context.Context) logr.Logger {
	if lgr, err := logr.FromContext(ctx); err == nil {
		return lgr
	}
	return logger
}

// NewULID returns a new, time ordered id.
func NewULID() ulid.ULID {
	return ulid.MustNew(ulid.Now(), rand.Reader)
}
