// Copyright 2026 Tamás Gulácsi. All rights reserved.
//
// SPDX-License-Identifier: Apache-2.0

package converter

import (
	"context"
	"testing"

	"github.com/oklog/ulid/v2"
)

func TestStartRun(t *testing.T) {
	if got := RunID(context.Background()); got != "" {
		t.Errorf("got %q from an empty context", got)
	}

	ctx, _ := startRun(context.Background())
	runID := RunID(ctx)
	if _, err := ulid.ParseStrict(runID); err != nil {
		t.Errorf("%q: %v", runID, err)
	}
	if again, _ := startRun(ctx); RunID(again) != runID {
		t.Errorf("got %q, wanted the outer %q", RunID(again), runID)
	}

	ctx, _ = startRun(WithRunID(context.Background(), "given"))
	if got := RunID(ctx); got != "given" {
		t.Errorf("got %q, wanted given", got)
	}
}
