// util/backoff.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"context"
	"time"
)

type Status int

const (
	StatusSuccess Status = iota
	StatusTransientFailure
	StatusPermanentFailure
)

// DoWithBackoff calls f up to attempts times, waiting delay between
// successive attempts, until it reports success or a permanent failure.
// The wait is constant, not exponential. It returns true if f eventually
// succeeded; a cancelled context ends the retries early.
func DoWithBackoff(ctx context.Context, attempts int, delay time.Duration, f func(attempt int) Status) bool {
	for i := range max(attempts, 1) {
		if i > 0 && delay > 0 {
			t := time.NewTimer(delay)
			select {
			case <-ctx.Done():
				t.Stop()
				return false
			case <-t.C:
			}
		}
		if ctx.Err() != nil {
			return false
		}

		switch f(i) {
		case StatusSuccess:
			return true

		case StatusPermanentFailure:
			return false
		}
	}
	return false // unsuccessful after multiple retries
}
