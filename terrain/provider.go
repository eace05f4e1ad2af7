// terrain/provider.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package terrain provides terrain elevations, in feet above mean sea
// level, for lat-long points.
package terrain

import (
	"context"
	"errors"

	"github.com/mmp/ifpd/math"
)

// Provider returns terrain elevations for the given points. The result
// always has one value per point, in the same order. Providers do not
// fail: if the real elevation data can't be obtained, approximate values
// are returned and estimated is true.
type Provider interface {
	Elevations(ctx context.Context, pts []math.Point2LL) (elev []float64, estimated bool)
}

var (
	ErrCorruptCache      = errors.New("Corrupt elevation cache")
	ErrMalformedResponse = errors.New("Malformed elevation response")
	ErrHTTPStatus        = errors.New("Unexpected HTTP status")
)
