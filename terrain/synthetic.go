// terrain/synthetic.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package terrain

import (
	"context"
	gomath "math"

	"github.com/mmp/ifpd/math"
)

// Synthetic is a deterministic stand-in for real terrain data, used when
// the elevation service is unavailable. It roughly models higher terrain
// at mid-latitudes.
type Synthetic struct{}

func (Synthetic) Elevations(ctx context.Context, pts []math.Point2LL) ([]float64, bool) {
	elev := make([]float64, len(pts))
	for i, p := range pts {
		elev[i] = SyntheticElevation(p)
	}
	return elev, true
}

// SyntheticElevation returns the modeled elevation in feet at p; it is
// never negative.
func SyntheticElevation(p math.Point2LL) float64 {
	lat := math.Abs(p.Latitude())

	var base float64
	switch {
	case lat < 30:
		base = lat * 33.33
	case lat <= 50:
		base = 1000 + (lat-30)*200
	default:
		base = 1000 - (lat-50)*10
	}

	// Note: the longitude in degrees is used directly as the argument.
	variation := gomath.Sin(p.Longitude()/10) * 500

	return max(0, base+variation)
}
