// analysis/profile.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package analysis

import (
	"github.com/mmp/ifpd/math"
	"github.com/mmp/ifpd/procedure"
)

// FillAltitudes returns an altitude for each waypoint given their
// (possibly nil) constraints. Constrained waypoints keep their constraint.
// A missing first or last altitude takes the nearest known altitude; if
// nothing is known, all altitudes are 0. Interior gaps are then filled in
// order, each with the mean of the altitude before it (which may itself
// have just been filled) and the next known altitude after it.
func FillAltitudes(alts []*float64) []float64 {
	n := len(alts)
	filled := make([]float64, n)
	known := make([]bool, n)
	first, last := -1, -1
	for i, a := range alts {
		if a != nil {
			filled[i], known[i] = *a, true
			if first == -1 {
				first = i
			}
			last = i
		}
	}
	if first == -1 {
		return filled
	}

	if !known[0] {
		filled[0], known[0] = filled[first], true
	}
	if !known[n-1] {
		filled[n-1], known[n-1] = filled[last], true
	}

	for i := 1; i < n-1; i++ {
		if known[i] {
			continue
		}
		next := i + 1
		for !known[next] {
			next++
		}
		filled[i] = (filled[i-1] + filled[next]) / 2
	}

	return filled
}

func waypointAltitudes(wps []procedure.Waypoint) []float64 {
	alts := make([]*float64, len(wps))
	for i := range wps {
		alts[i] = wps[i].AltitudeConstraint
	}
	return FillAltitudes(alts)
}

// PointAltitudes returns the altitude at each analysis point given the
// filled waypoint altitudes: the waypoint's own altitude at waypoints and
// a linear interpolation along the leg elsewhere.
func PointAltitudes(points []AnalysisPoint, filled []float64) []float64 {
	alts := make([]float64, len(points))
	for i, p := range points {
		if p.IsWaypoint {
			alts[i] = filled[p.Waypoint]
		} else {
			alts[i] = math.Lerp(p.Fraction, filled[p.Segment], filled[p.Segment+1])
		}
	}
	return alts
}
