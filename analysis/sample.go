// analysis/sample.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package analysis evaluates instrument procedures against terrain: it
// samples the route, looks up terrain elevations, builds the altitude
// profile flown, and checks the clearance between the two.
package analysis

import (
	"github.com/mmp/ifpd/math"
	"github.com/mmp/ifpd/procedure"
)

const DefaultSamplesPerSegment = 20

// AnalysisPoint is a position along a procedure's route at which terrain
// clearance is evaluated.
type AnalysisPoint struct {
	Location   math.Point2LL
	Distance   float64 // nm from the first waypoint, along the route
	IsWaypoint bool
	Waypoint   int     // index of the waypoint if IsWaypoint, otherwise -1
	Segment    int     // index of the leg's starting waypoint
	Fraction   float64 // position along the leg, [0,1]
}

// Sample returns points along the route defined by the waypoints:
// each waypoint, plus samplesPerSegment-1 evenly spaced points between
// each pair of consecutive waypoints. Intermediate points are linearly
// interpolated in lat-long. For N>0 waypoints, (N-1)*samplesPerSegment+1
// points are returned.
func Sample(wps []procedure.Waypoint, samplesPerSegment int) []AnalysisPoint {
	if len(wps) == 0 {
		return nil
	}
	k := max(samplesPerSegment, 1)

	points := make([]AnalysisPoint, 0, (len(wps)-1)*k+1)
	var total float64
	for i := range len(wps) - 1 {
		p0, p1 := wps[i].Location(), wps[i+1].Location()
		legLength := math.NMDistance(p0, p1)

		points = append(points, AnalysisPoint{
			Location:   p0,
			Distance:   total,
			IsWaypoint: true,
			Waypoint:   i,
			Segment:    i,
		})
		for j := 1; j < k; j++ {
			f := float64(j) / float64(k)
			points = append(points, AnalysisPoint{
				Location: math.Lerp2LL(f, p0, p1),
				Distance: total + legLength*f,
				Waypoint: -1,
				Segment:  i,
				Fraction: f,
			})
		}
		total += legLength
	}

	last := len(wps) - 1
	points = append(points, AnalysisPoint{
		Location:   wps[last].Location(),
		Distance:   total,
		IsWaypoint: true,
		Waypoint:   last,
		Segment:    max(last-1, 0),
		Fraction:   float64(min(last, 1)),
	})

	return points
}

func locations(points []AnalysisPoint) []math.Point2LL {
	locs := make([]math.Point2LL, len(points))
	for i, p := range points {
		locs[i] = p.Location
	}
	return locs
}
