// analysis/segment.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package analysis

import (
	"context"
	"fmt"

	"github.com/mmp/ifpd/math"
	"github.com/mmp/ifpd/procedure"
	"github.com/mmp/ifpd/terrain"
	"github.com/mmp/ifpd/util"
)

type SegmentProfile struct {
	Distances  []float64 `json:"distances"`
	Elevations []float64 `json:"elevations"`
}

// SegmentReport describes the terrain along the straight leg between two
// waypoints.
type SegmentReport struct {
	Start               procedure.Waypoint `json:"start"`
	End                 procedure.Waypoint `json:"end"`
	Distance            float64            `json:"distance"` // nm
	Bearing             float64            `json:"bearing"`  // initial, degrees true
	Profile             SegmentProfile     `json:"terrain_profile"`
	MinimumSafeAltitude float64            `json:"minimum_safe_altitude"`
	Violations          []ClearanceFinding `json:"violations"`
	Estimated           bool               `json:"estimated"`
}

// AnalyzeSegment samples the leg from wp1 to wp2 at samples+1 evenly
// spaced points, endpoints included, and reports the terrain along it
// using the default segment clearance.
func AnalyzeSegment(ctx context.Context, provider terrain.Provider, wp1, wp2 procedure.Waypoint,
	samples int) (SegmentReport, error) {
	return analyzeSegment(ctx, provider, procedure.DefaultLimits.Clearance.SegmentMOC, wp1, wp2, samples)
}

func checkWaypoints(wps ...procedure.Waypoint) error {
	var e util.ErrorLogger
	for _, wp := range wps {
		e.Push("Waypoint " + wp.Name)
		wp.Check(&e)
		e.Pop()
	}
	return e.Err(procedure.ErrInvalidProcedure)
}

func analyzeSegment(ctx context.Context, provider terrain.Provider, margin float64, wp1, wp2 procedure.Waypoint,
	samples int) (SegmentReport, error) {
	if err := checkWaypoints(wp1, wp2); err != nil {
		return SegmentReport{}, err
	}

	p0, p1 := wp1.Location(), wp2.Location()
	d := math.NMDistance(p0, p1)
	if d == 0 {
		return SegmentReport{}, fmt.Errorf("%s, %s: %w", wp1.Name, wp2.Name, procedure.ErrCoincidentWaypoints)
	}

	samples = max(samples, 1)
	pts := make([]math.Point2LL, samples+1)
	dist := make([]float64, samples+1)
	for i := range pts {
		f := float64(i) / float64(samples)
		pts[i] = math.Lerp2LL(f, p0, p1)
		dist[i] = d * f
	}

	elev, estimated := provider.Elevations(ctx, pts)
	if len(elev) != len(pts) {
		return SegmentReport{}, fmt.Errorf("%d points, %d elevations: %w", len(pts), len(elev), ErrElevationCount)
	}

	highest, _ := util.SliceMax(elev)
	r := SegmentReport{
		Start:               wp1,
		End:                 wp2,
		Distance:            d,
		Bearing:             math.InitialBearing(p0, p1),
		Profile:             SegmentProfile{Distances: dist, Elevations: elev},
		MinimumSafeAltitude: highest + margin,
		Violations:          []ClearanceFinding{},
		Estimated:           estimated,
	}

	for _, end := range []struct {
		wp  procedure.Waypoint
		idx int
	}{{wp1, 0}, {wp2, samples}} {
		if !end.wp.HasAltitude() {
			continue
		}
		required := elev[end.idx] + margin
		if alt := *end.wp.AltitudeConstraint; alt < required {
			r.Violations = append(r.Violations, ClearanceFinding{
				Kind: "clearance",
				Location: FindingLocation{
					Latitude:  end.wp.Latitude,
					Longitude: end.wp.Longitude,
					Distance:  dist[end.idx],
				},
				WaypointName:     end.wp.Name,
				TerrainElevation: elev[end.idx],
				RequiredAltitude: required,
				Altitude:         alt,
			})
		}
	}

	return r, nil
}

func (r SegmentReport) String() string {
	return fmt.Sprintf("%s-%s %.1f NM %s (%03.0f°), MSA %.0f ft", r.Start.Name, r.End.Name, r.Distance,
		math.ShortCompass(r.Bearing), r.Bearing, r.MinimumSafeAltitude)
}
