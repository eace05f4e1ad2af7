// analysis/clearance.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package analysis

import (
	"errors"
	"fmt"

	"github.com/mmp/ifpd/procedure"
)

var (
	ErrElevationCount  = errors.New("Number of elevations doesn't match number of points")
	ErrWaypointIndex   = errors.New("Analysis point refers to a nonexistent waypoint")
	ErrNoAnalysisPoint = errors.New("No analysis points")
)

type FindingLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Distance  float64 `json:"distance"` // nm along the route
}

// ClearanceFinding describes a point where the altitude flown is below
// the minimum required above terrain.
type ClearanceFinding struct {
	Kind             string          `json:"type"`
	Location         FindingLocation `json:"location"`
	WaypointName     string          `json:"waypoint,omitempty"`
	TerrainElevation float64         `json:"terrain_elevation"`
	RequiredAltitude float64         `json:"required_altitude"`
	Altitude         float64         `json:"altitude"`
	Interpolated     bool            `json:"interpolated"`
}

func (f ClearanceFinding) String() string {
	where := f.WaypointName
	if where == "" {
		where = fmt.Sprintf("%.1f NM", f.Location.Distance)
	}
	return fmt.Sprintf("%s: altitude %.0f ft below required %.0f ft (terrain %.0f ft)", where, f.Altitude,
		f.RequiredAltitude, f.TerrainElevation)
}

// Profile has per-analysis-point values along the route.
type Profile struct {
	Distances        []float64 `json:"distances"`
	Elevations       []float64 `json:"elevations"`
	MinimumAltitudes []float64 `json:"minimum_altitudes"`
	Altitudes        []float64 `json:"altitudes"`
}

type ClearanceReport struct {
	Profile    Profile            `json:"terrain_profile"`
	Violations []ClearanceFinding `json:"violations"`
	Warnings   []ClearanceFinding `json:"warnings"`
	Estimated  bool               `json:"estimated"`
	Margin     float64            `json:"margin"`
}

func (r ClearanceReport) Passed() bool {
	return len(r.Violations) == 0
}

// EvaluateClearance compares the altitudes flown along the procedure with
// the terrain elevation plus the procedure's required clearance. An
// explicit waypoint altitude constraint below the minimum is a violation;
// an interpolated altitude below the minimum is only a warning.
func EvaluateClearance(pt procedure.ProcedureType, nt procedure.NavigationType, points []AnalysisPoint,
	elevations []float64, wps []procedure.Waypoint) (ClearanceReport, error) {
	return evaluateClearance(procedure.DefaultLimits.Clearance.Margin(pt, nt), points, elevations, wps)
}

func evaluateClearance(margin float64, points []AnalysisPoint, elevations []float64,
	wps []procedure.Waypoint) (ClearanceReport, error) {
	if len(points) == 0 {
		return ClearanceReport{}, ErrNoAnalysisPoint
	}
	if len(points) != len(elevations) {
		return ClearanceReport{}, fmt.Errorf("%d points, %d elevations: %w", len(points), len(elevations),
			ErrElevationCount)
	}
	for _, p := range points {
		if (p.IsWaypoint && (p.Waypoint < 0 || p.Waypoint >= len(wps))) ||
			(!p.IsWaypoint && (p.Segment < 0 || p.Segment+1 >= len(wps))) {
			return ClearanceReport{}, fmt.Errorf("%d waypoints: %w", len(wps), ErrWaypointIndex)
		}
	}

	alts := PointAltitudes(points, waypointAltitudes(wps))

	r := ClearanceReport{
		Profile: Profile{
			Distances:        make([]float64, len(points)),
			Elevations:       elevations,
			MinimumAltitudes: make([]float64, len(points)),
			Altitudes:        alts,
		},
		Violations: []ClearanceFinding{},
		Warnings:   []ClearanceFinding{},
		Margin:     margin,
	}

	for i, p := range points {
		required := elevations[i] + margin
		r.Profile.Distances[i] = p.Distance
		r.Profile.MinimumAltitudes[i] = required

		f := ClearanceFinding{
			Kind: "clearance",
			Location: FindingLocation{
				Latitude:  p.Location.Latitude(),
				Longitude: p.Location.Longitude(),
				Distance:  p.Distance,
			},
			TerrainElevation: elevations[i],
			RequiredAltitude: required,
		}

		if p.IsWaypoint {
			wp := wps[p.Waypoint]
			f.WaypointName = wp.Name
			if wp.HasAltitude() {
				if *wp.AltitudeConstraint < required {
					f.Altitude = *wp.AltitudeConstraint
					r.Violations = append(r.Violations, f)
				}
				continue
			}
		}

		if alts[i] < required {
			f.Altitude = alts[i]
			f.Interpolated = true
			r.Warnings = append(r.Warnings, f)
		}
	}

	return r, nil
}

// lowestClearance returns the smallest difference between the altitude
// flown and the terrain along the profile.
func (p Profile) lowestClearance() (float64, int) {
	lowest, idx := 0., -1
	for i := range p.Altitudes {
		if c := p.Altitudes[i] - p.Elevations[i]; idx == -1 || c < lowest {
			lowest, idx = c, i
		}
	}
	return lowest, idx
}

func (r ClearanceReport) Summary() string {
	c, idx := r.Profile.lowestClearance()
	s := fmt.Sprintf("%d violations, %d warnings, margin %.0f ft", len(r.Violations), len(r.Warnings), r.Margin)
	if idx != -1 {
		s += fmt.Sprintf(", lowest clearance %.0f ft at %.1f NM", c, r.Profile.Distances[idx])
	}
	if r.Estimated {
		s += " (estimated terrain)"
	}
	return s
}
