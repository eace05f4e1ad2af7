// procedure/validate.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package procedure

import (
	"fmt"

	"github.com/mmp/ifpd/math"
)

// Climb/descent gradients are computed with a round 6076 ft per nm, which
// is how the published criteria tables express them.
const gradientFeetPerNM = 6076

// ClearanceMargins gives the minimum obstacle clearance in feet required
// above terrain. Approaches are keyed by navigation type; departures and
// arrivals use a single value regardless of navigation type.
type ClearanceMargins struct {
	ByType     map[ProcedureType]float64
	Approach   map[NavigationType]float64
	Fallback   float64
	SegmentMOC float64 // used for stand-alone segment analysis
}

// Margin returns the required clearance for the given procedure and
// navigation type.
func (c ClearanceMargins) Margin(pt ProcedureType, nt NavigationType) float64 {
	if pt == APPROACH {
		if m, ok := c.Approach[nt]; ok {
			return m
		}
		return c.Fallback
	}
	if m, ok := c.ByType[pt]; ok {
		return m
	}
	return c.Fallback
}

// Limits collects the design criteria that Validate checks against.
type Limits struct {
	MinWaypointSpacing float64                   // nm
	MaxTurnAngle       map[ProcedureType]float64 // degrees
	MaxGradient        map[ProcedureType]float64 // percent
	Clearance          ClearanceMargins
}

var DefaultLimits = Limits{
	MinWaypointSpacing: 2,
	MaxTurnAngle: map[ProcedureType]float64{
		SID:      120,
		STAR:     90,
		APPROACH: 90,
	},
	MaxGradient: map[ProcedureType]float64{
		SID:      8.3,
		STAR:     6.1,
		APPROACH: 5.2,
	},
	Clearance: ClearanceMargins{
		ByType: map[ProcedureType]float64{
			SID:  1000,
			STAR: 1000,
		},
		Approach: map[NavigationType]float64{
			RNAV: 750,
			RNP:  750,
			ILS:  500,
			VOR:  1000,
			NDB:  1000,
		},
		Fallback:   1000,
		SegmentMOC: 500,
	},
}

// ValidationReport holds the findings of Validate. Critical findings mean
// the procedure does not meet the design criteria; warnings are advisory.
type ValidationReport struct {
	Critical []string `json:"critical"`
	Warnings []string `json:"warnings"`
}

func (r ValidationReport) Passed() bool {
	return len(r.Critical) == 0
}

func (r *ValidationReport) critical(f string, args ...any) {
	r.Critical = append(r.Critical, fmt.Sprintf(f, args...))
}

func (r *ValidationReport) warn(f string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(f, args...))
}

// Validate checks the procedure against DefaultLimits.
func Validate(p *Procedure) ValidationReport {
	return DefaultLimits.Validate(p)
}

// Validate checks the procedure's waypoints, in the order given, against
// the design criteria in l. It never fails: problems, including geometry
// that can't be evaluated, are reported as findings. The procedure is not
// modified.
func (l Limits) Validate(p *Procedure) ValidationReport {
	r := ValidationReport{Critical: []string{}, Warnings: []string{}}

	wps := p.Waypoints
	if len(wps) < 2 {
		r.critical("%s", ErrTooFewWaypoints.Error())
		return r
	}

	// Sequencing
	for i := 1; i < len(wps); i++ {
		if wps[i].Sequence <= wps[i-1].Sequence {
			r.critical("Invalid waypoint sequence between %s (%d) and %s (%d)",
				wps[i-1].Name, wps[i-1].Sequence, wps[i].Name, wps[i].Sequence)
		}
	}

	// Spacing
	for i := 1; i < len(wps); i++ {
		if d := math.NMDistance(wps[i-1].Location(), wps[i].Location()); d < l.MinWaypointSpacing {
			r.warn("Waypoints %s and %s are too close (%.1f NM < %g NM)", wps[i-1].Name, wps[i].Name,
				d, l.MinWaypointSpacing)
		}
	}

	// Turn angles
	if maxTurn, ok := l.MaxTurnAngle[p.Type]; ok {
		for i := 1; i < len(wps)-1; i++ {
			a, b, c := wps[i-1].Location(), wps[i].Location(), wps[i+1].Location()
			if math.NMDistance(a, b) == 0 || math.NMDistance(b, c) == 0 {
				r.warn("Turn angle at %s could not be evaluated: coincident waypoints", wps[i].Name)
				continue
			}
			if turn := math.TurnAngle(a, b, c); turn > maxTurn {
				r.critical("Turn angle at %s exceeds maximum (%.1f° > %g°)", wps[i].Name, turn, maxTurn)
			}
		}
	}

	// Gradients between consecutive waypoints with altitude constraints
	if maxGradient, ok := l.MaxGradient[p.Type]; ok {
		for i := 1; i < len(wps); i++ {
			prev, cur := wps[i-1], wps[i]
			if !prev.HasAltitude() || !cur.HasAltitude() {
				continue
			}
			d := math.NMDistance(prev.Location(), cur.Location())
			if d == 0 {
				r.warn("Gradient between %s and %s could not be evaluated: coincident waypoints", prev.Name, cur.Name)
				continue
			}
			dalt := math.Abs(*cur.AltitudeConstraint - *prev.AltitudeConstraint)
			if g := dalt / (d * gradientFeetPerNM) * 100; g > maxGradient {
				r.critical("Gradient between %s and %s exceeds maximum (%.1f%% > %g%%)", prev.Name, cur.Name,
					g, maxGradient)
			}
		}
	}

	// Constraints outside of the procedure's altitude bounds
	for _, wp := range wps {
		if !wp.HasAltitude() {
			continue
		}
		alt := *wp.AltitudeConstraint
		if p.MinimumAltitude != nil && alt < *p.MinimumAltitude {
			r.warn("Altitude constraint at %s (%.0f ft) is below the procedure minimum altitude (%.0f ft)",
				wp.Name, alt, *p.MinimumAltitude)
		}
		if p.MaximumAltitude != nil && alt > *p.MaximumAltitude {
			r.warn("Altitude constraint at %s (%.0f ft) is above the procedure maximum altitude (%.0f ft)",
				wp.Name, alt, *p.MaximumAltitude)
		}
	}

	return r
}
