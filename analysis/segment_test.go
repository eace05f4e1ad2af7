// analysis/segment_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package analysis

import (
	"context"
	"errors"
	"testing"

	"github.com/mmp/ifpd/math"
	"github.com/mmp/ifpd/procedure"
)

// testProvider returns elevations computed by f.
type testProvider struct {
	f         func(p math.Point2LL) float64
	estimated bool
	short     bool // return one elevation too few
}

func (tp testProvider) Elevations(ctx context.Context, pts []math.Point2LL) ([]float64, bool) {
	elev := make([]float64, len(pts))
	for i, p := range pts {
		elev[i] = tp.f(p)
	}
	if tp.short && len(elev) > 0 {
		elev = elev[:len(elev)-1]
	}
	return elev, tp.estimated
}

func flatTerrain(e float64) testProvider {
	return testProvider{f: func(math.Point2LL) float64 { return e }}
}

func TestAnalyzeSegment(t *testing.T) {
	wps := makeWaypoints([2]float64{47, 8}, [2]float64{47.5, 8})
	wps[0].AltitudeConstraint = procedure.Ptr(1200.)
	wps[1].AltitudeConstraint = procedure.Ptr(2000.)

	// Terrain rises to the north.
	tp := testProvider{f: func(p math.Point2LL) float64 { return (p.Latitude() - 47) * 2000 }}
	r, err := AnalyzeSegment(context.Background(), tp, wps[0], wps[1], 10)
	if err != nil {
		t.Fatal(err)
	}

	if len(r.Profile.Distances) != 11 || len(r.Profile.Elevations) != 11 {
		t.Fatalf("expected 11 profile points, got %d/%d", len(r.Profile.Distances), len(r.Profile.Elevations))
	}
	if math.Abs(r.Distance-30.02) > 0.05 {
		t.Errorf("unexpected distance %v", r.Distance)
	}
	if r.Profile.Distances[10] != r.Distance {
		t.Errorf("last profile distance %v should equal segment distance %v", r.Profile.Distances[10], r.Distance)
	}
	if math.Abs(r.Bearing) > 1e-6 {
		t.Errorf("expected bearing 0, got %v", r.Bearing)
	}
	if math.Abs(r.MinimumSafeAltitude-1500) > 1e-6 {
		t.Errorf("expected MSA 1500, got %v", r.MinimumSafeAltitude)
	}
	if s := r.String(); s != "A-B 30.0 NM N (000°), MSA 1500 ft" {
		t.Errorf("unexpected summary %q", s)
	}

	// 1200 < 0+500 is fine; 2000 < 1000+500 is fine too.
	if len(r.Violations) != 0 {
		t.Errorf("unexpected violations %v", r.Violations)
	}

	wps[1].AltitudeConstraint = procedure.Ptr(1400.)
	r, err = AnalyzeSegment(context.Background(), tp, wps[0], wps[1], 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(r.Violations) != 1 || r.Violations[0].WaypointName != wps[1].Name {
		t.Errorf("expected a violation at the end waypoint, got %v", r.Violations)
	}
}

func TestAnalyzeSegmentEstimated(t *testing.T) {
	wps := makeWaypoints([2]float64{47, 8}, [2]float64{47.5, 8})
	tp := flatTerrain(100)
	tp.estimated = true

	r, err := AnalyzeSegment(context.Background(), tp, wps[0], wps[1], 20)
	if err != nil {
		t.Fatal(err)
	}
	if !r.Estimated {
		t.Errorf("expected estimated report")
	}
	if len(r.Profile.Elevations) != 21 {
		t.Errorf("expected 21 profile points, got %d", len(r.Profile.Elevations))
	}
}

func TestAnalyzeSegmentErrors(t *testing.T) {
	wps := makeWaypoints([2]float64{47, 8}, [2]float64{47, 8})
	if _, err := AnalyzeSegment(context.Background(), flatTerrain(0), wps[0], wps[1], 10); !errors.Is(err, procedure.ErrCoincidentWaypoints) {
		t.Errorf("expected ErrCoincidentWaypoints, got %v", err)
	}

	wps[1].Latitude = 95
	if _, err := AnalyzeSegment(context.Background(), flatTerrain(0), wps[0], wps[1], 10); !errors.Is(err, procedure.ErrInvalidProcedure) {
		t.Errorf("expected ErrInvalidProcedure, got %v", err)
	}

	wps[1].Latitude = 47.5
	tp := flatTerrain(0)
	tp.short = true
	if _, err := AnalyzeSegment(context.Background(), tp, wps[0], wps[1], 10); !errors.Is(err, ErrElevationCount) {
		t.Errorf("expected ErrElevationCount, got %v", err)
	}
}
