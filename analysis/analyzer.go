// analysis/analyzer.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/mmp/ifpd/log"
	"github.com/mmp/ifpd/procedure"
	"github.com/mmp/ifpd/terrain"
	"github.com/mmp/ifpd/util"

	"github.com/brunoga/deep"
)

// Analyzer runs validation and terrain analysis for procedures. It holds
// no mutable state of its own and may be used concurrently.
type Analyzer struct {
	Provider          terrain.Provider
	Limits            procedure.Limits
	SamplesPerSegment int

	lg *log.Logger
}

// NewAnalyzer returns an Analyzer that gets terrain from the given
// provider and uses procedure.DefaultLimits. If provider is nil, the
// synthetic terrain model is used.
func NewAnalyzer(provider terrain.Provider, samplesPerSegment int, lg *log.Logger) *Analyzer {
	if provider == nil {
		provider = terrain.Synthetic{}
	}
	if samplesPerSegment <= 0 {
		samplesPerSegment = DefaultSamplesPerSegment
	}
	return &Analyzer{
		Provider:          provider,
		Limits:            procedure.DefaultLimits,
		SamplesPerSegment: samplesPerSegment,
		lg:                lg,
	}
}

// prepare returns a checked copy of the procedure with its waypoints in
// the caller's order; the caller's procedure is never modified.
func (a *Analyzer) prepare(p *procedure.Procedure) (*procedure.Procedure, error) {
	if p == nil {
		return nil, procedure.ErrInvalidProcedure
	}
	cp := deep.MustCopy(*p)

	var e util.ErrorLogger
	cp.Check(&e)
	if e.HaveErrors() {
		e.LogErrors(a.lg)
		return nil, e.Err(procedure.ErrInvalidProcedure)
	}

	return &cp, nil
}

// ValidateProcedure checks the procedure against the design criteria
// with the waypoints in the order given. An error is only returned for malformed input; criteria failures,
// including having too few waypoints, are reported in the result.
func (a *Analyzer) ValidateProcedure(p *procedure.Procedure) (procedure.ValidationReport, error) {
	cp, err := a.prepare(p)
	if err != nil {
		return procedure.ValidationReport{}, err
	}

	r := a.Limits.Validate(cp)
	a.lg.Debug("validated procedure", "procedure", cp.String(), "critical", len(r.Critical),
		"warnings", len(r.Warnings))
	return r, nil
}

// AnalyzeProcedureTerrain evaluates terrain clearance along the whole
// procedure.
func (a *Analyzer) AnalyzeProcedureTerrain(ctx context.Context, p *procedure.Procedure) (ClearanceReport, error) {
	cp, err := a.prepare(p)
	if err != nil {
		return ClearanceReport{}, err
	}
	if len(cp.Waypoints) < 2 {
		return ClearanceReport{}, procedure.ErrTooFewWaypoints
	}
	cp.SortWaypoints()

	points := Sample(cp.Waypoints, a.SamplesPerSegment)
	elev, estimated := a.Provider.Elevations(ctx, locations(points))

	r, err := evaluateClearance(a.Limits.Clearance.Margin(cp.Type, cp.Navigation), points, elev, cp.Waypoints)
	if err != nil {
		return ClearanceReport{}, err
	}
	r.Estimated = estimated

	a.lg.Debug("analyzed procedure terrain", "procedure", cp.String(), "points", len(points),
		"violations", len(r.Violations), "warnings", len(r.Warnings), "estimated", estimated)
	return r, nil
}

// AnalyzeSegment reports the terrain along the leg between two waypoints.
// The report holds copies of the waypoints.
func (a *Analyzer) AnalyzeSegment(ctx context.Context, wp1, wp2 procedure.Waypoint) (SegmentReport, error) {
	return analyzeSegment(ctx, a.Provider, a.Limits.Clearance.SegmentMOC, deep.MustCopy(wp1), deep.MustCopy(wp2),
		a.SamplesPerSegment)
}

// SegmentResult is the outcome of analyzing one leg of a procedure; if
// the leg couldn't be analyzed, Report is nil and Error says why.
type SegmentResult struct {
	Index  int            `json:"index"`
	From   string         `json:"from"`
	To     string         `json:"to"`
	Report *SegmentReport `json:"report,omitempty"`
	Error  string         `json:"error,omitempty"`
}

type ChainReport struct {
	TotalDistance   float64                    `json:"total_distance"`
	Segments        []SegmentResult            `json:"segments"`
	Validation      procedure.ValidationReport `json:"validation"`
	Estimated       bool                       `json:"estimated"`
	PartialFailures int                        `json:"partial_failures"`
}

// ChainAnalyze analyzes each consecutive leg of the procedure and
// validates it as a whole. Validation sees the waypoints in the order
// given; the legs are analyzed in sequence order. A leg that can't be analyzed is recorded in
// its SegmentResult and the remaining legs are still analyzed.
func (a *Analyzer) ChainAnalyze(ctx context.Context, p *procedure.Procedure) (ChainReport, error) {
	cp, err := a.prepare(p)
	if err != nil {
		return ChainReport{}, err
	}
	if len(cp.Waypoints) < 2 {
		return ChainReport{}, procedure.ErrTooFewWaypoints
	}

	lg := a.lg.With("procedure", cp.String())
	cr := ChainReport{Validation: a.Limits.Validate(cp)}
	cp.SortWaypoints()
	for i := range len(cp.Waypoints) - 1 {
		wp1, wp2 := cp.Waypoints[i], cp.Waypoints[i+1]
		sr := SegmentResult{Index: i, From: wp1.Name, To: wp2.Name}

		if r, err := a.AnalyzeSegment(ctx, wp1, wp2); err != nil {
			lg.Warn("segment analysis failed", "segment", i, "error", err)
			sr.Error = err.Error()
			cr.PartialFailures++
		} else {
			lg.Debug("analyzed segment", "segment", r.String())
			sr.Report = &r
			cr.TotalDistance += r.Distance
			cr.Estimated = cr.Estimated || r.Estimated
		}
		cr.Segments = append(cr.Segments, sr)
	}

	return cr, nil
}

// FailedSegments returns the results for the segments that couldn't be
// analyzed.
func (cr ChainReport) FailedSegments() []SegmentResult {
	return util.FilterSlice(cr.Segments, func(sr SegmentResult) bool { return sr.Report == nil })
}

func (cr ChainReport) String() string {
	s := fmt.Sprintf("%.1f NM in %d segments", cr.TotalDistance, len(cr.Segments))
	if failed := cr.FailedSegments(); len(failed) > 0 {
		s += fmt.Sprintf(", %d failed (%s)", len(failed), strings.Join(util.MapSlice(failed,
			func(sr SegmentResult) string { return sr.From + "-" + sr.To }), ", "))
	}
	return s
}
