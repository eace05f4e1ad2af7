// cmd/ifpd/commands.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/mmp/ifpd/analysis"
	"github.com/mmp/ifpd/log"
	"github.com/mmp/ifpd/math"
	"github.com/mmp/ifpd/procedure"

	"github.com/goforj/godump"
	"github.com/iancoleman/orderedmap"
)

const (
	exitOK       = 0
	exitError    = 1
	exitCritical = 2
)

type commands struct {
	analyzer *analysis.Analyzer
	strict   bool
	dump     bool
	out      io.Writer
	errOut   io.Writer
	dumpOut  io.Writer
	lg       *log.Logger

	// For the segment command.
	alt1, alt2 string
}

// procedureResult is reported for a single procedure; exactly one of the
// result fields is set.
type procedureResult struct {
	Procedure  string                      `json:"procedure"`
	Type       string                      `json:"procedure_type,omitempty"`
	Validation *procedure.ValidationReport `json:"validation,omitempty"`
	Terrain    *analysis.ClearanceReport   `json:"terrain,omitempty"`
	Chain      *analysis.ChainReport       `json:"chain,omitempty"`
	Error      string                      `json:"error,omitempty"`
}

func (r procedureResult) critical() bool {
	switch {
	case r.Validation != nil:
		return !r.Validation.Passed()
	case r.Terrain != nil:
		return !r.Terrain.Passed()
	case r.Chain != nil:
		return !r.Chain.Validation.Passed() || r.Chain.PartialFailures > 0
	default:
		return false
	}
}

func (c *commands) run(ctx context.Context, cmd string, args []string) int {
	switch cmd {
	case "validate", "terrain", "chain":
		if len(args) != 1 {
			fmt.Fprintf(c.errOut, "%s: expected a single procedure file\n", cmd)
			return exitError
		}
		return c.runProcedures(ctx, cmd, args[0])

	case "segment":
		if len(args) != 2 {
			fmt.Fprintf(c.errOut, "segment: expected two locations\n")
			return exitError
		}
		return c.runSegment(ctx, args[0], args[1])

	default:
		fmt.Fprintf(c.errOut, "%s: unknown command\n", cmd)
		return exitError
	}
}

func (c *commands) runProcedures(ctx context.Context, cmd string, filename string) int {
	procs, err := procedure.LoadProceduresFile(filename)
	if err != nil {
		fmt.Fprintf(c.errOut, "%v\n", err)
		return exitError
	}

	results := orderedmap.New()
	results.SetEscapeHTML(false)
	status := exitOK
	for i := range procs {
		p := &procs[i]
		r := c.analyze(ctx, cmd, p)
		if r.Error != "" {
			c.lg.Warn("procedure analysis failed", "procedure", p.Name, "command", cmd, "error", r.Error)
			status = exitError
		} else if c.strict && r.critical() && status == exitOK {
			status = exitCritical
		}
		results.Set(resultKey(results, p.Name, i), r)
	}

	if err := c.emit(results); err != nil {
		fmt.Fprintf(c.errOut, "%v\n", err)
		return exitError
	}
	return status
}

// resultKey returns a unique key for the i'th procedure in the file.
func resultKey(results *orderedmap.OrderedMap, name string, i int) string {
	if name == "" {
		name = fmt.Sprintf("procedure %d", i+1)
	}
	key := name
	for n := 2; ; n++ {
		if _, ok := results.Get(key); !ok {
			return key
		}
		key = name + " #" + strconv.Itoa(n)
	}
}

func (c *commands) analyze(ctx context.Context, cmd string, p *procedure.Procedure) procedureResult {
	r := procedureResult{Procedure: p.Name}
	if p.Type.Valid() {
		r.Type = p.Type.Description()
	}

	var err error
	switch cmd {
	case "validate":
		var vr procedure.ValidationReport
		if vr, err = c.analyzer.ValidateProcedure(p); err == nil {
			r.Validation = &vr
		}
	case "terrain":
		var tr analysis.ClearanceReport
		if tr, err = c.analyzer.AnalyzeProcedureTerrain(ctx, p); err == nil {
			r.Terrain = &tr
			c.lg.Info("terrain analysis", "procedure", p.String(), "summary", tr.Summary())
		}
	case "chain":
		var cr analysis.ChainReport
		if cr, err = c.analyzer.ChainAnalyze(ctx, p); err == nil {
			r.Chain = &cr
			c.lg.Info("chain analysis", "procedure", p.String(), "summary", cr.String())
		}
	}
	if err != nil {
		r.Error = err.Error()
	}
	return r
}

func parseAltitude(s string) (*float64, error) {
	if s == "" {
		return nil, nil
	}
	alt, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(s), "ft"), 64)
	if err != nil {
		return nil, fmt.Errorf("%s: invalid altitude: %w", s, err)
	}
	return &alt, nil
}

func (c *commands) runSegment(ctx context.Context, from, to string) int {
	var wps [2]procedure.Waypoint
	for i, s := range []string{from, to} {
		p, err := math.ParseLatLong([]byte(s))
		if err != nil {
			fmt.Fprintf(c.errOut, "%v\n", err)
			return exitError
		}
		alt, err := parseAltitude([]string{c.alt1, c.alt2}[i])
		if err != nil {
			fmt.Fprintf(c.errOut, "%v\n", err)
			return exitError
		}
		wps[i] = procedure.Waypoint{
			Name:               fmt.Sprintf("WP%d", i+1),
			Latitude:           p.Latitude(),
			Longitude:          p.Longitude(),
			Sequence:           i + 1,
			AltitudeConstraint: alt,
		}
	}

	c.lg.Info("analyzing segment", "from", wps[0].Location().DMSString(), "to", wps[1].Location().DMSString())
	r, err := c.analyzer.AnalyzeSegment(ctx, wps[0], wps[1])
	if err != nil {
		fmt.Fprintf(c.errOut, "%v\n", err)
		return exitError
	}

	if err := c.emit(r); err != nil {
		fmt.Fprintf(c.errOut, "%v\n", err)
		return exitError
	}
	if c.strict && len(r.Violations) > 0 {
		return exitCritical
	}
	return exitOK
}

func (c *commands) emit(v any) error {
	if c.dump {
		godump.Fdump(c.dumpOut, v)
	}

	enc := json.NewEncoder(c.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
