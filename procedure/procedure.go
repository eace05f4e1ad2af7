// procedure/procedure.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package procedure

import (
	"bytes"
	"fmt"
	"maps"
	gomath "math"
	"os"
	"slices"
	"strings"
	"unicode"

	"github.com/mmp/ifpd/math"
	"github.com/mmp/ifpd/util"
)

///////////////////////////////////////////////////////////////////////////
// ProcedureType

type ProcedureType int

const (
	SID ProcedureType = iota + 1
	STAR
	APPROACH
)

var procedureTypeNames = map[ProcedureType][2]string{
	SID:      {"SID", "Standard Instrument Departure"},
	STAR:     {"STAR", "Standard Terminal Arrival Route"},
	APPROACH: {"APPROACH", "Approach Procedure"},
}

// ProcedureTypes returns all of the procedure types in a stable order.
func ProcedureTypes() []ProcedureType {
	return slices.Sorted(maps.Keys(procedureTypeNames))
}

func (t ProcedureType) String() string {
	if n, ok := procedureTypeNames[t]; ok {
		return n[0]
	}
	return fmt.Sprintf("ProcedureType(%d)", int(t))
}

// Description returns the long-form name, e.g. "Standard Instrument
// Departure".
func (t ProcedureType) Description() string {
	if n, ok := procedureTypeNames[t]; ok {
		return n[1]
	}
	return t.String()
}

func (t ProcedureType) Valid() bool {
	_, ok := procedureTypeNames[t]
	return ok
}

func ParseProcedureType(s string) (ProcedureType, error) {
	for t, n := range procedureTypeNames {
		if strings.EqualFold(s, n[0]) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownProcedureType)
}

func (t ProcedureType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, ErrUnknownProcedureType
	}
	return []byte(t.String()), nil
}

func (t *ProcedureType) UnmarshalText(b []byte) error {
	var err error
	*t, err = ParseProcedureType(string(b))
	return err
}

///////////////////////////////////////////////////////////////////////////
// NavigationType

type NavigationType int

const (
	RNAV NavigationType = iota + 1
	RNP
	ILS
	VOR
	NDB
)

var navigationTypeNames = map[NavigationType][2]string{
	RNAV: {"RNAV", "Area Navigation"},
	RNP:  {"RNP", "Required Navigation Performance"},
	ILS:  {"ILS", "Instrument Landing System"},
	VOR:  {"VOR", "VHF Omnidirectional Range"},
	NDB:  {"NDB", "Non-Directional Beacon"},
}

// NavigationTypes returns all of the navigation types in a stable order.
func NavigationTypes() []NavigationType {
	return slices.Sorted(maps.Keys(navigationTypeNames))
}

func (n NavigationType) String() string {
	if s, ok := navigationTypeNames[n]; ok {
		return s[0]
	}
	return fmt.Sprintf("NavigationType(%d)", int(n))
}

func (n NavigationType) Description() string {
	if s, ok := navigationTypeNames[n]; ok {
		return s[1]
	}
	return n.String()
}

func (n NavigationType) Valid() bool {
	_, ok := navigationTypeNames[n]
	return ok
}

func ParseNavigationType(s string) (NavigationType, error) {
	for n, name := range navigationTypeNames {
		if strings.EqualFold(s, name[0]) {
			return n, nil
		}
	}
	return 0, fmt.Errorf("%q: %w", s, ErrUnknownNavigationType)
}

func (n NavigationType) MarshalText() ([]byte, error) {
	if !n.Valid() {
		return nil, ErrUnknownNavigationType
	}
	return []byte(n.String()), nil
}

func (n *NavigationType) UnmarshalText(b []byte) error {
	var err error
	*n, err = ParseNavigationType(string(b))
	return err
}

///////////////////////////////////////////////////////////////////////////
// Waypoint

const MaxWaypointNameLength = 10
const MaxProcedureNameLength = 100

// Waypoint is a single fix of a procedure. A nil constraint means that
// there is no constraint; an explicit zero is a real constraint.
type Waypoint struct {
	Name               string   `json:"name"`
	Latitude           float64  `json:"latitude"`
	Longitude          float64  `json:"longitude"`
	Sequence           int      `json:"sequence"`
	AltitudeConstraint *float64 `json:"altitude_constraint,omitempty"` // feet
	SpeedConstraint    *float64 `json:"speed_constraint,omitempty"`    // knots
}

func (wp Waypoint) Location() math.Point2LL {
	return math.LL(wp.Latitude, wp.Longitude)
}

func (wp Waypoint) HasAltitude() bool {
	return wp.AltitudeConstraint != nil
}

func (wp Waypoint) String() string {
	s := wp.Name + " " + wp.Location().DDString()
	if wp.AltitudeConstraint != nil {
		s += fmt.Sprintf(" %.0fft", *wp.AltitudeConstraint)
	}
	return s
}

// Check reports problems with the waypoint's fields to e.
func (wp Waypoint) Check(e *util.ErrorLogger) {
	if wp.Name == "" {
		e.ErrorString("waypoint name is required")
	} else if len(wp.Name) > MaxWaypointNameLength {
		e.ErrorString("waypoint name %q is longer than %d characters", wp.Name, MaxWaypointNameLength)
	}

	if gomath.IsNaN(wp.Latitude) || wp.Latitude < -90 || wp.Latitude > 90 {
		e.ErrorString("latitude %v out of range [-90,90]", wp.Latitude)
	}
	if gomath.IsNaN(wp.Longitude) || wp.Longitude < -180 || wp.Longitude > 180 {
		e.ErrorString("longitude %v out of range [-180,180]", wp.Longitude)
	}
	if wp.AltitudeConstraint != nil && (gomath.IsNaN(*wp.AltitudeConstraint) || gomath.IsInf(*wp.AltitudeConstraint, 0)) {
		e.ErrorString("altitude constraint is not a number")
	}
	if wp.SpeedConstraint != nil && !(*wp.SpeedConstraint > 0) {
		e.ErrorString("speed constraint %v must be positive", *wp.SpeedConstraint)
	}
}

// Ptr is a convenience for writing constraints inline.
func Ptr[T any](v T) *T {
	return &v
}

///////////////////////////////////////////////////////////////////////////
// Procedure

// Procedure is an instrument flight procedure: an ordered chain of
// waypoints plus the metadata that determines which criteria apply to it.
type Procedure struct {
	Name            string         `json:"name"`
	AirportICAO     string         `json:"airport_icao,omitempty"`
	Type            ProcedureType  `json:"procedure_type"`
	Navigation      NavigationType `json:"navigation_type"`
	MinimumAltitude *float64       `json:"minimum_altitude,omitempty"` // feet
	MaximumAltitude *float64       `json:"maximum_altitude,omitempty"` // feet
	Waypoints       []Waypoint     `json:"waypoints"`
}

// SortWaypoints orders the waypoints by ascending sequence number.
// Waypoints with equal sequence numbers keep their relative order.
func (p *Procedure) SortWaypoints() {
	slices.SortStableFunc(p.Waypoints, func(a, b Waypoint) int { return a.Sequence - b.Sequence })
}

// ClearanceMargin returns the required terrain clearance in feet for the
// procedure using the default margins.
func (p *Procedure) ClearanceMargin() float64 {
	return DefaultLimits.Clearance.Margin(p.Type, p.Navigation)
}

func (p *Procedure) String() string {
	s := p.Name
	if p.AirportICAO != "" {
		s = p.AirportICAO + " " + s
	}
	return fmt.Sprintf("%s (%s/%s)", s, p.Type, p.Navigation)
}

// Check reports problems with the procedure's fields, and those of its
// waypoints, to e. It does not apply any of the design criteria; see
// Validate for that.
func (p *Procedure) Check(e *util.ErrorLogger) {
	e.Push("Procedure " + p.Name)
	defer e.Pop()

	if len(p.Name) > MaxProcedureNameLength {
		e.ErrorString("name is longer than %d characters", MaxProcedureNameLength)
	}
	if p.AirportICAO != "" {
		if len(p.AirportICAO) != 4 || strings.IndexFunc(p.AirportICAO, func(r rune) bool {
			return !unicode.IsUpper(r) && !unicode.IsDigit(r)
		}) != -1 {
			e.ErrorString("airport %q is not a 4-character ICAO identifier", p.AirportICAO)
		}
	}
	if !p.Type.Valid() {
		e.ErrorString("procedure type is required (SID, STAR, or APPROACH)")
	}
	if !p.Navigation.Valid() {
		e.ErrorString("navigation type is required (RNAV, RNP, ILS, VOR, or NDB)")
	}
	if p.MinimumAltitude != nil && p.MaximumAltitude != nil && *p.MinimumAltitude > *p.MaximumAltitude {
		e.ErrorString("minimum altitude %.0f is above maximum altitude %.0f", *p.MinimumAltitude, *p.MaximumAltitude)
	}

	for i, wp := range p.Waypoints {
		e.Push(fmt.Sprintf("Waypoint %d (%s)", i+1, wp.Name))
		wp.Check(e)
		e.Pop()
	}
}

// CheckError runs Check and returns an error wrapping ErrInvalidProcedure
// that describes all of the problems found, or nil.
func (p *Procedure) CheckError() error {
	var e util.ErrorLogger
	p.Check(&e)
	return e.Err(ErrInvalidProcedure)
}

// LoadProcedures reads procedures from JSON; the contents may either be a
// single procedure object or an array of them.
func LoadProcedures(b []byte) ([]Procedure, error) {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var procs []Procedure
		if err := util.UnmarshalJSONBytes(b, &procs); err != nil {
			return nil, err
		}
		if len(procs) == 0 {
			return nil, ErrNoProcedures
		}
		return procs, nil
	}

	var p Procedure
	if err := util.UnmarshalJSONBytes(b, &p); err != nil {
		return nil, err
	}
	return []Procedure{p}, nil
}

func LoadProceduresFile(path string) ([]Procedure, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	procs, err := LoadProcedures(b)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return procs, nil
}
