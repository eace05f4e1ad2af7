// procedure/errors.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package procedure

import "errors"

var (
	ErrCoincidentWaypoints   = errors.New("Waypoints are coincident")
	ErrInvalidProcedure      = errors.New("Invalid procedure")
	ErrNoProcedures          = errors.New("No procedures found")
	ErrTooFewWaypoints       = errors.New("Procedure must have at least 2 waypoints")
	ErrUnknownNavigationType = errors.New("Unknown navigation type")
	ErrUnknownProcedureType  = errors.New("Unknown procedure type")
)
