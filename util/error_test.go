// util/error_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package util

import (
	"errors"
	"testing"
)

func TestErrorLogger(t *testing.T) {
	var e ErrorLogger
	if e.HaveErrors() {
		t.Errorf("fresh ErrorLogger has errors")
	}

	e.ErrorString("top level")
	e.Push("Procedure RWY27")
	e.Push("Waypoint ALPHA")
	e.ErrorString("latitude %.1f out of range", 91.0)
	e.Pop()
	e.Error(errors.New("no waypoints"))
	e.Pop()

	expected := []string{
		"top level",
		"Procedure RWY27 / Waypoint ALPHA: latitude 91.0 out of range",
		"Procedure RWY27: no waypoints",
	}
	if !e.HaveErrors() || len(e.Errors()) != len(expected) {
		t.Fatalf("got %v", e.Errors())
	}
	for i, s := range expected {
		if e.Errors()[i] != s {
			t.Errorf("error %d: got %q, expected %q", i, e.Errors()[i], s)
		}
	}

	errInput := errors.New("bad input")
	err := e.Err(errInput)
	if !errors.Is(err, errInput) {
		t.Errorf("expected error wrapping sentinel, got %v", err)
	} else if err.Error() != "bad input: top level; "+expected[1]+"; "+expected[2] {
		t.Errorf("unexpected error text %q", err.Error())
	}

	var nilLogger *ErrorLogger
	if nilLogger.HaveErrors() || nilLogger.Err(errInput) != nil {
		t.Errorf("nil ErrorLogger should be empty")
	}
	var empty ErrorLogger
	if empty.Err(errInput) != nil {
		t.Errorf("empty ErrorLogger should give a nil error")
	}
}
