// math/latlong_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestParseLatLong(t *testing.T) {
	type LL struct {
		str string
		pos Point2LL
	}
	latlongs := []LL{
		{str: "N40.37.58.400, W073.46.17.000", pos: Point2LL{-73.771388889, 40.632888889}}, // JFK VOR
		{str: "N40.37.58.4,W073.46.17.000", pos: Point2LL{-73.771388889, 40.632888889}},    // JFK VOR
		{str: "40.6328888, -73.771385", pos: Point2LL{-73.771385, 40.6328888}},             // JFK VOR
		{str: "+403758.400-0734617.000", pos: Point2LL{-73.771388889, 40.632888889}},       // JFK VOR
		{str: "47, 8", pos: Point2LL{8, 47}},
		{str: "S33.56.46.000,E151.10.38.000", pos: Point2LL{151.177222222, -33.946111111}}, // SYD
	}

	for _, ll := range latlongs {
		p, err := ParseLatLong([]byte(ll.str))
		if err != nil {
			t.Errorf("%s: unexpected error: %v", ll.str, err)
			continue
		}
		if Abs(p[0]-ll.pos[0]) > 1e-6 {
			t.Errorf("%s: got %.9g for longitude, expected %.9g", ll.str, p[0], ll.pos[0])
		}
		if Abs(p[1]-ll.pos[1]) > 1e-6 {
			t.Errorf("%s: got %.9g for latitude, expected %.9g", ll.str, p[1], ll.pos[1])
		}
	}

	for _, invalid := range []string{
		"E40.37.58.400, W073.46.17.000",
		"40.37.58.400, W073.46.17.000",
		"N40.37.58.400, -73.22",
		"N40.37.58.400, W073.46.17",
		"91.0, 8.0",
		"47.0, 181.0",
		"",
	} {
		if _, err := ParseLatLong([]byte(invalid)); err == nil {
			t.Errorf("%s: no error was returned for invalid latlong string!", invalid)
		}
	}
}

func TestDMSString(t *testing.T) {
	p := LL(47.5, -8.25)
	if s := p.DMSString(); s != "N047.30.00.000,W008.15.00.000" {
		t.Errorf("DMSString() = %s", s)
	}

	// Round trip through the parser
	q, err := ParseLatLong([]byte(p.DMSString()))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if Abs(q[0]-p[0]) > 1e-6 || Abs(q[1]-p[1]) > 1e-6 {
		t.Errorf("round trip gave %v, expected %v", q, p)
	}
}

func TestLerp2LL(t *testing.T) {
	a, b := LL(47, 8), LL(48, 10)
	if p := Lerp2LL(0, a, b); p != a {
		t.Errorf("Lerp2LL(0) = %v, expected %v", p, a)
	}
	if p := Lerp2LL(1, a, b); p != b {
		t.Errorf("Lerp2LL(1) = %v, expected %v", p, b)
	}
	if p := Lerp2LL(0.5, a, b); Abs(p.Latitude()-47.5) > 1e-12 || Abs(p.Longitude()-9) > 1e-12 {
		t.Errorf("Lerp2LL(0.5) = %v", p)
	}
}
