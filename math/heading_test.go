// math/heading_test.go
// Copyright(c) 2022-2025 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package math

import (
	"testing"
)

func TestHeadingDifference(t *testing.T) {
	type hd struct {
		a, b, d float64
	}

	for _, h := range []hd{{10, 90, 80}, {350, 12, 22}, {340, 120, 140}, {-90, 80, 170},
		{40, 181, 141}, {-170, 160, 30}, {-120, -150, 30}, {0, 180, 180}, {720, 0, 0}} {
		if HeadingDifference(h.a, h.b) != h.d {
			t.Errorf("headingDifference(%f, %f) -> %f, expected %f", h.a, h.b,
				HeadingDifference(h.a, h.b), h.d)
		}
		if HeadingDifference(h.b, h.a) != h.d {
			t.Errorf("headingDifference(%f, %f) -> %f, expected %f", h.b, h.a,
				HeadingDifference(h.b, h.a), h.d)
		}
	}
}

func TestNormalizeHeading(t *testing.T) {
	h := [][2]float64{{90, 90}, {360, 0}, {-10, 350}, {380, 20}, {-380, 340}, {0, 0}}
	for _, pair := range h {
		if NormalizeHeading(pair[0]) != pair[1] {
			t.Errorf("normalize heading error: %f -> %f, expected %f",
				pair[0], NormalizeHeading(pair[0]), pair[1])
		}
	}
}

func TestShortCompass(t *testing.T) {
	for _, c := range []struct {
		h float64
		s string
	}{{0, "N"}, {22, "N"}, {23, "NE"}, {90, "E"}, {200, "S"}, {359, "N"}, {-45, "NW"}} {
		if got := ShortCompass(c.h); got != c.s {
			t.Errorf("ShortCompass(%f) = %s, expected %s", c.h, got, c.s)
		}
	}
}
