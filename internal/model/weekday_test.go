package model

import (
	"testing"
	"time"
)

func TestWeekdayName(t *testing.T) {
	cases := []struct {
		name     string
		date     string
		expected string
	}{
		{name: "sunday", date: "2026-09-06", expected: "Domingo"},
		{name: "monday", date: "2026-09-07", expected: "Lunes"},
		{name: "tuesday", date: "2026-09-01", expected: "Martes"},
		{name: "wednesday", date: "2026-09-02", expected: "Miércoles"},
		{name: "thursday", date: "2026-09-03", expected: "Jueves"},
		{name: "friday", date: "2026-09-04", expected: "Viernes"},
		{name: "saturday", date: "2026-09-05", expected: "Sábado"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := time.Parse(DateLayout, tc.date)
			if err != nil {
				t.Fatalf("parse %q: %v", tc.date, err)
			}
			if got := WeekdayName(d); got != tc.expected {
				t.Fatalf("expected %q, got %q", tc.expected, got)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	cases := []struct {
		name  string
		input string
		ok    bool
	}{
		{name: "valid", input: "2026-02-14", ok: true},
		{name: "leap day", input: "2024-02-29", ok: true},
		{name: "not a leap year", input: "2026-02-29", ok: false},
		{name: "month out of range", input: "2026-13-01", ok: false},
		{name: "wrong layout", input: "14/02/2026", ok: false},
		{name: "empty", input: "", ok: false},
		{name: "garbage", input: "mañana", ok: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d, err := ParseDate(tc.input)
			if tc.ok && err != nil {
				t.Fatalf("expected success, got %v", err)
			}
			if !tc.ok && err == nil {
				t.Fatalf("expected error, got %v", d)
			}
			if tc.ok && d.Format(DateLayout) != tc.input {
				t.Fatalf("round trip mismatch: %q -> %q", tc.input, d.Format(DateLayout))
			}
		})
	}
}

func TestIsWeekdayName(t *testing.T) {
	for _, n := range weekdayNames {
		if !IsWeekdayName(n) {
			t.Fatalf("expected %q to be a weekday name", n)
		}
	}
	for _, bad := range []string{"", "domingo", "Sabado", "Monday", "Miercoles"} {
		if IsWeekdayName(bad) {
			t.Fatalf("expected %q to be rejected", bad)
		}
	}
}
