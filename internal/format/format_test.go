package format

import (
	"math"
	"strings"
	"testing"
)

func TestDuration(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "00:00:00"},
		{59, "00:00:59"},
		{61.9, "00:01:01"},
		{3600, "01:00:00"},
		{86399, "23:59:59"},
		{86400, "1d 00:00:00"},
		{90061, "1d 01:01:01"},
		{12*86400 + 5*3600 + 30, "12d 05:00:30"},
		{-5, "00:00:00"},
		{math.NaN(), "00:00:00"},
		{math.Inf(1), "106751991167300d 15:30:07"},
		{1e302, "106751991167300d 15:30:07"},
	}

	for _, tt := range tests {
		if got := Duration(tt.seconds); got != tt.want {
			t.Errorf("Duration(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}

	for _, tt := range tests {
		if got := Number(tt.in); got != tt.want {
			t.Errorf("Number(%d) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPercent(t *testing.T) {
	if got := Percent(15); got != "15%" {
		t.Errorf("Percent(15) = %q", got)
	}
	if got := Percent(12.5); got != "12.5%" {
		t.Errorf("Percent(12.5) = %q", got)
	}
}

func TestName(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"command_center", "Command Center"},
		{"furnace", "Furnace"},
		{"lancer camp", "Lancer Camp"},
		{"über_camp", "Über Camp"},
		{"éclair", "Éclair"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := Name(tt.in); got != tt.want {
			t.Errorf("Name(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func FuzzDuration(f *testing.F) {
	f.Add(0.0)
	f.Add(90061.0)
	f.Add(4.5e6)
	f.Add(-1.0)
	f.Add(1e300)

	f.Fuzz(func(t *testing.T, seconds float64) {
		got := Duration(seconds)
		if len(got) < len("00:00:00") {
			t.Errorf("Duration(%v) = %q is too short", seconds, got)
		}
		if strings.Contains(got, "-") {
			t.Errorf("Duration(%v) = %q has a negative field", seconds, got)
		}
	})
}
