// ABOUTME: Tests for status vocabulary and direction inference
package models

import "testing"

func TestOutcomeIsClosed(t *testing.T) {
	cases := []struct {
		outcome string
		want    bool
	}{
		{"closed", true},
		{"Closed", true},
		{"closed - no sponsorship", true},
		{"not_interested", true},
		{"They said not interested", true},
		{"", false},
		{"sent", false},
		{"replied", false},
		{"ghosted", false},
		{"meeting_booked", false},
	}

	for _, tc := range cases {
		if got := OutcomeIsClosed(tc.outcome); got != tc.want {
			t.Errorf("OutcomeIsClosed(%q) = %v, want %v", tc.outcome, got, tc.want)
		}
	}
}

func TestNormalizeDirection(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"outbound", "outbound"},
		{"out", "outbound"},
		{"IN", "inbound"},
		{"inbound", "inbound"},
		{"unknown", "other"},
		{"other", "other"},
		{"", ""},
		{"  Outbound ", "outbound"},
		{"carrier-pigeon", "carrier-pigeon"},
	}

	for _, tc := range cases {
		if got := NormalizeDirection(tc.in); got != tc.want {
			t.Errorf("NormalizeDirection(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestInferDirection(t *testing.T) {
	cases := []struct {
		direction string
		outcome   string
		want      string
	}{
		{"inbound", "sent", "inbound"}, // explicit direction wins
		{"", "sent", "outbound"},
		{"", "replied", "inbound"},
		{"", "reply", "inbound"},
		{"", "ghosted", "other"},
		{"", "", "other"},
	}

	for _, tc := range cases {
		if got := InferDirection(tc.direction, tc.outcome); got != tc.want {
			t.Errorf("InferDirection(%q, %q) = %q, want %q", tc.direction, tc.outcome, got, tc.want)
		}
	}
}
