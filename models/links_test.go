// ABOUTME: Tests for the links JSON codec
package models

import (
	"reflect"
	"testing"
)

func TestDecodeLinks(t *testing.T) {
	cases := []struct {
		raw  string
		want []string
	}{
		{`["https://example.com"]`, []string{"https://example.com"}},
		{`["a","b"]`, []string{"a", "b"}},
		{`[]`, []string{}},
		{"", []string{}},
		{"not json", []string{}},
		{`{"a":1}`, []string{}},
		{"null", []string{}},
	}

	for _, tc := range cases {
		if got := DecodeLinks(tc.raw); !reflect.DeepEqual(got, tc.want) {
			t.Errorf("DecodeLinks(%q) = %v, want %v", tc.raw, got, tc.want)
		}
	}
}

func TestEncodeLinksRoundTrip(t *testing.T) {
	links := []string{"https://example.com/profile", "https://jobs.example.com"}
	if got := DecodeLinks(EncodeLinks(links)); !reflect.DeepEqual(got, links) {
		t.Errorf("round trip = %v, want %v", got, links)
	}

	if got := EncodeLinks(nil); got != "[]" {
		t.Errorf("EncodeLinks(nil) = %q, want %q", got, "[]")
	}
}
