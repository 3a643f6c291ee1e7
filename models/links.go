// ABOUTME: Codec for the links field on people and waitlist items
// ABOUTME: Links travel as a JSON-encoded array of URL strings inside flat JSON
package models

import "encoding/json"

// DecodeLinks parses a serialized links field. Anything that is not a JSON
// array of strings decodes to an empty list; the field is advisory and must
// never fail a read.
func DecodeLinks(raw string) []string {
	if raw == "" {
		return []string{}
	}
	var links []string
	if err := json.Unmarshal([]byte(raw), &links); err != nil || links == nil {
		return []string{}
	}
	return links
}

// EncodeLinks serializes a link list for transport and storage.
func EncodeLinks(links []string) string {
	if links == nil {
		links = []string{}
	}
	out, err := json.Marshal(links)
	if err != nil {
		return "[]"
	}
	return string(out)
}
