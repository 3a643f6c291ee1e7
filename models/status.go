// ABOUTME: Status and direction normalization for touchpoints and people
// ABOUTME: Centralizes the closed-outcome and direction-inference rules
package models

import "strings"

// NormalizeToken lowercases and trims a free-text enum value.
func NormalizeToken(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

// OutcomeIsClosed reports whether a touchpoint outcome means the thread is
// dead. Historical data contains variants like "closed - no sponsorship" and
// "not interested", so matching is looser than a plain equality check.
func OutcomeIsClosed(outcome string) bool {
	token := NormalizeToken(outcome)
	if token == "" {
		return false
	}
	if token == OutcomeClosed || strings.HasPrefix(token, "closed") {
		return true
	}
	if token == "not_interested" || strings.Contains(token, "not interested") {
		return true
	}
	return false
}

// NormalizeDirection maps direction variants to the canonical set.
// Unknown non-empty values pass through as-is.
func NormalizeDirection(value string) string {
	token := NormalizeToken(value)
	switch token {
	case "":
		return ""
	case DirectionOutbound, "out":
		return DirectionOutbound
	case DirectionInbound, "in":
		return DirectionInbound
	case DirectionOther, "unknown":
		return DirectionOther
	}
	return token
}

// InferDirection resolves a touchpoint direction, falling back to the
// outcome when no direction was recorded: "sent" implies outbound,
// "replied" implies inbound, anything else is other.
func InferDirection(direction, outcome string) string {
	if normalized := NormalizeDirection(direction); normalized != "" {
		return normalized
	}

	switch NormalizeToken(outcome) {
	case OutcomeSent:
		return DirectionOutbound
	case OutcomeReplied, "reply":
		return DirectionInbound
	}
	return DirectionOther
}
