package game

import "strings"

// NormalizeName trims and lowercases user- and room-name input so that
// "Alice", " alice " and "ALICE" all key the same records.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
