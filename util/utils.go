package util

import (
	"strings"
)

func StrNotSet(value string) bool {
	return len(strings.TrimSpace(value)) == 0
}

// ReplaceNewlines flattens a field so it stays on one CSV line.
func ReplaceNewlines(value string) string {
	value = strings.ReplaceAll(value, "\r\n", "\n")
	return strings.ReplaceAll(value, "\n", "; ")
}

// ShortenAddress returns the last 5 characters of an address.
func ShortenAddress(address string) string {
	if len(address) <= 5 {
		return address
	}
	return address[len(address)-5:]
}
