package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrNotSet(t *testing.T) {
	assert.True(t, StrNotSet(""))
	assert.True(t, StrNotSet("   "))
	assert.False(t, StrNotSet("thor1abc"))
}

func TestReplaceNewlines(t *testing.T) {
	assert.Equal(t, "line 1; line 2; line 3", ReplaceNewlines("line 1\nline 2\r\nline 3"))
	assert.Equal(t, "no newline", ReplaceNewlines("no newline"))
}

func TestShortenAddress(t *testing.T) {
	assert.Equal(t, "11111", ShortenAddress("thor1-user-wallet-11111"))
	assert.Equal(t, "abc", ShortenAddress("abc"))
}
