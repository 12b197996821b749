package edit

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEscapeEntry(t *testing.T) {
	cases := []struct {
		raw     string
		escaped string
	}{
		{"", ""},
		{"hello", "hello"},
		{"a\nb", `a\nb`},
		{`a\b`, `a\\b`},
		{"a\\\nb", `a\\\nb`},
	}
	for _, c := range cases {
		require.Equal(t, c.escaped, escapeEntry(c.raw))

		got, err := unescapeEntry(c.escaped)
		require.NoError(t, err)
		require.Equal(t, c.raw, got)
	}
}

func TestUnescapeEntryErrors(t *testing.T) {
	_, err := unescapeEntry(`bad\x`)
	require.Error(t, err)

	_, err = unescapeEntry(`trailing\`)
	require.Error(t, err)
}
