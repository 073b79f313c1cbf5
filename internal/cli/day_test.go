package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanonicalDay(t *testing.T) {
	cases := map[string]string{
		"Monday":   "Monday",
		"monday":   "Monday",
		"MON":      "Monday",
		"wed":      "Wednesday",
		" friday ": "Friday",
		"Saturday": "Saturday",
	}
	for input, want := range cases {
		got, err := canonicalDay(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got)
	}

	_, err := canonicalDay("someday")
	assert.Error(t, err)
	_, err = canonicalDay("")
	assert.Error(t, err)
}
