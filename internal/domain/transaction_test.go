package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseType(t *testing.T) {
	for _, s := range []string{"deposit", "withdrawal", "dispute", "resolve", "chargeback"} {
		typ, err := ParseType(s)
		require.NoError(t, err)
		assert.Equal(t, Type(s), typ)
	}
}

func TestParseTypeRejectsUnknown(t *testing.T) {
	for _, s := range []string{"", "Deposit", "transfer", "refund"} {
		_, err := ParseType(s)
		assert.Error(t, err, "input %q", s)
	}
}
