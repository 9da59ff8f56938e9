package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNewAccountIsZeroed(t *testing.T) {
	a := NewAccount(1)
	assert.Equal(t, uint16(1), a.Client)
	assert.True(t, a.Available.IsZero())
	assert.True(t, a.Held.IsZero())
	assert.False(t, a.Locked)
}

func TestTotalEqualsAvailablePlusHeld(t *testing.T) {
	a := &Account{
		Client:    1,
		Available: decimal.NewFromInt(10),
		Held:      decimal.NewFromInt(5),
	}
	assert.True(t, a.Total().Equal(decimal.NewFromInt(15)))
}

func TestSnapshotFormatsFourDecimalPlaces(t *testing.T) {
	a := &Account{
		Client:    1,
		Available: decimal.RequireFromString("1.5"),
		Held:      decimal.Zero,
	}
	s := NewSnapshot(a)
	assert.Equal(t, "1.5000", s.Available)
	assert.Equal(t, "0.0000", s.Held)
	assert.Equal(t, "1.5000", s.Total)
	assert.False(t, s.Locked)
}

func TestSnapshotRoundNumbersAndLock(t *testing.T) {
	a := &Account{
		Client:    2,
		Available: decimal.NewFromInt(3),
		Held:      decimal.NewFromInt(2),
		Locked:    true,
	}
	s := NewSnapshot(a)
	assert.Equal(t, uint16(2), s.Client)
	assert.Equal(t, "3.0000", s.Available)
	assert.Equal(t, "2.0000", s.Held)
	assert.Equal(t, "5.0000", s.Total)
	assert.True(t, s.Locked)
}

func TestSnapshotNegativeAvailable(t *testing.T) {
	a := &Account{
		Client:    1,
		Available: decimal.RequireFromString("-40"),
		Held:      decimal.NewFromInt(100),
	}
	s := NewSnapshot(a)
	assert.Equal(t, "-40.0000", s.Available)
	assert.Equal(t, "60.0000", s.Total)
}
