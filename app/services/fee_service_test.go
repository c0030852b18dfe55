package services

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sumOf(shares []decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, s := range shares {
		total = total.Add(s)
	}
	return total
}

func TestSplitByPermillageEvenShares(t *testing.T) {
	shares := SplitByPermillage(d("1000.00"), []int64{250, 250, 250, 250})

	require.Len(t, shares, 4)
	for _, s := range shares {
		assert.True(t, s.Equal(d("250.00")), "got %s", s)
	}
}

func TestSplitByPermillageSumsExactly(t *testing.T) {
	cases := []struct {
		name        string
		total       string
		permillages []int64
	}{
		{"thirds", "100.00", []int64{333, 333, 334}},
		{"uneven", "733.37", []int64{120, 95, 310, 475}},
		{"registry short of 1000", "500.00", []int64{300, 300, 300}},
		{"single fraction", "42.01", []int64{1000}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			shares := SplitByPermillage(d(tc.total), tc.permillages)
			require.Len(t, shares, len(tc.permillages))
			assert.True(t, sumOf(shares).Equal(d(tc.total)), "shares sum to %s, want %s", sumOf(shares), tc.total)
		})
	}
}

func TestSplitByPermillageLeftoverCentsGoToLargestRemainders(t *testing.T) {
	// 100.00 over [1, 1, 1]: each exact share is 33.333..., two floored
	// shares get the leftover cents.
	shares := SplitByPermillage(d("100.00"), []int64{1, 1, 1})

	require.Len(t, shares, 3)
	assert.True(t, sumOf(shares).Equal(d("100.00")))
	for _, s := range shares {
		assert.True(t, s.Equal(d("33.33")) || s.Equal(d("33.34")), "got %s", s)
	}
}

func TestSplitByPermillageProportional(t *testing.T) {
	shares := SplitByPermillage(d("1000.00"), []int64{600, 400})

	require.Len(t, shares, 2)
	assert.True(t, shares[0].Equal(d("600.00")))
	assert.True(t, shares[1].Equal(d("400.00")))
}

func TestSplitByPermillageDegenerateInputs(t *testing.T) {
	assert.Empty(t, SplitByPermillage(d("100.00"), nil))

	zeroed := SplitByPermillage(d("100.00"), []int64{0, 0})
	require.Len(t, zeroed, 2)
	assert.True(t, zeroed[0].IsZero())
	assert.True(t, zeroed[1].IsZero())
}
