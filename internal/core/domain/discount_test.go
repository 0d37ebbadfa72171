package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPriceFromPercentage(t *testing.T) {
	tests := []struct {
		name          string
		originalPrice int64
		percentage    int
		want          int64
	}{
		{"twenty percent off", 100000, 20, 80000},
		{"thirty percent off", 100000, 30, 70000},
		{"full discount", 100000, 100, 0},
		{"no discount", 100000, 0, 100000},
		{"rounds half up", 999, 33, 669}, // 999*0.67 = 669.33
		{"one unit price", 1, 50, 1},     // 0.5 rounds up
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PriceFromPercentage(tt.originalPrice, tt.percentage)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestPriceFromPercentageRejectsBadInput(t *testing.T) {
	var verr *ValidationError

	_, err := PriceFromPercentage(0, 20)
	require.ErrorAs(t, err, &verr)

	_, err = PriceFromPercentage(-5, 20)
	require.ErrorAs(t, err, &verr)

	_, err = PriceFromPercentage(100, -1)
	require.ErrorAs(t, err, &verr)

	_, err = PriceFromPercentage(100, 101)
	require.ErrorAs(t, err, &verr)
}

func TestPercentageFromPrice(t *testing.T) {
	tests := []struct {
		name          string
		originalPrice int64
		discountPrice int64
		want          int
	}{
		{"thirty percent", 100000, 70000, 30},
		{"twenty percent", 100000, 80000, 20},
		{"free", 100000, 0, 100},
		{"no discount", 100000, 100000, 0},
		{"clamps above original", 100000, 150000, 0},
		{"clamps below zero", 100000, -50, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PercentageFromPrice(tt.originalPrice, tt.discountPrice)
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}

	var verr *ValidationError
	_, err := PercentageFromPrice(0, 0)
	require.ErrorAs(t, err, &verr)
}

// TestDiscountRoundTrip checks percentage -> price -> percentage
// reproduces the input within +-1 across a spread of prices.
func TestDiscountRoundTrip(t *testing.T) {
	// Below ~50 minor units one price unit is worth more than one
	// percent, so the +-1 guarantee only holds from there up.
	prices := []int64{99, 1000, 12345, 100000, 999999999}
	for _, price := range prices {
		for pct := 1; pct <= 100; pct++ {
			discounted, err := PriceFromPercentage(price, pct)
			require.NoError(t, err)
			require.GreaterOrEqual(t, discounted, int64(0))
			require.LessOrEqual(t, discounted, price)

			back, err := PercentageFromPrice(price, discounted)
			require.NoError(t, err)
			require.InDelta(t, pct, back, 1, "price=%d pct=%d", price, pct)
		}
	}
}
