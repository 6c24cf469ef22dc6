package fx_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nairafund/pledge_lending_app/internal/utils/fx"
)

func TestNewConverter_RejectsNonPositiveRate(t *testing.T) {
	_, err := fx.NewConverter(decimal.Zero)
	assert.Error(t, err)

	_, err = fx.NewConverter(decimal.NewFromInt(-1600))
	assert.Error(t, err)
}

func TestConverter_RoundTrips(t *testing.T) {
	conv, err := fx.NewConverter(fx.DefaultNGNPerUSD)
	require.NoError(t, err)

	tests := []struct {
		ngn     string
		wantUSD string
	}{
		{"300000", "187.5"},
		{"318493", "199.06"},
		{"1600", "1"},
		{"1", "0"}, // below half a cent rounds away
		{"800", "0.5"},
	}
	for _, tt := range tests {
		ngn, err := decimal.NewFromString(tt.ngn)
		require.NoError(t, err)
		want, err := decimal.NewFromString(tt.wantUSD)
		require.NoError(t, err)

		got := conv.NGNToUSD(ngn)
		assert.True(t, got.Equal(want), "NGNToUSD(%s) = %s, want %s", tt.ngn, got, tt.wantUSD)
	}

	// USD back to whole naira.
	assert.True(t, conv.USDToNGN(decimal.RequireFromString("187.5")).Equal(decimal.NewFromInt(300000)))
	assert.True(t, conv.USDToNGN(decimal.RequireFromString("0.01")).Equal(decimal.NewFromInt(16)))
}
