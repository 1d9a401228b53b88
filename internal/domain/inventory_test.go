package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
)

func TestItem_Available(t *testing.T) {
	tests := []struct {
		name     string
		onHand   string
		reserved string
		want     string
	}{
		{"no reservations", "500", "0", "500"},
		{"partially reserved", "500", "450", "50"},
		{"fully reserved", "120", "120", "0"},
		{"fractional quantities", "10.5", "2.25", "8.25"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			item := domain.Item{
				OnHand:   decimal.RequireFromString(tt.onHand),
				Reserved: decimal.RequireFromString(tt.reserved),
			}

			assert.True(t, item.Available().Equal(decimal.RequireFromString(tt.want)),
				"got %v, want %v", item.Available(), tt.want)
		})
	}
}

func TestItem_CanReserve(t *testing.T) {
	item := domain.Item{
		OnHand:   decimal.NewFromInt(500),
		Reserved: decimal.NewFromInt(450),
	}

	assert.True(t, item.CanReserve(decimal.NewFromInt(50)))
	assert.False(t, item.CanReserve(decimal.NewFromInt(51)))
	assert.False(t, item.CanReserve(decimal.Zero))
	assert.False(t, item.CanReserve(decimal.NewFromInt(-10)))
}

func TestItem_CanReserve_IgnoresStaging(t *testing.T) {
	// Staged stock is not available until verified.
	item := domain.Item{
		OnHand:   decimal.NewFromInt(10),
		Reserved: decimal.NewFromInt(10),
		Staging:  decimal.NewFromInt(100),
	}

	assert.False(t, item.CanReserve(decimal.NewFromInt(1)))
}
