package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStockStatusBands(t *testing.T) {
	tests := []struct {
		name     string
		quantity int
		min      int
		want     string
	}{
		{"zero stock", 0, 10, StockLow},
		{"below minimum", 5, 10, StockLow},
		{"exactly minimum", 10, 10, StockLow},
		{"just above minimum", 11, 10, StockMedium},
		{"exactly double minimum", 20, 10, StockMedium},
		{"above double minimum", 21, 10, StockAdequate},
		{"well stocked", 100, 10, StockAdequate},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Product{Quantity: tc.quantity, MinQuantity: tc.min}
			assert.Equal(t, tc.want, p.StockStatus())
		})
	}
}
