package request_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/api/handler/v1/request"
)

func TestStockOperationRequest_Validate(t *testing.T) {
	tests := []struct {
		name     string
		quantity string
		wantErr  bool
	}{
		{"integer quantity", "450", false},
		{"fractional quantity", "2.25", false},
		{"zero", "0", true},
		{"negative", "-10", true},
		{"not a number", "lots", true},
		{"empty", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := request.StockOperationRequest{Quantity: tt.quantity}

			err := req.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCreateItemRequest_Validate(t *testing.T) {
	valid := request.CreateItemRequest{
		SKU:        "CEM-42.5-BAG",
		Name:       "Portland cement 42.5 50kg bag",
		CategoryID: 1,
		BaseUnitID: 2,
		UnitCost:   "8.50",
	}
	assert.NoError(t, valid.Validate())

	negativeCost := valid
	negativeCost.UnitCost = "-1"
	assert.Error(t, negativeCost.Validate())

	missingCategory := valid
	missingCategory.CategoryID = 0
	assert.Error(t, missingCategory.Validate())
}

func TestCheckAvailabilityRequest_Validate(t *testing.T) {
	empty := request.CheckAvailabilityRequest{}
	assert.Error(t, empty.Validate())

	ok := request.CheckAvailabilityRequest{
		Materials: []request.MaterialLineRequest{
			{SKU: "CEM-42.5-BAG", Quantity: "40"},
		},
	}
	assert.NoError(t, ok.Validate())

	bad := request.CheckAvailabilityRequest{
		Materials: []request.MaterialLineRequest{
			{SKU: "CEM-42.5-BAG", Quantity: "-40"},
		},
	}
	assert.Error(t, bad.Validate())
}
