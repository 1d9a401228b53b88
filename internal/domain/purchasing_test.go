package domain_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/RoyAPena/HeuristicLogix-sub003/internal/domain"
)

func TestPurchaseOrderLine_Outstanding(t *testing.T) {
	line := domain.PurchaseOrderLine{
		QtyOrdered:  decimal.NewFromInt(100),
		QtyReceived: decimal.NewFromInt(40),
	}

	assert.True(t, line.Outstanding().Equal(decimal.NewFromInt(60)))
}

func TestPurchaseOrder_CanReceive(t *testing.T) {
	tests := []struct {
		status domain.PurchaseOrderStatus
		want   bool
	}{
		{domain.POStatusDraft, false},
		{domain.POStatusSubmitted, true},
		{domain.POStatusPartiallyReceived, true},
		{domain.POStatusReceived, false},
		{domain.POStatusCancelled, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			po := domain.PurchaseOrder{Status: tt.status}
			assert.Equal(t, tt.want, po.CanReceive())
		})
	}
}

func TestPurchaseOrder_FullyReceived(t *testing.T) {
	po := domain.PurchaseOrder{
		Lines: []domain.PurchaseOrderLine{
			{QtyOrdered: decimal.NewFromInt(10), QtyReceived: decimal.NewFromInt(10)},
			{QtyOrdered: decimal.NewFromInt(5), QtyReceived: decimal.NewFromInt(2)},
		},
	}
	assert.False(t, po.FullyReceived())

	po.Lines[1].QtyReceived = decimal.NewFromInt(5)
	assert.True(t, po.FullyReceived())

	empty := domain.PurchaseOrder{}
	assert.False(t, empty.FullyReceived())
}
