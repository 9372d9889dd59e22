package quoting

import (
	"testing"

	"quotation-management-api/internal/common"

	"github.com/shopspring/decimal"
)

func dec(value string) decimal.Decimal {
	return decimal.RequireFromString(value)
}

func TestComputeLineTotals(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		quantity      string
		unitPrice     string
		discountType  string
		discountValue string
		vatPercentage string
		wantBefore    string
		wantAfter     string
		wantTotal     string
	}{
		{
			name:     "percentage discount with vat",
			quantity: "500", unitPrice: "2.00",
			discountType: common.DiscountPercentage, discountValue: "10",
			vatPercentage: "10",
			wantBefore:    "1000.00", wantAfter: "900.00", wantTotal: "990.00",
		},
		{
			name:     "fixed discount with vat",
			quantity: "10", unitPrice: "20.00",
			discountType: common.DiscountFixed, discountValue: "50",
			vatPercentage: "5",
			wantBefore:    "200.00", wantAfter: "150.00", wantTotal: "157.50",
		},
		{
			name:     "unpriced item stays zero",
			quantity: "3", unitPrice: "0",
			discountType: common.DiscountPercentage, discountValue: "0",
			vatPercentage: "10",
			wantBefore:    "0", wantAfter: "0", wantTotal: "0",
		},
		{
			name:     "no discount no vat",
			quantity: "7", unitPrice: "3.50",
			discountType: common.DiscountPercentage, discountValue: "0",
			vatPercentage: "0",
			wantBefore:    "24.50", wantAfter: "24.50", wantTotal: "24.50",
		},
		{
			name:     "fixed discount exceeding the line total is not clamped",
			quantity: "1", unitPrice: "10.00",
			discountType: common.DiscountFixed, discountValue: "25",
			vatPercentage: "0",
			wantBefore:    "10.00", wantAfter: "-15.00", wantTotal: "-15.00",
		},
		{
			name:     "fractional quantity",
			quantity: "2.5", unitPrice: "4.00",
			discountType: common.DiscountPercentage, discountValue: "50",
			vatPercentage: "20",
			wantBefore:    "10.00", wantAfter: "5.00", wantTotal: "6.00",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ComputeLineTotals(dec(tt.quantity), dec(tt.unitPrice), tt.discountType, dec(tt.discountValue), dec(tt.vatPercentage))
			if !got.TotalBeforeDiscount.Equal(dec(tt.wantBefore)) {
				t.Fatalf("before: expected %s, got %s", tt.wantBefore, got.TotalBeforeDiscount)
			}
			if !got.TotalAfterDiscount.Equal(dec(tt.wantAfter)) {
				t.Fatalf("after: expected %s, got %s", tt.wantAfter, got.TotalAfterDiscount)
			}
			if !got.TotalIncludingVAT.Equal(dec(tt.wantTotal)) {
				t.Fatalf("total: expected %s, got %s", tt.wantTotal, got.TotalIncludingVAT)
			}
		})
	}
}

func TestComputeLineTotalsIsPure(t *testing.T) {
	t.Parallel()
	first := ComputeLineTotals(dec("500"), dec("2.00"), common.DiscountPercentage, dec("10"), dec("10"))
	for i := 0; i < 100; i++ {
		again := ComputeLineTotals(dec("500"), dec("2.00"), common.DiscountPercentage, dec("10"), dec("10"))
		if !again.TotalBeforeDiscount.Equal(first.TotalBeforeDiscount) ||
			!again.TotalAfterDiscount.Equal(first.TotalAfterDiscount) ||
			!again.TotalIncludingVAT.Equal(first.TotalIncludingVAT) {
			t.Fatalf("call %d returned different totals: %+v vs %+v", i, again, first)
		}
	}
}

func TestComputeLineTotalsUnknownDiscountType(t *testing.T) {
	t.Parallel()
	got := ComputeLineTotals(dec("4"), dec("5"), "rebate", dec("10"), dec("0"))
	if !got.TotalAfterDiscount.Equal(dec("20")) {
		t.Fatalf("expected no discount for unknown type, got %s", got.TotalAfterDiscount)
	}
}
