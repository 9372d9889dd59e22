package quoting

import (
	"quotation-management-api/internal/common"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// LineTotals is the layered result of pricing one line item.
type LineTotals struct {
	TotalBeforeDiscount decimal.Decimal
	TotalAfterDiscount  decimal.Decimal
	TotalIncludingVAT   decimal.Decimal
}

// ComputeLineTotals prices a single line item:
//
//	before = quantity * unitPrice
//	after  = before - discount (percentage of before, or a fixed amount)
//	total  = after + after * vat / 100
//
// A fixed discount larger than the line total is not clamped, so the
// after-discount total can go negative. Unknown discount types apply no
// discount.
func ComputeLineTotals(quantity, unitPrice decimal.Decimal, discountType string, discountValue, vatPercentage decimal.Decimal) LineTotals {
	before := quantity.Mul(unitPrice)

	var discount decimal.Decimal
	switch discountType {
	case common.DiscountPercentage:
		discount = before.Mul(discountValue).Div(hundred)
	case common.DiscountFixed:
		discount = discountValue
	}

	after := before.Sub(discount)
	vat := after.Mul(vatPercentage).Div(hundred)

	return LineTotals{
		TotalBeforeDiscount: before,
		TotalAfterDiscount:  after,
		TotalIncludingVAT:   after.Add(vat),
	}
}
