package quoting

import (
	"quotation-management-api/internal/entity"

	"github.com/shopspring/decimal"
)

// ProposalTotals is the proposal-level financial summary rolled up from the
// line items.
type ProposalTotals struct {
	Subtotal       decimal.Decimal
	TotalDiscounts decimal.Decimal
	TotalVAT       decimal.Decimal
	FinalTotal     decimal.Decimal
}

// AggregateTotals recomputes the summary from scratch. Totals are never
// patched incrementally; a full recompute after every save is cheap at these
// item counts and cannot drift from the underlying items.
func AggregateTotals(items []entity.ProposalLineItem, includeShipment bool, shipmentCharge decimal.Decimal) ProposalTotals {
	totals := ProposalTotals{
		Subtotal:       decimal.Zero,
		TotalDiscounts: decimal.Zero,
		TotalVAT:       decimal.Zero,
		FinalTotal:     decimal.Zero,
	}

	for i := range items {
		item := &items[i]
		totals.Subtotal = totals.Subtotal.Add(item.TotalBeforeDiscount)
		totals.TotalDiscounts = totals.TotalDiscounts.Add(item.TotalBeforeDiscount.Sub(item.TotalAfterDiscount))
		totals.TotalVAT = totals.TotalVAT.Add(item.TotalIncludingVAT.Sub(item.TotalAfterDiscount))
		totals.FinalTotal = totals.FinalTotal.Add(item.TotalIncludingVAT)
	}

	if includeShipment {
		totals.FinalTotal = totals.FinalTotal.Add(shipmentCharge)
	}

	return totals
}

// ApplyTotals recomputes the proposal's aggregate fields in place from its
// items and shipment charge.
func ApplyTotals(p *entity.Proposal) {
	totals := AggregateTotals(p.Items, p.IncludeShipment, p.ShipmentCharge)
	p.Subtotal = totals.Subtotal
	p.TotalDiscounts = totals.TotalDiscounts
	p.TotalVAT = totals.TotalVAT
	p.FinalTotal = totals.FinalTotal
}
