package quoting

import (
	"errors"

	"quotation-management-api/internal/common"
	"quotation-management-api/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrUnknownRfqItem = errors.New("no line item quotes the given rfq item")
	ErrItemCountDrift = errors.New("proposal item count doesn't match rfq item count")
)

// LineItemStore owns the ordered proposal line items for one RFQ. Items stay
// 1:1 with the RFQ line requests, in request order; nothing is ever added or
// removed independently. Save is the only write path and always reprices the
// item first.
type LineItemStore struct {
	requests []entity.RFQLineRequest
	items    []entity.ProposalLineItem
}

// SeedLineItems builds the eager one-per-request working copies for a
// proposal that is just starting: quantity and product name copied from the
// request, unit price zero ("unpriced"), percentage discount of zero, and the
// given default VAT.
func SeedLineItems(rfq *entity.RFQ, proposalId uuid.UUID, defaultVat decimal.Decimal) []entity.ProposalLineItem {
	items := make([]entity.ProposalLineItem, 0, len(rfq.Items))
	for i, req := range rfq.Items {
		item := entity.ProposalLineItem{
			Id:            uuid.New(),
			ProposalId:    proposalId,
			RfqItemId:     req.Id,
			ProductName:   req.ProductName,
			UnitOfMeasure: req.UnitOfMeasure,
			Quantity:      req.Quantity,
			UnitPrice:     decimal.Zero,
			DiscountType:  common.DiscountPercentage,
			DiscountValue: decimal.Zero,
			VatPercentage: defaultVat,
			Position:      i,
		}
		applyLineTotals(&item)
		items = append(items, item)
	}

	return items
}

// NewLineItemStore pairs an RFQ's line requests with the proposal's existing
// items. Items are matched to requests by rfq item id and kept in request
// order.
func NewLineItemStore(rfq *entity.RFQ, items []entity.ProposalLineItem) (*LineItemStore, error) {
	if len(items) != len(rfq.Items) {
		return nil, ErrItemCountDrift
	}

	byRfqItem := make(map[uuid.UUID]entity.ProposalLineItem, len(items))
	for _, item := range items {
		byRfqItem[item.RfqItemId] = item
	}

	ordered := make([]entity.ProposalLineItem, 0, len(rfq.Items))
	for _, req := range rfq.Items {
		item, ok := byRfqItem[req.Id]
		if !ok {
			return nil, ErrItemCountDrift
		}
		ordered = append(ordered, item)
	}

	return &LineItemStore{requests: rfq.Items, items: ordered}, nil
}

func (s *LineItemStore) Len() int {
	return len(s.items)
}

// At returns the request/item pair at the given index.
func (s *LineItemStore) At(index int) (entity.RFQLineRequest, entity.ProposalLineItem, error) {
	if index < 0 || index >= len(s.items) {
		return entity.RFQLineRequest{}, entity.ProposalLineItem{}, ErrOutOfBounds
	}

	return s.requests[index], s.items[index], nil
}

// Save reprices the given item and writes it at the position quoting its rfq
// item. Identity fields (id, proposal id, position, unit of measure) are kept
// from the stored copy so a caller can't move an item or detach it from its
// request.
func (s *LineItemStore) Save(item entity.ProposalLineItem) (entity.ProposalLineItem, error) {
	index := -1
	for i := range s.items {
		if s.items[i].RfqItemId == item.RfqItemId {
			index = i
			break
		}
	}
	if index == -1 {
		return entity.ProposalLineItem{}, ErrUnknownRfqItem
	}

	current := s.items[index]
	item.Id = current.Id
	item.ProposalId = current.ProposalId
	item.Position = current.Position
	if item.UnitOfMeasure == "" {
		item.UnitOfMeasure = current.UnitOfMeasure
	}
	applyLineTotals(&item)

	s.items[index] = item

	return item, nil
}

// Items returns a copy of the ordered line items.
func (s *LineItemStore) Items() []entity.ProposalLineItem {
	items := make([]entity.ProposalLineItem, len(s.items))
	copy(items, s.items)

	return items
}

func applyLineTotals(item *entity.ProposalLineItem) {
	totals := ComputeLineTotals(item.Quantity, item.UnitPrice, item.DiscountType, item.DiscountValue, item.VatPercentage)
	item.TotalBeforeDiscount = totals.TotalBeforeDiscount
	item.TotalAfterDiscount = totals.TotalAfterDiscount
	item.TotalIncludingVAT = totals.TotalIncludingVAT
}
