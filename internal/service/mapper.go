package service

import (
	"quotation-management-api/internal/entity"
	"quotation-management-api/internal/quoting"
)

func mapRFQ(r *entity.RFQ) *entity.RFQOutputModel {
	items := make([]entity.RFQLineRequestOutputModel, 0, len(r.Items))
	for i := range r.Items {
		items = append(items, mapLineRequest(&r.Items[i]))
	}

	attachments := r.Attachments
	if attachments == nil {
		attachments = make([]entity.Attachment, 0)
	}

	return &entity.RFQOutputModel{
		Id:                    r.Id.String(),
		Title:                 r.Title,
		Status:                r.Status,
		PurchaseType:          r.PurchaseType,
		PaymentTerms:          r.PaymentTerms,
		DeliveryDate:          r.DeliveryDate,
		Deadline:              r.Deadline,
		BuyerComments:         r.BuyerComments,
		RejectionComment:      r.RejectionComment,
		QuotationValidityDate: r.QuotationValidityDate,
		Customer:              r.Customer,
		Attachments:           attachments,
		Items:                 items,
		CreatedAt:             r.CreatedAt,
	}
}

func mapRFQs(rfqs []entity.RFQ) []entity.RFQOutputModel {
	s := make([]entity.RFQOutputModel, 0, len(rfqs))
	for i := range rfqs {
		s = append(s, *mapRFQ(&rfqs[i]))
	}

	return s
}

func mapLineRequest(req *entity.RFQLineRequest) entity.RFQLineRequestOutputModel {
	return entity.RFQLineRequestOutputModel{
		Id:            req.Id.String(),
		ProductName:   req.ProductName,
		Quantity:      req.Quantity.String(),
		UnitOfMeasure: req.UnitOfMeasure,
	}
}

func mapLineItem(item *entity.ProposalLineItem) entity.ProposalLineItemOutputModel {
	return entity.ProposalLineItemOutputModel{
		Id:                  item.Id.String(),
		RfqItemId:           item.RfqItemId.String(),
		ProductName:         item.ProductName,
		Brand:               item.Brand,
		Origin:              item.Origin,
		Packaging:           item.Packaging,
		Sku:                 item.Sku,
		UnitOfMeasure:       item.UnitOfMeasure,
		Quantity:            item.Quantity.String(),
		UnitPrice:           item.UnitPrice.StringFixed(2),
		DiscountType:        item.DiscountType,
		DiscountValue:       item.DiscountValue.String(),
		VatPercentage:       item.VatPercentage.String(),
		TotalBeforeDiscount: item.TotalBeforeDiscount.StringFixed(2),
		TotalAfterDiscount:  item.TotalAfterDiscount.StringFixed(2),
		TotalIncludingVAT:   item.TotalIncludingVAT.StringFixed(2),
		Quoted:              item.Quoted(),
	}
}

func mapProposal(p *entity.Proposal) *entity.ProposalOutputModel {
	items := make([]entity.ProposalLineItemOutputModel, 0, len(p.Items))
	for i := range p.Items {
		items = append(items, mapLineItem(&p.Items[i]))
	}

	return &entity.ProposalOutputModel{
		Id:                    p.Id.String(),
		RfqId:                 p.RfqId.String(),
		QuotationNumber:       p.QuotationNumber,
		Status:                p.Status,
		Currency:              p.Currency,
		PaymentTerms:          p.PaymentTerms,
		ShipmentMethod:        p.ShipmentMethod,
		IncludeShipment:       p.IncludeShipment,
		ShipmentCharge:        p.ShipmentCharge.StringFixed(2),
		Items:                 items,
		Subtotal:              p.Subtotal.StringFixed(2),
		TotalDiscounts:        p.TotalDiscounts.StringFixed(2),
		TotalVAT:              p.TotalVAT.StringFixed(2),
		FinalTotal:            p.FinalTotal.StringFixed(2),
		QuotationValidityDate: p.QuotationValidityDate,
		TermsAndConditions:    p.TermsAndConditions,
		AdditionalBenefits:    p.AdditionalBenefits,
		CreatedAt:             p.CreatedAt,
		SubmittedAt:           p.SubmittedAt,
	}
}

func mapStep(step quoting.Step) *entity.QuotingStepOutputModel {
	return &entity.QuotingStepOutputModel{
		Position:   step.Position,
		TotalItems: step.TotalItems,
		HasNext:    step.HasNext,
		HasPrev:    step.HasPrev,
		Request:    mapLineRequest(&step.Request),
		Item:       mapLineItem(&step.Item),
	}
}
