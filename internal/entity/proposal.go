package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model. The three Total* fields are derived by the pricing pipeline and
// are never written directly.
type ProposalLineItem struct {
	Id                  uuid.UUID       `json:"id" db:"id"`
	ProposalId          uuid.UUID       `json:"proposalId" db:"proposal_id"`
	RfqItemId           uuid.UUID       `json:"rfqItemId" db:"rfq_item_id"`
	ProductName         string          `json:"productName" db:"product_name"`
	Brand               string          `json:"brand" db:"brand"`
	Origin              string          `json:"origin" db:"origin"`
	Packaging           string          `json:"packaging" db:"packaging"`
	Sku                 string          `json:"sku" db:"sku"`
	UnitOfMeasure       string          `json:"unitOfMeasure" db:"unit_of_measure"`
	Quantity            decimal.Decimal `json:"quantity" db:"quantity"`
	UnitPrice           decimal.Decimal `json:"unitPrice" db:"unit_price"`
	DiscountType        string          `json:"discountType" db:"discount_type"`
	DiscountValue       decimal.Decimal `json:"discountValue" db:"discount_value"`
	VatPercentage       decimal.Decimal `json:"vatPercentage" db:"vat_percentage"`
	TotalBeforeDiscount decimal.Decimal `json:"totalBeforeDiscount" db:"total_before_discount"`
	TotalAfterDiscount  decimal.Decimal `json:"totalAfterDiscount" db:"total_after_discount"`
	TotalIncludingVAT   decimal.Decimal `json:"totalIncludingVAT" db:"total_including_vat"`
	Position            int             `json:"position" db:"position"`
}

// Quoted reports whether the seller has priced this item. There is no stored
// flag; a zero unit price means "unpriced".
func (li *ProposalLineItem) Quoted() bool {
	return li.UnitPrice.IsPositive()
}

// db model. Subtotal, TotalDiscounts, TotalVAT and FinalTotal are derived from
// the line items plus the shipment charge and recomputed on every change.
type Proposal struct {
	Id                    uuid.UUID          `json:"id" db:"id"`
	RfqId                 uuid.UUID          `json:"rfqId" db:"rfq_id"`
	QuotationNumber       string             `json:"quotationNumber" db:"quotation_number"`
	Status                string             `json:"status" db:"status"`
	Currency              string             `json:"currency" db:"currency"`
	PaymentTerms          string             `json:"paymentTerms" db:"payment_terms"`
	ShipmentMethod        string             `json:"shipmentMethod" db:"shipment_method"`
	IncludeShipment       bool               `json:"includeShipment" db:"include_shipment"`
	ShipmentCharge        decimal.Decimal    `json:"shipmentCharge" db:"shipment_charge"`
	Items                 []ProposalLineItem `json:"items"`
	Subtotal              decimal.Decimal    `json:"subtotal" db:"subtotal"`
	TotalDiscounts        decimal.Decimal    `json:"totalDiscounts" db:"total_discounts"`
	TotalVAT              decimal.Decimal    `json:"totalVAT" db:"total_vat"`
	FinalTotal            decimal.Decimal    `json:"finalTotal" db:"final_total"`
	QuotationValidityDate string             `json:"quotationValidityDate" db:"quotation_validity_date"`
	TermsAndConditions    string             `json:"termsAndConditions" db:"terms_and_conditions"`
	AdditionalBenefits    string             `json:"additionalBenefits" db:"additional_benefits"`
	Version               int                `json:"version" db:"version"`
	CreatedAt             string             `json:"createdAt" db:"created_at"`
	SubmittedAt           string             `json:"submittedAt" db:"submitted_at"`
}

// service + repo input model
type BeginQuotingInput struct {
	RfqId                string // given
	Currency             string // given
	DefaultVatPercentage string // optional, falls back to the configured default
	// Status should be set: "Draft"
	// Items are seeded from the RFQ line requests
	// Id UUID and QuotationNumber set automatically
}

// service + repo input model; all fields are seller-editable
type SaveLineItemInput struct {
	RfqItemId     string
	ProductName   string
	Brand         string
	Origin        string
	Packaging     string
	Sku           string
	Quantity      string
	UnitPrice     string
	DiscountType  string
	DiscountValue string
	VatPercentage string
}

// service input model
type UpdateProposalDetailsInput struct {
	PaymentTerms       string
	ShipmentMethod     string
	TermsAndConditions string
	AdditionalBenefits string
}

// controller model
type ProposalLineItemOutputModel struct {
	Id                  string `json:"id"`
	RfqItemId           string `json:"rfqItemId"`
	ProductName         string `json:"productName"`
	Brand               string `json:"brand"`
	Origin              string `json:"origin"`
	Packaging           string `json:"packaging"`
	Sku                 string `json:"sku"`
	UnitOfMeasure       string `json:"unitOfMeasure"`
	Quantity            string `json:"quantity"`
	UnitPrice           string `json:"unitPrice"`
	DiscountType        string `json:"discountType"`
	DiscountValue       string `json:"discountValue"`
	VatPercentage       string `json:"vatPercentage"`
	TotalBeforeDiscount string `json:"totalBeforeDiscount"`
	TotalAfterDiscount  string `json:"totalAfterDiscount"`
	TotalIncludingVAT   string `json:"totalIncludingVAT"`
	Quoted              bool   `json:"quoted"`
}

// controller model
type ProposalOutputModel struct {
	Id                    string                        `json:"id"`
	RfqId                 string                        `json:"rfqId"`
	QuotationNumber       string                        `json:"quotationNumber"`
	Status                string                        `json:"status"`
	Currency              string                        `json:"currency"`
	PaymentTerms          string                        `json:"paymentTerms"`
	ShipmentMethod        string                        `json:"shipmentMethod"`
	IncludeShipment       bool                          `json:"includeShipment"`
	ShipmentCharge        string                        `json:"shipmentCharge"`
	Items                 []ProposalLineItemOutputModel `json:"items"`
	Subtotal              string                        `json:"subtotal"`
	TotalDiscounts        string                        `json:"totalDiscounts"`
	TotalVAT              string                        `json:"totalVAT"`
	FinalTotal            string                        `json:"finalTotal"`
	QuotationValidityDate string                        `json:"quotationValidityDate"`
	TermsAndConditions    string                        `json:"termsAndConditions"`
	AdditionalBenefits    string                        `json:"additionalBenefits"`
	CreatedAt             string                        `json:"createdAt"`
	SubmittedAt           string                        `json:"submittedAt,omitempty"`
}

// controller model for the quoting wizard: the request being quoted and the
// seller's working copy at the cursor.
type QuotingStepOutputModel struct {
	Position   int                         `json:"position"`
	TotalItems int                         `json:"totalItems"`
	HasNext    bool                        `json:"hasNext"`
	HasPrev    bool                        `json:"hasPrev"`
	Request    RFQLineRequestOutputModel   `json:"request"`
	Item       ProposalLineItemOutputModel `json:"item"`
}
