package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// db model. Line requests are buyer-authored and never mutated on this side.
type RFQLineRequest struct {
	Id            uuid.UUID       `json:"id" db:"id"`
	RfqId         uuid.UUID       `json:"rfqId" db:"rfq_id"`
	ProductName   string          `json:"productName" db:"product_name"`
	Quantity      decimal.Decimal `json:"quantity" db:"quantity"`
	UnitOfMeasure string          `json:"unitOfMeasure" db:"unit_of_measure"`
	Position      int             `json:"position" db:"position"`
}

type Customer struct {
	Name    string `json:"name" db:"customer_name"`
	Country string `json:"country" db:"customer_country"`
}

type Attachment struct {
	Id       uuid.UUID `json:"id" db:"id"`
	FileName string    `json:"fileName" db:"file_name"`
	Url      string    `json:"url" db:"url"`
}

// db model
type RFQ struct {
	Id                    uuid.UUID        `json:"id" db:"id"`
	Title                 string           `json:"title" db:"title"`
	Status                string           `json:"status" db:"status"`
	PurchaseType          string           `json:"purchaseType" db:"purchase_type"`
	PaymentTerms          string           `json:"paymentTerms" db:"payment_terms"`
	DeliveryDate          string           `json:"deliveryDate" db:"delivery_date"`
	Deadline              string           `json:"deadline" db:"deadline"`
	BuyerComments         string           `json:"buyerComments" db:"buyer_comments"`
	RejectionComment      string           `json:"rejectionComment" db:"rejection_comment"`
	QuotationValidityDate string           `json:"quotationValidityDate" db:"quotation_validity_date"`
	Customer              Customer         `json:"customer"`
	Attachments           []Attachment     `json:"attachments"`
	Items                 []RFQLineRequest `json:"items"`
	CreatedAt             string           `json:"createdAt" db:"created_at"`
}

// controller model
type RFQOutputModel struct {
	Id                    string                      `json:"id"`
	Title                 string                      `json:"title"`
	Status                string                      `json:"status"`
	PurchaseType          string                      `json:"purchaseType"`
	PaymentTerms          string                      `json:"paymentTerms"`
	DeliveryDate          string                      `json:"deliveryDate"`
	Deadline              string                      `json:"deadline"`
	BuyerComments         string                      `json:"buyerComments"`
	RejectionComment      string                      `json:"rejectionComment,omitempty"`
	QuotationValidityDate string                      `json:"quotationValidityDate,omitempty"`
	Customer              Customer                    `json:"customer"`
	Attachments           []Attachment                `json:"attachments"`
	Items                 []RFQLineRequestOutputModel `json:"items"`
	CreatedAt             string                      `json:"createdAt"`
}

type RFQLineRequestOutputModel struct {
	Id            string `json:"id"`
	ProductName   string `json:"productName"`
	Quantity      string `json:"quantity"`
	UnitOfMeasure string `json:"unitOfMeasure"`
}
