package common

// RFQ statuses
const (
	New           = "New"
	Accepted      = "Accepted"
	Rejected      = "Rejected"
	Submitted     = "Submitted"
	Draft         = "Draft"
	RecallPending = "RecallPending"
)

// Proposal-only status
const (
	Recalled = "Recalled"
)

// Discount types
const (
	DiscountPercentage = "percentage"
	DiscountFixed      = "fixed"
)

// VAT percentage applied to seeded line items when the caller passes none.
const DefaultVatPercentage = 10
