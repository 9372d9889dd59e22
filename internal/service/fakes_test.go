package service

import (
	"context"

	"quotation-management-api/internal/common"
	"quotation-management-api/internal/entity"
	"quotation-management-api/internal/notify"
	"quotation-management-api/internal/repo/repo_errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// fakeRepo is an in-memory stand-in for both repo interfaces. It mirrors the
// pgdb contract: not-found and version-conflict errors, copies on read so the
// services can't reach stored state through aliasing.
type fakeRepo struct {
	rfqs      map[string]*entity.RFQ
	proposals map[string]*entity.Proposal
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		rfqs:      make(map[string]*entity.RFQ),
		proposals: make(map[string]*entity.Proposal),
	}
}

func (f *fakeRepo) putRFQ(rfq *entity.RFQ) {
	f.rfqs[rfq.Id.String()] = copyRFQ(rfq)
}

func copyRFQ(rfq *entity.RFQ) *entity.RFQ {
	out := *rfq
	out.Items = append([]entity.RFQLineRequest(nil), rfq.Items...)

	return &out
}

func copyProposal(p *entity.Proposal) *entity.Proposal {
	out := *p
	out.Items = append([]entity.ProposalLineItem(nil), p.Items...)

	return &out
}

func (f *fakeRepo) GetRFQById(ctx context.Context, id string) (*entity.RFQ, error) {
	rfq, ok := f.rfqs[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return copyRFQ(rfq), nil
}

func (f *fakeRepo) GetRFQs(ctx context.Context, statuses []string, pg *entity.PaginationInput) ([]entity.RFQ, error) {
	var out []entity.RFQ
	for _, rfq := range f.rfqs {
		if len(statuses) > 0 {
			matched := false
			for _, status := range statuses {
				if rfq.Status == status {
					matched = true
					break
				}
			}
			if !matched {
				continue
			}
		}
		out = append(out, *copyRFQ(rfq))
	}

	return out, nil
}

func (f *fakeRepo) UpdateRFQAccepted(ctx context.Context, id string, quotationValidityDate string) error {
	rfq, ok := f.rfqs[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	rfq.Status = common.Accepted
	rfq.QuotationValidityDate = quotationValidityDate

	return nil
}

func (f *fakeRepo) UpdateRFQRejected(ctx context.Context, id string, rejectionComment string) error {
	rfq, ok := f.rfqs[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	rfq.Status = common.Rejected
	rfq.RejectionComment = rejectionComment

	return nil
}

func (f *fakeRepo) UpdateRFQStatusById(ctx context.Context, id string, newStatus string) error {
	rfq, ok := f.rfqs[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	rfq.Status = newStatus

	return nil
}

func (f *fakeRepo) CreateProposal(ctx context.Context, p *entity.Proposal) (uuid.UUID, error) {
	stored := copyProposal(p)
	stored.Id = uuid.New()
	stored.Version = 1
	for i := range stored.Items {
		stored.Items[i].ProposalId = stored.Id
	}
	f.proposals[stored.Id.String()] = stored

	return stored.Id, nil
}

func (f *fakeRepo) GetProposalById(ctx context.Context, id string) (*entity.Proposal, error) {
	p, ok := f.proposals[id]
	if !ok {
		return nil, repo_errors.ErrNotFound
	}

	return copyProposal(p), nil
}

func (f *fakeRepo) GetProposalByRfqId(ctx context.Context, rfqId string) (*entity.Proposal, error) {
	for _, p := range f.proposals {
		if p.RfqId.String() == rfqId {
			return copyProposal(p), nil
		}
	}

	return nil, repo_errors.ErrNotFound
}

func (f *fakeRepo) SaveLineItem(ctx context.Context, item *entity.ProposalLineItem, totals *entity.Proposal, expectedVersion int) (int, error) {
	p, ok := f.proposals[item.ProposalId.String()]
	if !ok {
		return 0, repo_errors.ErrNotFound
	}
	if p.Version != expectedVersion {
		return 0, repo_errors.ErrVersionConflict
	}

	for i := range p.Items {
		if p.Items[i].Id == item.Id {
			p.Items[i] = *item
		}
	}
	p.Subtotal = totals.Subtotal
	p.TotalDiscounts = totals.TotalDiscounts
	p.TotalVAT = totals.TotalVAT
	p.FinalTotal = totals.FinalTotal
	p.Version++

	return p.Version, nil
}

func (f *fakeRepo) UpdateProposalDetails(ctx context.Context, id string, input *entity.UpdateProposalDetailsInput) error {
	p, ok := f.proposals[id]
	if !ok {
		return repo_errors.ErrNotFound
	}
	p.PaymentTerms = input.PaymentTerms
	p.ShipmentMethod = input.ShipmentMethod
	p.TermsAndConditions = input.TermsAndConditions
	p.AdditionalBenefits = input.AdditionalBenefits

	return nil
}

func (f *fakeRepo) UpdateShipment(ctx context.Context, p *entity.Proposal) error {
	stored, ok := f.proposals[p.Id.String()]
	if !ok {
		return repo_errors.ErrNotFound
	}
	stored.IncludeShipment = p.IncludeShipment
	stored.ShipmentCharge = p.ShipmentCharge
	stored.Subtotal = p.Subtotal
	stored.TotalDiscounts = p.TotalDiscounts
	stored.TotalVAT = p.TotalVAT
	stored.FinalTotal = p.FinalTotal

	return nil
}

func (f *fakeRepo) SubmitProposal(ctx context.Context, p *entity.Proposal, rfqStatus string) error {
	stored, ok := f.proposals[p.Id.String()]
	if !ok {
		return repo_errors.ErrNotFound
	}
	rfq, ok := f.rfqs[p.RfqId.String()]
	if !ok {
		return repo_errors.ErrNotFound
	}

	stored.Status = p.Status
	if stored.SubmittedAt == "" {
		stored.SubmittedAt = p.SubmittedAt
	}
	rfq.Status = rfqStatus

	return nil
}

func (f *fakeRepo) UpdateRecallStatus(ctx context.Context, proposalId string, rfqId string, proposalStatus string, rfqStatus string) error {
	p, ok := f.proposals[proposalId]
	if !ok {
		return repo_errors.ErrNotFound
	}
	rfq, ok := f.rfqs[rfqId]
	if !ok {
		return repo_errors.ErrNotFound
	}

	p.Status = proposalStatus
	rfq.Status = rfqStatus

	return nil
}

type fakePublisher struct {
	events []notify.Event
}

func (p *fakePublisher) Publish(ctx context.Context, event notify.Event) {
	p.events = append(p.events, event)
}

func (p *fakePublisher) types() []notify.EventType {
	var out []notify.EventType
	for _, e := range p.events {
		out = append(out, e.Type)
	}

	return out
}

func rfqFixture(status string, quantities ...string) *entity.RFQ {
	rfq := &entity.RFQ{
		Id:           uuid.New(),
		Title:        "Office supplies",
		Status:       status,
		PaymentTerms: "Net 30",
		Customer:     entity.Customer{Name: "Acme", Country: "NL"},
	}
	for i, qty := range quantities {
		rfq.Items = append(rfq.Items, entity.RFQLineRequest{
			Id:            uuid.New(),
			RfqId:         rfq.Id,
			ProductName:   "Product " + string(rune('A'+i)),
			Quantity:      decimal.RequireFromString(qty),
			UnitOfMeasure: "pcs",
			Position:      i,
		})
	}

	return rfq
}
