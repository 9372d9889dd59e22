package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"quotation-management-api/internal/common"
	"quotation-management-api/internal/entity"
	"quotation-management-api/internal/lifecycle"
	"quotation-management-api/internal/notify"
	"quotation-management-api/internal/quoting"
	"quotation-management-api/internal/repo"
	"quotation-management-api/internal/repo/repo_errors"
	"quotation-management-api/pkg/config"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// quotingSession is one seller's exclusive editing pass over a proposal. The
// sequencer and store live in memory; every save goes through the repo with
// the proposal version as a lease check, so a session that lost ownership
// fails instead of clobbering newer totals.
type quotingSession struct {
	proposal *entity.Proposal
	seq      *quoting.Sequencer
	version  int
}

type ProposalService struct {
	rfqRepo      repo.RFQ
	proposalRepo repo.Proposal
	publisher    notify.Publisher
	defaultVat   decimal.Decimal
	currency     string

	mu       sync.Mutex
	sessions map[string]*quotingSession
}

func NewProposalService(repos *repo.Repositories, publisher notify.Publisher, quotingCfg config.QuotingConfig) *ProposalService {
	return &ProposalService{
		rfqRepo:      repos.RFQ,
		proposalRepo: repos.Proposal,
		publisher:    publisher,
		defaultVat:   decimal.NewFromInt(int64(quotingCfg.DefaultVatPercentage)),
		currency:     quotingCfg.DefaultCurrency,
		sessions:     make(map[string]*quotingSession),
	}
}

// BeginQuoting opens a quoting session for the RFQ's proposal, creating the
// proposal with its eagerly seeded line items the first time. Reopening an
// existing draft re-acquires ownership: the fresh session replaces any stale
// one and starts at the first item.
func (s *ProposalService) BeginQuoting(ctx context.Context, input *entity.BeginQuotingInput) (*entity.ProposalOutputModel, error) {
	rfq, err := s.getRFQ(ctx, input.RfqId)
	if err != nil {
		return nil, err
	}

	p, err := s.proposalRepo.GetProposalByRfqId(ctx, input.RfqId)
	if err == nil {
		if !editable(p.Status) {
			return nil, ErrProposalNotEditable
		}
		if err = s.openSession(rfq, p); err != nil {
			return nil, err
		}

		return mapProposal(p), nil
	}
	if !errors.Is(err, repo_errors.ErrNotFound) {
		return nil, err
	}

	if rfq.Status != common.Accepted {
		return nil, ErrRFQNotAccepted
	}

	vat := s.defaultVat
	if input.DefaultVatPercentage != "" {
		if vat, err = parseNonNegative(input.DefaultVatPercentage); err != nil {
			return nil, err
		}
	}
	currency := input.Currency
	if currency == "" {
		currency = s.currency
	}

	p = &entity.Proposal{
		RfqId:                 rfq.Id,
		QuotationNumber:       newQuotationNumber(),
		Status:                common.Draft,
		Currency:              currency,
		PaymentTerms:          rfq.PaymentTerms,
		QuotationValidityDate: rfq.QuotationValidityDate,
		Items:                 quoting.SeedLineItems(rfq, uuid.Nil, vat),
	}
	quoting.ApplyTotals(p)

	id, err := s.proposalRepo.CreateProposal(ctx, p)
	if err != nil {
		return nil, err
	}

	if p, err = s.proposalRepo.GetProposalById(ctx, id.String()); err != nil {
		return nil, err
	}
	if err = s.openSession(rfq, p); err != nil {
		return nil, err
	}

	return mapProposal(p), nil
}

func (s *ProposalService) GetProposalByRfqId(ctx context.Context, rfqId string) (*entity.ProposalOutputModel, error) {
	p, err := s.proposalRepo.GetProposalByRfqId(ctx, rfqId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrProposalNotFound
		}

		return nil, err
	}

	return mapProposal(p), nil
}

func (s *ProposalService) CurrentItem(ctx context.Context, proposalId string) (*entity.QuotingStepOutputModel, error) {
	sess, err := s.session(proposalId)
	if err != nil {
		return nil, err
	}

	step, err := sess.seq.Current()
	if err != nil {
		return nil, err
	}

	return mapStep(step), nil
}

// NextItem moves the cursor forward; at the last item it stays put.
func (s *ProposalService) NextItem(ctx context.Context, proposalId string) (*entity.QuotingStepOutputModel, error) {
	sess, err := s.session(proposalId)
	if err != nil {
		return nil, err
	}

	sess.seq.Next()
	step, err := sess.seq.Current()
	if err != nil {
		return nil, err
	}

	return mapStep(step), nil
}

// PreviousItem moves the cursor back; at the first item it stays put.
func (s *ProposalService) PreviousItem(ctx context.Context, proposalId string) (*entity.QuotingStepOutputModel, error) {
	sess, err := s.session(proposalId)
	if err != nil {
		return nil, err
	}

	sess.seq.Previous()
	step, err := sess.seq.Current()
	if err != nil {
		return nil, err
	}

	return mapStep(step), nil
}

// SaveItem reprices and persists one line item plus the recomputed proposal
// aggregates. Fields left empty in the input keep their stored values.
func (s *ProposalService) SaveItem(ctx context.Context, proposalId string, input *entity.SaveLineItemInput) (*entity.QuotingStepOutputModel, error) {
	sess, err := s.session(proposalId)
	if err != nil {
		return nil, err
	}
	if !editable(sess.proposal.Status) {
		return nil, ErrProposalNotEditable
	}

	item, err := buildLineItem(sess, input)
	if err != nil {
		return nil, err
	}

	saved, err := sess.seq.Save(item)
	if err != nil {
		if errors.Is(err, quoting.ErrUnknownRfqItem) {
			return nil, ErrLineItemNotFound
		}

		return nil, err
	}

	sess.proposal.Items = sess.seq.Store().Items()
	quoting.ApplyTotals(sess.proposal)

	newVersion, err := s.proposalRepo.SaveLineItem(ctx, &saved, sess.proposal, sess.version)
	if err != nil {
		if errors.Is(err, repo_errors.ErrVersionConflict) {
			s.dropSession(proposalId)

			return nil, ErrStaleQuotingSession
		}

		return nil, err
	}
	sess.version = newVersion

	step, err := sess.seq.Current()
	if err != nil {
		return nil, err
	}

	return mapStep(step), nil
}

// FinishQuoting exits the wizard regardless of how many items were priced.
// Saved items stay saved; only a not-yet-saved edit is lost.
func (s *ProposalService) FinishQuoting(ctx context.Context, proposalId string) (*entity.ProposalOutputModel, error) {
	s.mu.Lock()
	if sess, ok := s.sessions[proposalId]; ok {
		sess.seq.Finish()
		delete(s.sessions, proposalId)
	}
	s.mu.Unlock()

	return s.getProposalOutput(ctx, proposalId)
}

func (s *ProposalService) UpdateDetails(ctx context.Context, proposalId string, input *entity.UpdateProposalDetailsInput) (*entity.ProposalOutputModel, error) {
	p, err := s.getProposal(ctx, proposalId)
	if err != nil {
		return nil, err
	}
	if !editable(p.Status) {
		return nil, ErrProposalNotEditable
	}

	if input.PaymentTerms == "" {
		input.PaymentTerms = p.PaymentTerms
	}
	if input.ShipmentMethod == "" {
		input.ShipmentMethod = p.ShipmentMethod
	}
	if input.TermsAndConditions == "" {
		input.TermsAndConditions = p.TermsAndConditions
	}
	if input.AdditionalBenefits == "" {
		input.AdditionalBenefits = p.AdditionalBenefits
	}

	if err = s.proposalRepo.UpdateProposalDetails(ctx, proposalId, input); err != nil {
		return nil, err
	}

	return s.getProposalOutput(ctx, proposalId)
}

// SetShipment toggles the shipment charge and recomputes the aggregates under
// the new setting before persisting both together.
func (s *ProposalService) SetShipment(ctx context.Context, proposalId string, includeShipment bool, shipmentCharge string) (*entity.ProposalOutputModel, error) {
	p, err := s.getProposal(ctx, proposalId)
	if err != nil {
		return nil, err
	}
	if !editable(p.Status) {
		return nil, ErrProposalNotEditable
	}

	charge := p.ShipmentCharge
	if shipmentCharge != "" {
		if charge, err = parseNonNegative(shipmentCharge); err != nil {
			return nil, err
		}
	}

	p.IncludeShipment = includeShipment
	p.ShipmentCharge = charge
	quoting.ApplyTotals(p)

	if err = s.proposalRepo.UpdateShipment(ctx, p); err != nil {
		return nil, err
	}

	s.syncSessionShipment(proposalId, includeShipment, charge)

	return mapProposal(p), nil
}

// SubmitProposal runs the submission gate and the RFQ lifecycle together:
// both statuses move in one repo transaction, or neither does.
func (s *ProposalService) SubmitProposal(ctx context.Context, proposalId string) (*entity.ProposalOutputModel, error) {
	p, err := s.getProposal(ctx, proposalId)
	if err != nil {
		return nil, err
	}
	rfq, err := s.getRFQ(ctx, p.RfqId.String())
	if err != nil {
		return nil, err
	}

	if err = quoting.Submit(p, time.Now()); err != nil {
		return nil, err
	}
	if err = lifecycle.MarkSubmitted(rfq); err != nil {
		return nil, err
	}

	if err = s.proposalRepo.SubmitProposal(ctx, p, rfq.Status); err != nil {
		return nil, err
	}

	s.dropSession(proposalId)

	s.publisher.Publish(ctx, notify.Event{
		Type:       notify.EventProposalSubmitted,
		RfqId:      p.RfqId.String(),
		ProposalId: proposalId,
		OccurredAt: time.Now(),
	})

	return mapProposal(p), nil
}

// RequestRecall records the seller's wish to reopen a submitted proposal. The
// decision belongs to the buyer; ResolveRecall is the entry point for it.
func (s *ProposalService) RequestRecall(ctx context.Context, proposalId string) (*entity.ProposalOutputModel, error) {
	p, err := s.getProposal(ctx, proposalId)
	if err != nil {
		return nil, err
	}
	rfq, err := s.getRFQ(ctx, p.RfqId.String())
	if err != nil {
		return nil, err
	}

	if err = lifecycle.RequestRecall(rfq); err != nil {
		return nil, err
	}
	p.Status = common.RecallPending

	if err = s.proposalRepo.UpdateRecallStatus(ctx, proposalId, p.RfqId.String(), p.Status, rfq.Status); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, notify.Event{
		Type:       notify.EventRecallRequested,
		RfqId:      p.RfqId.String(),
		ProposalId: proposalId,
		OccurredAt: time.Now(),
	})

	return mapProposal(p), nil
}

// ResolveRecall applies the externally delivered decision: approval reopens
// the proposal for editing, denial returns both records to Submitted.
func (s *ProposalService) ResolveRecall(ctx context.Context, proposalId string, approved bool) (*entity.ProposalOutputModel, error) {
	p, err := s.getProposal(ctx, proposalId)
	if err != nil {
		return nil, err
	}
	rfq, err := s.getRFQ(ctx, p.RfqId.String())
	if err != nil {
		return nil, err
	}

	if err = lifecycle.ResolveRecall(rfq, approved); err != nil {
		return nil, err
	}
	if approved {
		p.Status = common.Recalled
	} else {
		p.Status = common.Submitted
	}

	if err = s.proposalRepo.UpdateRecallStatus(ctx, proposalId, p.RfqId.String(), p.Status, rfq.Status); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, notify.Event{
		Type:       notify.EventRecallResolved,
		RfqId:      p.RfqId.String(),
		ProposalId: proposalId,
		OccurredAt: time.Now(),
	})

	return mapProposal(p), nil
}

func (s *ProposalService) getRFQ(ctx context.Context, rfqId string) (*entity.RFQ, error) {
	rfq, err := s.rfqRepo.GetRFQById(ctx, rfqId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrRFQNotFound
		}

		return nil, err
	}

	return rfq, nil
}

func (s *ProposalService) getProposal(ctx context.Context, proposalId string) (*entity.Proposal, error) {
	p, err := s.proposalRepo.GetProposalById(ctx, proposalId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrProposalNotFound
		}

		return nil, err
	}

	return p, nil
}

func (s *ProposalService) getProposalOutput(ctx context.Context, proposalId string) (*entity.ProposalOutputModel, error) {
	p, err := s.getProposal(ctx, proposalId)
	if err != nil {
		return nil, err
	}

	return mapProposal(p), nil
}

func (s *ProposalService) openSession(rfq *entity.RFQ, p *entity.Proposal) error {
	store, err := quoting.NewLineItemStore(rfq, p.Items)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.sessions[p.Id.String()] = &quotingSession{
		proposal: p,
		seq:      quoting.NewSequencer(store),
		version:  p.Version,
	}
	s.mu.Unlock()

	return nil
}

func (s *ProposalService) session(proposalId string) (*quotingSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[proposalId]
	if !ok {
		return nil, ErrNoActiveQuotingSession
	}

	return sess, nil
}

func (s *ProposalService) dropSession(proposalId string) {
	s.mu.Lock()
	delete(s.sessions, proposalId)
	s.mu.Unlock()
}

func (s *ProposalService) syncSessionShipment(proposalId string, includeShipment bool, charge decimal.Decimal) {
	s.mu.Lock()
	if sess, ok := s.sessions[proposalId]; ok {
		sess.proposal.IncludeShipment = includeShipment
		sess.proposal.ShipmentCharge = charge
	}
	s.mu.Unlock()
}

func editable(status string) bool {
	return status == common.Draft || status == common.Recalled
}

// buildLineItem merges the input over the stored item at the same rfq item,
// keeping stored values for fields the input leaves empty.
func buildLineItem(sess *quotingSession, input *entity.SaveLineItemInput) (entity.ProposalLineItem, error) {
	rfqItemId, err := uuid.Parse(input.RfqItemId)
	if err != nil {
		return entity.ProposalLineItem{}, ErrLineItemNotFound
	}

	var current *entity.ProposalLineItem
	items := sess.seq.Store().Items()
	for i := range items {
		if items[i].RfqItemId == rfqItemId {
			current = &items[i]
			break
		}
	}
	if current == nil {
		return entity.ProposalLineItem{}, ErrLineItemNotFound
	}

	item := *current
	if input.ProductName != "" {
		item.ProductName = input.ProductName
	}
	if input.Brand != "" {
		item.Brand = input.Brand
	}
	if input.Origin != "" {
		item.Origin = input.Origin
	}
	if input.Packaging != "" {
		item.Packaging = input.Packaging
	}
	if input.Sku != "" {
		item.Sku = input.Sku
	}
	if input.DiscountType != "" {
		item.DiscountType = input.DiscountType
	}
	if item.Quantity, err = parsePositive(input.Quantity, item.Quantity); err != nil {
		return entity.ProposalLineItem{}, err
	}
	if item.UnitPrice, err = parseNonNegativeOr(input.UnitPrice, item.UnitPrice); err != nil {
		return entity.ProposalLineItem{}, err
	}
	if item.DiscountValue, err = parseNonNegativeOr(input.DiscountValue, item.DiscountValue); err != nil {
		return entity.ProposalLineItem{}, err
	}
	if item.VatPercentage, err = parseNonNegativeOr(input.VatPercentage, item.VatPercentage); err != nil {
		return entity.ProposalLineItem{}, err
	}

	return item, nil
}

func parseNonNegative(value string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(value))
	if err != nil || d.IsNegative() {
		return decimal.Decimal{}, ErrInvalidNumber
	}

	return d, nil
}

func parseNonNegativeOr(value string, fallback decimal.Decimal) (decimal.Decimal, error) {
	if value == "" {
		return fallback, nil
	}

	return parseNonNegative(value)
}

func parsePositive(value string, fallback decimal.Decimal) (decimal.Decimal, error) {
	if value == "" {
		return fallback, nil
	}

	d, err := parseNonNegative(value)
	if err != nil || !d.IsPositive() {
		return decimal.Decimal{}, ErrInvalidNumber
	}

	return d, nil
}

func newQuotationNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])

	return fmt.Sprintf("Q-%d-%s", time.Now().Year(), suffix)
}
