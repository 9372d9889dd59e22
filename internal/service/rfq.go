package service

import (
	"context"
	"errors"
	"time"

	"quotation-management-api/internal/entity"
	"quotation-management-api/internal/lifecycle"
	"quotation-management-api/internal/notify"
	"quotation-management-api/internal/repo"
	"quotation-management-api/internal/repo/repo_errors"
)

type RFQService struct {
	rfqRepo   repo.RFQ
	publisher notify.Publisher
}

func NewRFQService(repos *repo.Repositories, publisher notify.Publisher) *RFQService {
	return &RFQService{
		rfqRepo:   repos.RFQ,
		publisher: publisher,
	}
}

func (s *RFQService) GetRFQs(ctx context.Context, statuses []string, pg *entity.PaginationInput) ([]entity.RFQOutputModel, error) {
	rfqs, err := s.rfqRepo.GetRFQs(ctx, statuses, pg)
	if err != nil {
		return nil, err
	}

	return mapRFQs(rfqs), nil
}

func (s *RFQService) GetRFQById(ctx context.Context, rfqId string) (*entity.RFQOutputModel, error) {
	rfq, err := s.getRFQ(ctx, rfqId)
	if err != nil {
		return nil, err
	}

	return mapRFQ(rfq), nil
}

func (s *RFQService) GetRFQStatusById(ctx context.Context, rfqId string) (string, error) {
	rfq, err := s.getRFQ(ctx, rfqId)
	if err != nil {
		return "", err
	}

	return rfq.Status, nil
}

// AcceptRFQ runs the lifecycle guard against an in-memory copy first, so a
// guard failure never mutates stored state.
func (s *RFQService) AcceptRFQ(ctx context.Context, rfqId string, quotationValidityDate string) (*entity.RFQOutputModel, error) {
	rfq, err := s.getRFQ(ctx, rfqId)
	if err != nil {
		return nil, err
	}

	if err = lifecycle.Accept(rfq, quotationValidityDate); err != nil {
		return nil, err
	}

	if err = s.rfqRepo.UpdateRFQAccepted(ctx, rfqId, quotationValidityDate); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, notify.Event{
		Type:       notify.EventRFQAccepted,
		RfqId:      rfqId,
		OccurredAt: time.Now(),
	})

	return mapRFQ(rfq), nil
}

func (s *RFQService) RejectRFQ(ctx context.Context, rfqId string, comment string) (*entity.RFQOutputModel, error) {
	rfq, err := s.getRFQ(ctx, rfqId)
	if err != nil {
		return nil, err
	}

	if err = lifecycle.Reject(rfq, comment); err != nil {
		return nil, err
	}

	if err = s.rfqRepo.UpdateRFQRejected(ctx, rfqId, comment); err != nil {
		return nil, err
	}

	s.publisher.Publish(ctx, notify.Event{
		Type:       notify.EventRFQRejected,
		RfqId:      rfqId,
		OccurredAt: time.Now(),
	})

	return mapRFQ(rfq), nil
}

func (s *RFQService) getRFQ(ctx context.Context, rfqId string) (*entity.RFQ, error) {
	rfq, err := s.rfqRepo.GetRFQById(ctx, rfqId)
	if err != nil {
		if errors.Is(err, repo_errors.ErrNotFound) {
			return nil, ErrRFQNotFound
		}

		return nil, err
	}

	return rfq, nil
}
