package service

import (
	"context"
	"quotation-management-api/internal/entity"
	"quotation-management-api/internal/notify"
	"quotation-management-api/internal/repo"
	"quotation-management-api/pkg/config"
)

type Diagnostics interface {
	Ping() error
}

type RFQ interface {
	GetRFQs(ctx context.Context, statuses []string, pg *entity.PaginationInput) ([]entity.RFQOutputModel, error)
	GetRFQById(ctx context.Context, rfqId string) (*entity.RFQOutputModel, error)
	GetRFQStatusById(ctx context.Context, rfqId string) (string, error)

	AcceptRFQ(ctx context.Context, rfqId string, quotationValidityDate string) (*entity.RFQOutputModel, error)
	RejectRFQ(ctx context.Context, rfqId string, comment string) (*entity.RFQOutputModel, error)
}

type Proposal interface {
	BeginQuoting(ctx context.Context, input *entity.BeginQuotingInput) (*entity.ProposalOutputModel, error)
	GetProposalByRfqId(ctx context.Context, rfqId string) (*entity.ProposalOutputModel, error)

	CurrentItem(ctx context.Context, proposalId string) (*entity.QuotingStepOutputModel, error)
	NextItem(ctx context.Context, proposalId string) (*entity.QuotingStepOutputModel, error)
	PreviousItem(ctx context.Context, proposalId string) (*entity.QuotingStepOutputModel, error)
	SaveItem(ctx context.Context, proposalId string, input *entity.SaveLineItemInput) (*entity.QuotingStepOutputModel, error)
	FinishQuoting(ctx context.Context, proposalId string) (*entity.ProposalOutputModel, error)

	UpdateDetails(ctx context.Context, proposalId string, input *entity.UpdateProposalDetailsInput) (*entity.ProposalOutputModel, error)
	SetShipment(ctx context.Context, proposalId string, includeShipment bool, shipmentCharge string) (*entity.ProposalOutputModel, error)

	SubmitProposal(ctx context.Context, proposalId string) (*entity.ProposalOutputModel, error)
	RequestRecall(ctx context.Context, proposalId string) (*entity.ProposalOutputModel, error)
	ResolveRecall(ctx context.Context, proposalId string, approved bool) (*entity.ProposalOutputModel, error)
}

type Services struct {
	Diagnostics Diagnostics
	RFQ         RFQ
	Proposal    Proposal
}

func NewServices(repos *repo.Repositories, publisher notify.Publisher, quotingCfg config.QuotingConfig) *Services {
	return &Services{
		Diagnostics: NewDiagnosticsService(repos),
		RFQ:         NewRFQService(repos, publisher),
		Proposal:    NewProposalService(repos, publisher, quotingCfg),
	}
}
