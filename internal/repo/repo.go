package repo

import (
	"context"
	"quotation-management-api/internal/entity"
	"quotation-management-api/internal/repo/pgdb"
	"quotation-management-api/pkg/postgres"

	"github.com/google/uuid"
)

type Diagnostics interface {
	Ping() error
}

type RFQ interface {
	GetRFQById(ctx context.Context, id string) (*entity.RFQ, error)
	GetRFQs(ctx context.Context, statuses []string, pg *entity.PaginationInput) ([]entity.RFQ, error)
	UpdateRFQAccepted(ctx context.Context, id string, quotationValidityDate string) error
	UpdateRFQRejected(ctx context.Context, id string, rejectionComment string) error
	UpdateRFQStatusById(ctx context.Context, id string, newStatus string) error
}

type Proposal interface {
	CreateProposal(ctx context.Context, p *entity.Proposal) (uuid.UUID, error)
	GetProposalById(ctx context.Context, id string) (*entity.Proposal, error)
	GetProposalByRfqId(ctx context.Context, rfqId string) (*entity.Proposal, error)
	SaveLineItem(ctx context.Context, item *entity.ProposalLineItem, totals *entity.Proposal, expectedVersion int) (int, error)
	UpdateProposalDetails(ctx context.Context, id string, input *entity.UpdateProposalDetailsInput) error
	UpdateShipment(ctx context.Context, p *entity.Proposal) error
	SubmitProposal(ctx context.Context, p *entity.Proposal, rfqStatus string) error
	UpdateRecallStatus(ctx context.Context, proposalId string, rfqId string, proposalStatus string, rfqStatus string) error
}

type Repositories struct {
	Diagnostics
	RFQ
	Proposal
}

func NewRepositories(p *postgres.Postgres) *Repositories {
	return &Repositories{
		Diagnostics: pgdb.NewDiagnosticsRepo(p),
		RFQ:         pgdb.NewRFQRepo(p),
		Proposal:    pgdb.NewProposalRepo(p),
	}
}
