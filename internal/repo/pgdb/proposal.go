package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"quotation-management-api/internal/entity"
	"quotation-management-api/internal/repo/repo_errors"
	"quotation-management-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type ProposalRepo struct {
	*postgres.Postgres
}

func NewProposalRepo(pgdb *postgres.Postgres) *ProposalRepo {
	return &ProposalRepo{pgdb}
}

const proposalColumns = "proposal.id, proposal.rfq_id, proposal.quotation_number, proposal.status, " +
	"proposal.currency, proposal.payment_terms, proposal.shipment_method, proposal.include_shipment, " +
	"proposal.shipment_charge, proposal.subtotal, proposal.total_discounts, proposal.total_vat, " +
	"proposal.final_total, proposal.quotation_validity_date, proposal.terms_and_conditions, " +
	"proposal.additional_benefits, proposal.version, proposal.created_at, proposal.submitted_at"

func (r *ProposalRepo) CreateProposal(ctx context.Context, p *entity.Proposal) (uuid.UUID, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return uuid.Nil, err
	}

	createProposalSql, args, _ := r.SqlBuilder.
		Insert("proposal").
		Columns("rfq_id", "quotation_number", "status", "currency", "payment_terms",
			"shipment_method", "include_shipment", "shipment_charge", "subtotal",
			"total_discounts", "total_vat", "final_total", "quotation_validity_date",
			"terms_and_conditions", "additional_benefits", "version").
		Values(p.RfqId, p.QuotationNumber, p.Status, p.Currency, p.PaymentTerms,
			p.ShipmentMethod, p.IncludeShipment, p.ShipmentCharge, p.Subtotal,
			p.TotalDiscounts, p.TotalVAT, p.FinalTotal, p.QuotationValidityDate,
			p.TermsAndConditions, p.AdditionalBenefits, 1).
		Suffix("RETURNING id").
		RunWith(tx).
		ToSql()

	var proposalId uuid.UUID
	if err = tx.QueryRow(createProposalSql, args...).Scan(&proposalId); err != nil {
		if e := tx.Rollback(); e != nil {
			return uuid.Nil, e
		}

		return uuid.Nil, err
	}

	for i := range p.Items {
		item := &p.Items[i]
		createItemSql, args, _ := r.SqlBuilder.
			Insert("proposal_line_item").
			Columns("id", "proposal_id", "rfq_item_id", "product_name", "brand", "origin",
				"packaging", "sku", "unit_of_measure", "quantity", "unit_price",
				"discount_type", "discount_value", "vat_percentage", "total_before_discount",
				"total_after_discount", "total_including_vat", "position").
			Values(item.Id, proposalId, item.RfqItemId, item.ProductName, item.Brand, item.Origin,
				item.Packaging, item.Sku, item.UnitOfMeasure, item.Quantity, item.UnitPrice,
				item.DiscountType, item.DiscountValue, item.VatPercentage, item.TotalBeforeDiscount,
				item.TotalAfterDiscount, item.TotalIncludingVAT, item.Position).
			RunWith(tx).
			ToSql()

		if _, err = tx.Exec(createItemSql, args...); err != nil {
			if e := tx.Rollback(); e != nil {
				return uuid.Nil, e
			}

			return uuid.Nil, err
		}
	}

	if err = tx.Commit(); err != nil {
		return uuid.Nil, err
	}

	return proposalId, nil
}

func (r *ProposalRepo) GetProposalById(ctx context.Context, id string) (*entity.Proposal, error) {
	return r.getProposal(ctx, squirrel.Eq{"proposal.id": id})
}

func (r *ProposalRepo) GetProposalByRfqId(ctx context.Context, rfqId string) (*entity.Proposal, error) {
	return r.getProposal(ctx, squirrel.Eq{"proposal.rfq_id": rfqId})
}

func (r *ProposalRepo) getProposal(ctx context.Context, where squirrel.Eq) (*entity.Proposal, error) {
	getProposalSql, args, _ := r.SqlBuilder.
		Select(proposalColumns).
		From("proposal").
		Where(where).
		ToSql()

	var p entity.Proposal
	var createdAt time.Time
	var submittedAt sql.NullTime
	row := r.Database.QueryRowContext(ctx, getProposalSql, args...)
	err := row.Scan(&p.Id, &p.RfqId, &p.QuotationNumber, &p.Status, &p.Currency, &p.PaymentTerms,
		&p.ShipmentMethod, &p.IncludeShipment, &p.ShipmentCharge, &p.Subtotal, &p.TotalDiscounts,
		&p.TotalVAT, &p.FinalTotal, &p.QuotationValidityDate, &p.TermsAndConditions,
		&p.AdditionalBenefits, &p.Version, &createdAt, &submittedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	p.CreatedAt = createdAt.Format(time.RFC3339)
	if submittedAt.Valid {
		p.SubmittedAt = submittedAt.Time.Format(time.RFC3339)
	}

	if p.Items, err = r.getLineItems(ctx, p.Id); err != nil {
		return nil, err
	}

	return &p, nil
}

func (r *ProposalRepo) getLineItems(ctx context.Context, proposalId uuid.UUID) ([]entity.ProposalLineItem, error) {
	getItemsSql, args, _ := r.SqlBuilder.
		Select("id", "proposal_id", "rfq_item_id", "product_name", "brand", "origin", "packaging",
			"sku", "unit_of_measure", "quantity", "unit_price", "discount_type", "discount_value",
			"vat_percentage", "total_before_discount", "total_after_discount", "total_including_vat",
			"position").
		From("proposal_line_item").
		Where("proposal_id = ?", proposalId).
		OrderBy("position ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getItemsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entity.ProposalLineItem, 0)
	for rows.Next() {
		var item entity.ProposalLineItem
		if err := rows.Scan(&item.Id, &item.ProposalId, &item.RfqItemId, &item.ProductName,
			&item.Brand, &item.Origin, &item.Packaging, &item.Sku, &item.UnitOfMeasure,
			&item.Quantity, &item.UnitPrice, &item.DiscountType, &item.DiscountValue,
			&item.VatPercentage, &item.TotalBeforeDiscount, &item.TotalAfterDiscount,
			&item.TotalIncludingVAT, &item.Position); err != nil {
			return items, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return items, err
	}

	return items, nil
}

// SaveLineItem writes one repriced line item together with the recomputed
// proposal aggregates, guarded by the proposal version so a stale quoting
// session can't clobber a newer one. Returns the new version.
func (r *ProposalRepo) SaveLineItem(ctx context.Context, item *entity.ProposalLineItem, totals *entity.Proposal, expectedVersion int) (int, error) {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}

	updateItemSql, args, _ := r.SqlBuilder.
		Update("proposal_line_item").
		SetMap(map[string]interface{}{
			"product_name":          item.ProductName,
			"brand":                 item.Brand,
			"origin":                item.Origin,
			"packaging":             item.Packaging,
			"sku":                   item.Sku,
			"quantity":              item.Quantity,
			"unit_price":            item.UnitPrice,
			"discount_type":         item.DiscountType,
			"discount_value":        item.DiscountValue,
			"vat_percentage":        item.VatPercentage,
			"total_before_discount": item.TotalBeforeDiscount,
			"total_after_discount":  item.TotalAfterDiscount,
			"total_including_vat":   item.TotalIncludingVAT,
		}).
		Where("id = ?", item.Id).
		RunWith(tx).
		ToSql()

	result, err := tx.Exec(updateItemSql, args...)
	if err != nil {
		if e := tx.Rollback(); e != nil {
			return 0, e
		}

		return 0, err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		if e := tx.Rollback(); e != nil {
			return 0, e
		}

		return 0, repo_errors.ErrNotFound
	}

	updateTotalsSql, args, _ := r.SqlBuilder.
		Update("proposal").
		SetMap(map[string]interface{}{
			"subtotal":        totals.Subtotal,
			"total_discounts": totals.TotalDiscounts,
			"total_vat":       totals.TotalVAT,
			"final_total":     totals.FinalTotal,
		}).
		Set("version", squirrel.Expr("version + ?", 1)).
		Where("id = ?", item.ProposalId).
		Where("version = ?", expectedVersion).
		Suffix("RETURNING version").
		RunWith(tx).
		ToSql()

	var newVersion int
	if err = tx.QueryRow(updateTotalsSql, args...).Scan(&newVersion); err != nil {
		if e := tx.Rollback(); e != nil {
			return 0, e
		}
		if errors.Is(err, sql.ErrNoRows) {
			return 0, repo_errors.ErrVersionConflict
		}

		return 0, err
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}

	return newVersion, nil
}

func (r *ProposalRepo) UpdateProposalDetails(ctx context.Context, id string, input *entity.UpdateProposalDetailsInput) error {
	updateSql, args, _ := r.SqlBuilder.
		Update("proposal").
		SetMap(map[string]interface{}{
			"payment_terms":        input.PaymentTerms,
			"shipment_method":      input.ShipmentMethod,
			"terms_and_conditions": input.TermsAndConditions,
			"additional_benefits":  input.AdditionalBenefits,
		}).
		Where("id = ?", id).
		ToSql()

	result, err := r.Database.ExecContext(ctx, updateSql, args...)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

// UpdateShipment persists the shipment flag and charge along with the totals
// recomputed under them.
func (r *ProposalRepo) UpdateShipment(ctx context.Context, p *entity.Proposal) error {
	updateSql, args, _ := r.SqlBuilder.
		Update("proposal").
		SetMap(map[string]interface{}{
			"include_shipment": p.IncludeShipment,
			"shipment_charge":  p.ShipmentCharge,
			"subtotal":         p.Subtotal,
			"total_discounts":  p.TotalDiscounts,
			"total_vat":        p.TotalVAT,
			"final_total":      p.FinalTotal,
		}).
		Where("id = ?", p.Id).
		ToSql()

	result, err := r.Database.ExecContext(ctx, updateSql, args...)
	if err != nil {
		return err
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}

// SubmitProposal moves the proposal and its RFQ to their submitted statuses
// in one transaction: both move together or neither does.
func (r *ProposalRepo) SubmitProposal(ctx context.Context, p *entity.Proposal, rfqStatus string) error {
	submittedAt, err := time.Parse(time.RFC3339, p.SubmittedAt)
	if err != nil {
		return err
	}

	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	updateProposalSql, args, _ := r.SqlBuilder.
		Update("proposal").
		Set("status", p.Status).
		Set("submitted_at", squirrel.Expr("COALESCE(submitted_at, ?)", submittedAt)).
		Where("id = ?", p.Id).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(updateProposalSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	updateRFQSql, args, _ := r.SqlBuilder.
		Update("rfq").
		Set("status", rfqStatus).
		Where("id = ?", p.RfqId).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(updateRFQSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	return tx.Commit()
}

// UpdateRecallStatus moves the proposal and RFQ recall statuses together.
func (r *ProposalRepo) UpdateRecallStatus(ctx context.Context, proposalId string, rfqId string, proposalStatus string, rfqStatus string) error {
	tx, err := r.Database.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	updateProposalSql, args, _ := r.SqlBuilder.
		Update("proposal").
		Set("status", proposalStatus).
		Where("id = ?", proposalId).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(updateProposalSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	updateRFQSql, args, _ := r.SqlBuilder.
		Update("rfq").
		Set("status", rfqStatus).
		Where("id = ?", rfqId).
		RunWith(tx).
		ToSql()

	if _, err = tx.Exec(updateRFQSql, args...); err != nil {
		if e := tx.Rollback(); e != nil {
			return e
		}

		return err
	}

	return tx.Commit()
}
