package pgdb

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"quotation-management-api/internal/common"
	"quotation-management-api/internal/entity"
	"quotation-management-api/internal/repo/repo_errors"
	"quotation-management-api/pkg/postgres"

	"github.com/Masterminds/squirrel"
)

type RFQRepo struct {
	*postgres.Postgres
}

func NewRFQRepo(pgdb *postgres.Postgres) *RFQRepo {
	return &RFQRepo{pgdb}
}

const rfqColumns = "rfq.id, rfq.title, rfq.status, rfq.purchase_type, rfq.payment_terms, " +
	"rfq.delivery_date, rfq.deadline, rfq.buyer_comments, rfq.rejection_comment, " +
	"rfq.quotation_validity_date, rfq.customer_name, rfq.customer_country, rfq.created_at"

func scanRFQ(row squirrel.RowScanner) (*entity.RFQ, error) {
	var rfq entity.RFQ
	var createdAt time.Time
	err := row.Scan(&rfq.Id, &rfq.Title, &rfq.Status, &rfq.PurchaseType, &rfq.PaymentTerms,
		&rfq.DeliveryDate, &rfq.Deadline, &rfq.BuyerComments, &rfq.RejectionComment,
		&rfq.QuotationValidityDate, &rfq.Customer.Name, &rfq.Customer.Country, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repo_errors.ErrNotFound
		}

		return nil, err
	}
	rfq.CreatedAt = createdAt.Format(time.RFC3339)

	return &rfq, nil
}

func (r *RFQRepo) GetRFQById(ctx context.Context, id string) (*entity.RFQ, error) {
	getRFQSql, args, _ := r.SqlBuilder.
		Select(rfqColumns).
		From("rfq").
		Where("rfq.id = ?", id).
		ToSql()

	rfq, err := scanRFQ(r.Database.QueryRowContext(ctx, getRFQSql, args...))
	if err != nil {
		return nil, err
	}

	if rfq.Items, err = r.getLineRequests(ctx, id); err != nil {
		return nil, err
	}
	if rfq.Attachments, err = r.getAttachments(ctx, id); err != nil {
		return nil, err
	}

	return rfq, nil
}

func (r *RFQRepo) getLineRequests(ctx context.Context, rfqId string) ([]entity.RFQLineRequest, error) {
	getItemsSql, args, _ := r.SqlBuilder.
		Select("id", "rfq_id", "product_name", "quantity", "unit_of_measure", "position").
		From("rfq_line_request").
		Where("rfq_id = ?", rfqId).
		OrderBy("position ASC").
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getItemsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]entity.RFQLineRequest, 0)
	for rows.Next() {
		var item entity.RFQLineRequest
		if err := rows.Scan(&item.Id, &item.RfqId, &item.ProductName, &item.Quantity,
			&item.UnitOfMeasure, &item.Position); err != nil {
			return items, err
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return items, err
	}

	return items, nil
}

func (r *RFQRepo) getAttachments(ctx context.Context, rfqId string) ([]entity.Attachment, error) {
	getAttachmentsSql, args, _ := r.SqlBuilder.
		Select("id", "file_name", "url").
		From("rfq_attachment").
		Where("rfq_id = ?", rfqId).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getAttachmentsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	attachments := make([]entity.Attachment, 0)
	for rows.Next() {
		var a entity.Attachment
		if err := rows.Scan(&a.Id, &a.FileName, &a.Url); err != nil {
			return attachments, err
		}
		attachments = append(attachments, a)
	}
	if err = rows.Err(); err != nil {
		return attachments, err
	}

	return attachments, nil
}

func (r *RFQRepo) GetRFQs(ctx context.Context, statuses []string, pg *entity.PaginationInput) ([]entity.RFQ, error) {
	builder := r.SqlBuilder.
		Select(rfqColumns).
		From("rfq")

	if len(statuses) > 0 {
		builder = builder.Where(squirrel.Eq{"status": statuses})
	}

	getRFQsSql, args, _ := builder.
		OrderBy("created_at DESC").
		Offset(uint64(pg.Offset)).
		Limit(uint64(pg.Limit)).
		ToSql()

	rows, err := r.Database.QueryContext(ctx, getRFQsSql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	rfqs := make([]entity.RFQ, 0)
	for rows.Next() {
		var rfq entity.RFQ
		var createdAt time.Time
		if err := rows.Scan(&rfq.Id, &rfq.Title, &rfq.Status, &rfq.PurchaseType, &rfq.PaymentTerms,
			&rfq.DeliveryDate, &rfq.Deadline, &rfq.BuyerComments, &rfq.RejectionComment,
			&rfq.QuotationValidityDate, &rfq.Customer.Name, &rfq.Customer.Country, &createdAt); err != nil {
			return rfqs, err
		}
		rfq.CreatedAt = createdAt.Format(time.RFC3339)
		rfqs = append(rfqs, rfq)
	}
	if err = rows.Err(); err != nil {
		return rfqs, err
	}

	return rfqs, nil
}

func (r *RFQRepo) UpdateRFQAccepted(ctx context.Context, id string, quotationValidityDate string) error {
	return r.updateStatus(ctx, id, squirrel.Eq{
		"status":                  common.Accepted,
		"quotation_validity_date": quotationValidityDate,
	})
}

func (r *RFQRepo) UpdateRFQRejected(ctx context.Context, id string, rejectionComment string) error {
	return r.updateStatus(ctx, id, squirrel.Eq{
		"status":            common.Rejected,
		"rejection_comment": rejectionComment,
	})
}

func (r *RFQRepo) UpdateRFQStatusById(ctx context.Context, id string, newStatus string) error {
	return r.updateStatus(ctx, id, squirrel.Eq{"status": newStatus})
}

func (r *RFQRepo) updateStatus(ctx context.Context, id string, values map[string]interface{}) error {
	updateSql, args, _ := r.SqlBuilder.
		Update("rfq").
		SetMap(values).
		Where("id = ?", id).
		ToSql()

	result, err := r.Database.ExecContext(ctx, updateSql, args...)
	if err != nil {
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return repo_errors.ErrNotFound
	}

	return nil
}
