package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/flatfundpro/dues-portal/internal/application/port"
	"github.com/flatfundpro/dues-portal/internal/domain/entity"
	"github.com/flatfundpro/dues-portal/internal/infrastructure/persistence/sqlite"
)

// PaymentRepository implements port.PaymentRepository
type PaymentRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewPaymentRepository creates a new payment submission repository
func NewPaymentRepository(db *sql.DB, logger *zap.Logger) port.PaymentRepository {
	return &PaymentRepository{
		db:     db,
		logger: logger,
	}
}

const paymentColumns = `
	p.id, p.flat_id, p.expected_collection_id, p.payment_type, p.payment_quarter,
	p.payment_amount, p.payment_date, p.status, p.created_at
`

// Create appends a submission to the ledger
func (r *PaymentRepository) Create(ctx context.Context, p *entity.PaymentRecord) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	if p.Status == "" {
		p.Status = entity.ApprovalReceived
	}

	query := `
		INSERT INTO payment_submissions (
			id, flat_id, expected_collection_id, payment_type, payment_quarter,
			payment_amount, payment_date, status, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		p.ID,
		p.FlatID,
		nullString(p.ExpectedCollectionID),
		p.PaymentType,
		nullString(p.PaymentQuarter),
		p.PaymentAmount,
		nullTime(p.PaymentDate),
		p.Status,
		p.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create payment submission", zap.String("flat_id", p.FlatID), zap.Error(err))
		return fmt.Errorf("failed to create payment submission: %w", err)
	}
	return nil
}

// GetByID retrieves a submission by ID, nil when absent
func (r *PaymentRepository) GetByID(ctx context.Context, id string) (*entity.PaymentRecord, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment_submissions p WHERE p.id = ?`

	p, err := scanPayment(sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get payment submission", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get payment submission: %w", err)
	}
	return p, nil
}

// UpdateStatus changes the approval status of a submission
func (r *PaymentRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	query := `UPDATE payment_submissions SET status = ? WHERE id = ?`

	result, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query, status, id)
	if err != nil {
		r.logger.Error("Failed to update payment status",
			zap.String("id", id),
			zap.String("status", status),
			zap.Error(err))
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("payment submission not found: %s", id)
	}
	return nil
}

// ListByApartment returns every submission for flats of the apartment
func (r *PaymentRepository) ListByApartment(ctx context.Context, apartmentID string) ([]entity.PaymentRecord, error) {
	query := `
		SELECT ` + paymentColumns + `
		FROM payment_submissions p
		JOIN flats f ON f.id = p.flat_id
		JOIN blocks b ON b.id = f.block_id
		WHERE b.apartment_id = ?
		ORDER BY p.created_at ASC, p.id ASC
	`

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, apartmentID)
	if err != nil {
		r.logger.Error("Failed to list payment submissions", zap.String("apartment_id", apartmentID), zap.Error(err))
		return nil, fmt.Errorf("failed to list payment submissions: %w", err)
	}
	defer rows.Close()

	var out []entity.PaymentRecord
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment submission: %w", err)
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func scanPayment(row rowScanner) (*entity.PaymentRecord, error) {
	var p entity.PaymentRecord
	var collectionID, quarter sql.NullString
	var paymentDate sql.NullTime

	err := row.Scan(
		&p.ID,
		&p.FlatID,
		&collectionID,
		&p.PaymentType,
		&quarter,
		&p.PaymentAmount,
		&paymentDate,
		&p.Status,
		&p.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	p.ExpectedCollectionID = collectionID.String
	p.PaymentQuarter = quarter.String
	if paymentDate.Valid {
		d := paymentDate.Time
		p.PaymentDate = &d
	}
	return &p, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// Verify interface compliance
var _ port.PaymentRepository = (*PaymentRepository)(nil)
