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

// CollectionRepository implements port.CollectionRepository
type CollectionRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCollectionRepository creates a new expected collection repository
func NewCollectionRepository(db *sql.DB, logger *zap.Logger) port.CollectionRepository {
	return &CollectionRepository{
		db:     db,
		logger: logger,
	}
}

const collectionColumns = `
	id, apartment_id, payment_type, quarter, financial_year,
	due_date, amount_due, daily_fine, is_active, created_at
`

// Create inserts a new expected collection
func (r *CollectionRepository) Create(ctx context.Context, c *entity.ExpectedCollection) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO expected_collections (` + collectionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		c.ID,
		c.ApartmentID,
		c.PaymentType,
		c.Quarter,
		c.FinancialYear,
		c.DueDate,
		c.AmountDue,
		c.DailyFine,
		c.IsActive,
		c.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create expected collection",
			zap.String("apartment_id", c.ApartmentID),
			zap.String("quarter", c.Quarter),
			zap.Error(err))
		return fmt.Errorf("failed to create expected collection: %w", err)
	}
	return nil
}

// GetByID retrieves a collection by ID, nil when absent
func (r *CollectionRepository) GetByID(ctx context.Context, id string) (*entity.ExpectedCollection, error) {
	query := `SELECT ` + collectionColumns + ` FROM expected_collections WHERE id = ?`

	c, err := scanCollection(sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get expected collection", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get expected collection: %w", err)
	}
	return c, nil
}

// ListByApartment returns the apartment's collections ordered by due date
func (r *CollectionRepository) ListByApartment(ctx context.Context, apartmentID string, activeOnly bool) ([]entity.ExpectedCollection, error) {
	query := `SELECT ` + collectionColumns + ` FROM expected_collections WHERE apartment_id = ?`
	if activeOnly {
		query += ` AND is_active = 1`
	}
	query += ` ORDER BY due_date ASC, id ASC`

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, apartmentID)
	if err != nil {
		r.logger.Error("Failed to list expected collections", zap.String("apartment_id", apartmentID), zap.Error(err))
		return nil, fmt.Errorf("failed to list expected collections: %w", err)
	}
	defer rows.Close()

	var out []entity.ExpectedCollection
	for rows.Next() {
		c, err := scanCollection(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expected collection: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCollection(row rowScanner) (*entity.ExpectedCollection, error) {
	var c entity.ExpectedCollection
	err := row.Scan(
		&c.ID,
		&c.ApartmentID,
		&c.PaymentType,
		&c.Quarter,
		&c.FinancialYear,
		&c.DueDate,
		&c.AmountDue,
		&c.DailyFine,
		&c.IsActive,
		&c.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// Verify interface compliance
var _ port.CollectionRepository = (*CollectionRepository)(nil)
