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

// BlockRepository implements port.BlockRepository
type BlockRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewBlockRepository creates a new block repository
func NewBlockRepository(db *sql.DB, logger *zap.Logger) port.BlockRepository {
	return &BlockRepository{
		db:     db,
		logger: logger,
	}
}

// CreateBlock inserts a block, assigning an id and timestamp when unset
func (r *BlockRepository) CreateBlock(ctx context.Context, block *entity.Block) error {
	if block.ID == "" {
		block.ID = uuid.NewString()
	}
	if block.CreatedAt.IsZero() {
		block.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO blocks (id, apartment_id, name, created_at) VALUES (?, ?, ?, ?)`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		block.ID,
		block.ApartmentID,
		block.Name,
		block.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create block",
			zap.String("apartment_id", block.ApartmentID),
			zap.String("name", block.Name),
			zap.Error(err))
		return fmt.Errorf("failed to create block: %w", err)
	}
	return nil
}

// GetBlock retrieves a block by ID, nil when absent
func (r *BlockRepository) GetBlock(ctx context.Context, id string) (*entity.Block, error) {
	query := `SELECT id, apartment_id, name, created_at FROM blocks WHERE id = ?`

	var block entity.Block
	err := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&block.ID,
		&block.ApartmentID,
		&block.Name,
		&block.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get block", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get block: %w", err)
	}
	return &block, nil
}

// ListBlocks returns the apartment's blocks ordered by name
func (r *BlockRepository) ListBlocks(ctx context.Context, apartmentID string) ([]entity.Block, error) {
	query := `
		SELECT id, apartment_id, name, created_at
		FROM blocks
		WHERE apartment_id = ?
		ORDER BY name ASC
	`

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, apartmentID)
	if err != nil {
		r.logger.Error("Failed to list blocks", zap.String("apartment_id", apartmentID), zap.Error(err))
		return nil, fmt.Errorf("failed to list blocks: %w", err)
	}
	defer rows.Close()

	var blocks []entity.Block
	for rows.Next() {
		var b entity.Block
		if err := rows.Scan(&b.ID, &b.ApartmentID, &b.Name, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan block: %w", err)
		}
		blocks = append(blocks, b)
	}
	return blocks, rows.Err()
}

// CreateFlat inserts a flat into an existing block
func (r *BlockRepository) CreateFlat(ctx context.Context, flat *entity.Flat) error {
	if flat.ID == "" {
		flat.ID = uuid.NewString()
	}
	if flat.CreatedAt.IsZero() {
		flat.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO flats (id, block_id, flat_number, created_at) VALUES (?, ?, ?, ?)`

	_, err := sqlite.ExecutorFor(ctx, r.db).ExecContext(ctx, query,
		flat.ID,
		flat.BlockID,
		flat.FlatNumber,
		flat.CreatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create flat",
			zap.String("block_id", flat.BlockID),
			zap.String("flat_number", flat.FlatNumber),
			zap.Error(err))
		return fmt.Errorf("failed to create flat: %w", err)
	}
	return nil
}

// GetFlat retrieves a flat by ID, nil when absent
func (r *BlockRepository) GetFlat(ctx context.Context, id string) (*entity.Flat, error) {
	query := `SELECT id, block_id, flat_number, created_at FROM flats WHERE id = ?`

	var flat entity.Flat
	err := sqlite.ExecutorFor(ctx, r.db).QueryRowContext(ctx, query, id).Scan(
		&flat.ID,
		&flat.BlockID,
		&flat.FlatNumber,
		&flat.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get flat", zap.String("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to get flat: %w", err)
	}
	return &flat, nil
}

// ListFlats returns all flats of the apartment ordered by block and number
func (r *BlockRepository) ListFlats(ctx context.Context, apartmentID string) ([]entity.Flat, error) {
	query := `
		SELECT f.id, f.block_id, f.flat_number, f.created_at
		FROM flats f
		JOIN blocks b ON b.id = f.block_id
		WHERE b.apartment_id = ?
		ORDER BY b.name ASC, f.flat_number ASC
	`

	rows, err := sqlite.ExecutorFor(ctx, r.db).QueryContext(ctx, query, apartmentID)
	if err != nil {
		r.logger.Error("Failed to list flats", zap.String("apartment_id", apartmentID), zap.Error(err))
		return nil, fmt.Errorf("failed to list flats: %w", err)
	}
	defer rows.Close()

	var flats []entity.Flat
	for rows.Next() {
		var f entity.Flat
		if err := rows.Scan(&f.ID, &f.BlockID, &f.FlatNumber, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan flat: %w", err)
		}
		flats = append(flats, f)
	}
	return flats, rows.Err()
}

// Verify interface compliance
var _ port.BlockRepository = (*BlockRepository)(nil)
