package port

import (
	"context"

	"github.com/flatfundpro/dues-portal/internal/domain/entity"
)

// BlockRepository defines persistence operations for blocks and their flats
type BlockRepository interface {
	CreateBlock(ctx context.Context, block *entity.Block) error
	GetBlock(ctx context.Context, id string) (*entity.Block, error)
	ListBlocks(ctx context.Context, apartmentID string) ([]entity.Block, error)

	CreateFlat(ctx context.Context, flat *entity.Flat) error
	GetFlat(ctx context.Context, id string) (*entity.Flat, error)
	// ListFlats returns every flat in every block of the apartment
	ListFlats(ctx context.Context, apartmentID string) ([]entity.Flat, error)
}

// CollectionRepository defines persistence operations for ExpectedCollection
type CollectionRepository interface {
	Create(ctx context.Context, collection *entity.ExpectedCollection) error
	GetByID(ctx context.Context, id string) (*entity.ExpectedCollection, error)
	// ListByApartment returns collections ordered by due date
	ListByApartment(ctx context.Context, apartmentID string, activeOnly bool) ([]entity.ExpectedCollection, error)
}

// PaymentRepository defines persistence operations for the payment ledger.
// Records are append-only; only the approval status changes after creation.
type PaymentRepository interface {
	Create(ctx context.Context, record *entity.PaymentRecord) error
	GetByID(ctx context.Context, id string) (*entity.PaymentRecord, error)
	UpdateStatus(ctx context.Context, id string, status string) error
	// ListByApartment returns every submission for flats of the apartment
	ListByApartment(ctx context.Context, apartmentID string) ([]entity.PaymentRecord, error)
}

// TransactionManager handles database transactions
type TransactionManager interface {
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error
}
