package service

import (
	"context"
	"io"

	"github.com/flatfundpro/dues-portal/internal/domain/entity"
	"github.com/flatfundpro/dues-portal/internal/domain/reconcile"
)

// Mock repositories
type mockBlockRepo struct {
	createBlockFunc func(ctx context.Context, block *entity.Block) error
	getBlockFunc    func(ctx context.Context, id string) (*entity.Block, error)
	listBlocksFunc  func(ctx context.Context, apartmentID string) ([]entity.Block, error)
	createFlatFunc  func(ctx context.Context, flat *entity.Flat) error
	getFlatFunc     func(ctx context.Context, id string) (*entity.Flat, error)
	listFlatsFunc   func(ctx context.Context, apartmentID string) ([]entity.Flat, error)
}

func (m *mockBlockRepo) CreateBlock(ctx context.Context, block *entity.Block) error {
	if m.createBlockFunc != nil {
		return m.createBlockFunc(ctx, block)
	}
	block.ID = "block-1"
	return nil
}

func (m *mockBlockRepo) GetBlock(ctx context.Context, id string) (*entity.Block, error) {
	if m.getBlockFunc != nil {
		return m.getBlockFunc(ctx, id)
	}
	return &entity.Block{ID: id, ApartmentID: "apt-1", Name: "A"}, nil
}

func (m *mockBlockRepo) ListBlocks(ctx context.Context, apartmentID string) ([]entity.Block, error) {
	if m.listBlocksFunc != nil {
		return m.listBlocksFunc(ctx, apartmentID)
	}
	return []entity.Block{}, nil
}

func (m *mockBlockRepo) CreateFlat(ctx context.Context, flat *entity.Flat) error {
	if m.createFlatFunc != nil {
		return m.createFlatFunc(ctx, flat)
	}
	flat.ID = "flat-" + flat.FlatNumber
	return nil
}

func (m *mockBlockRepo) GetFlat(ctx context.Context, id string) (*entity.Flat, error) {
	if m.getFlatFunc != nil {
		return m.getFlatFunc(ctx, id)
	}
	return &entity.Flat{ID: id, BlockID: "block-1", FlatNumber: "101"}, nil
}

func (m *mockBlockRepo) ListFlats(ctx context.Context, apartmentID string) ([]entity.Flat, error) {
	if m.listFlatsFunc != nil {
		return m.listFlatsFunc(ctx, apartmentID)
	}
	return []entity.Flat{}, nil
}

type mockCollectionRepo struct {
	createFunc          func(ctx context.Context, collection *entity.ExpectedCollection) error
	getByIDFunc         func(ctx context.Context, id string) (*entity.ExpectedCollection, error)
	listByApartmentFunc func(ctx context.Context, apartmentID string, activeOnly bool) ([]entity.ExpectedCollection, error)
}

func (m *mockCollectionRepo) Create(ctx context.Context, collection *entity.ExpectedCollection) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, collection)
	}
	collection.ID = "col-1"
	return nil
}

func (m *mockCollectionRepo) GetByID(ctx context.Context, id string) (*entity.ExpectedCollection, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return &entity.ExpectedCollection{ID: id, ApartmentID: "apt-1"}, nil
}

func (m *mockCollectionRepo) ListByApartment(ctx context.Context, apartmentID string, activeOnly bool) ([]entity.ExpectedCollection, error) {
	if m.listByApartmentFunc != nil {
		return m.listByApartmentFunc(ctx, apartmentID, activeOnly)
	}
	return []entity.ExpectedCollection{}, nil
}

type mockPaymentRepo struct {
	createFunc          func(ctx context.Context, record *entity.PaymentRecord) error
	getByIDFunc         func(ctx context.Context, id string) (*entity.PaymentRecord, error)
	updateStatusFunc    func(ctx context.Context, id string, status string) error
	listByApartmentFunc func(ctx context.Context, apartmentID string) ([]entity.PaymentRecord, error)
}

func (m *mockPaymentRepo) Create(ctx context.Context, record *entity.PaymentRecord) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, record)
	}
	record.ID = "pay-1"
	return nil
}

func (m *mockPaymentRepo) GetByID(ctx context.Context, id string) (*entity.PaymentRecord, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockPaymentRepo) UpdateStatus(ctx context.Context, id string, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockPaymentRepo) ListByApartment(ctx context.Context, apartmentID string) ([]entity.PaymentRecord, error) {
	if m.listByApartmentFunc != nil {
		return m.listByApartmentFunc(ctx, apartmentID)
	}
	return []entity.PaymentRecord{}, nil
}

type mockTxManager struct {
	withTransactionFunc func(ctx context.Context, fn func(ctx context.Context) error) error
}

func (m *mockTxManager) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	if m.withTransactionFunc != nil {
		return m.withTransactionFunc(ctx, fn)
	}
	return fn(ctx)
}

type mockReportWriter struct {
	written *reconcile.CollectionReport
	err     error
}

func (m *mockReportWriter) WriteCollectionReport(w io.Writer, report *reconcile.CollectionReport) error {
	if m.err != nil {
		return m.err
	}
	m.written = report
	_, err := w.Write([]byte("report"))
	return err
}

func (m *mockReportWriter) ContentType() string   { return "application/octet-stream" }
func (m *mockReportWriter) FileExtension() string { return ".xlsx" }

type mockLogger struct{}

func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}
