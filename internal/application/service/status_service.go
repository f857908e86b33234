package service

import (
	"context"
	"fmt"
	"time"

	"github.com/flatfundpro/dues-portal/internal/application/port"
	"github.com/flatfundpro/dues-portal/internal/domain/reconcile"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// DefaultFetchTimeout bounds the snapshot fetch when none is configured
const DefaultFetchTimeout = 10 * time.Second

// StatusService classifies flats against expected collections.
// Every call reads a fresh snapshot; nothing derived is cached or stored.
type StatusService interface {
	LoadSnapshot(ctx context.Context, apartmentID string) (*reconcile.Snapshot, error)
	CollectionReport(ctx context.Context, apartmentID, collectionID string) (*reconcile.CollectionReport, error)
	FlatStatus(ctx context.Context, apartmentID, collectionID, flatID string) (*reconcile.FlatStatus, error)
}

type statusServiceImpl struct {
	blockRepo      port.BlockRepository
	collectionRepo port.CollectionRepository
	paymentRepo    port.PaymentRepository
	classifier     *reconcile.Classifier
	fetchTimeout   time.Duration
	logger         Logger
}

// NewStatusService creates a new StatusService
func NewStatusService(
	blockRepo port.BlockRepository,
	collectionRepo port.CollectionRepository,
	paymentRepo port.PaymentRepository,
	classifier *reconcile.Classifier,
	fetchTimeout time.Duration,
	logger Logger,
) StatusService {
	if classifier == nil {
		classifier = reconcile.NewClassifier(nil)
	}
	if fetchTimeout <= 0 {
		fetchTimeout = DefaultFetchTimeout
	}
	return &statusServiceImpl{
		blockRepo:      blockRepo,
		collectionRepo: collectionRepo,
		paymentRepo:    paymentRepo,
		classifier:     classifier,
		fetchTimeout:   fetchTimeout,
		logger:         logger,
	}
}

// LoadSnapshot reads blocks, flats, all collections and the full ledger of an
// apartment. Any failure is reported as ErrSnapshotUnavailable.
func (s *statusServiceImpl) LoadSnapshot(ctx context.Context, apartmentID string) (*reconcile.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, s.fetchTimeout)
	defer cancel()

	blocks, err := s.blockRepo.ListBlocks(ctx, apartmentID)
	if err != nil {
		return nil, s.unavailable(apartmentID, "blocks", err)
	}
	flats, err := s.blockRepo.ListFlats(ctx, apartmentID)
	if err != nil {
		return nil, s.unavailable(apartmentID, "flats", err)
	}
	collections, err := s.collectionRepo.ListByApartment(ctx, apartmentID, false)
	if err != nil {
		return nil, s.unavailable(apartmentID, "collections", err)
	}
	payments, err := s.paymentRepo.ListByApartment(ctx, apartmentID)
	if err != nil {
		return nil, s.unavailable(apartmentID, "payments", err)
	}

	return &reconcile.Snapshot{
		Blocks:      blocks,
		Flats:       flats,
		Collections: collections,
		Payments:    payments,
	}, nil
}

func (s *statusServiceImpl) unavailable(apartmentID, part string, err error) error {
	s.logger.Error("Failed to load snapshot", "apartment_id", apartmentID, "part", part, "error", err)
	return fmt.Errorf("%w: load %s: %w", ErrSnapshotUnavailable, part, err)
}

// CollectionReport classifies every flat of the apartment against one collection
func (s *statusServiceImpl) CollectionReport(ctx context.Context, apartmentID, collectionID string) (*reconcile.CollectionReport, error) {
	snap, err := s.LoadSnapshot(ctx, apartmentID)
	if err != nil {
		return nil, err
	}

	collection, ok := snap.Collection(collectionID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, collectionID)
	}

	report := s.classifier.BuildReport(snap, collection)

	s.logger.Info("Collection classified",
		"apartment_id", apartmentID,
		"collection_id", collectionID,
		"flats", report.Summary.TotalFlats,
		"paid", report.Summary.Counts[reconcile.StatusPaid],
		"partial", report.Summary.Counts[reconcile.StatusPartial],
		"pending", report.Summary.Counts[reconcile.StatusPending],
	)
	return report, nil
}

// FlatStatus classifies a single flat of the apartment
func (s *statusServiceImpl) FlatStatus(ctx context.Context, apartmentID, collectionID, flatID string) (*reconcile.FlatStatus, error) {
	report, err := s.CollectionReport(ctx, apartmentID, collectionID)
	if err != nil {
		return nil, err
	}
	for i := range report.Flats {
		if report.Flats[i].FlatID == flatID {
			return &report.Flats[i], nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrFlatNotFound, flatID)
}
