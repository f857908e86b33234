package service

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flatfundpro/dues-portal/internal/application/port"
	"github.com/flatfundpro/dues-portal/internal/domain/entity"
	"github.com/flatfundpro/dues-portal/internal/domain/workflow"
	"github.com/flatfundpro/dues-portal/pkg/utils"
)

// SubmitPaymentInput is a resident's payment report. Amount and date may be
// missing; such records still enter the ledger.
type SubmitPaymentInput struct {
	FlatID               string
	ExpectedCollectionID string
	PaymentType          string
	PaymentQuarter       string
	PaymentAmount        decimal.NullDecimal
	PaymentDate          *time.Time
}

// LedgerService appends payment submissions and moves them through review
type LedgerService interface {
	SubmitPayment(ctx context.Context, input SubmitPaymentInput) (*entity.PaymentRecord, error)
	UpdateStatus(ctx context.Context, paymentID, status string) (*entity.PaymentRecord, error)
}

type ledgerServiceImpl struct {
	blockRepo      port.BlockRepository
	paymentRepo    port.PaymentRepository
	collectionRepo port.CollectionRepository
	review         *workflow.ReviewWorkflow
	logger         Logger
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(
	blockRepo port.BlockRepository,
	paymentRepo port.PaymentRepository,
	collectionRepo port.CollectionRepository,
	logger Logger,
) LedgerService {
	return &ledgerServiceImpl{
		blockRepo:      blockRepo,
		paymentRepo:    paymentRepo,
		collectionRepo: collectionRepo,
		review:         workflow.NewReviewWorkflow(),
		logger:         logger,
	}
}

// SubmitPayment stores a new submission with status Received
func (s *ledgerServiceImpl) SubmitPayment(ctx context.Context, input SubmitPaymentInput) (*entity.PaymentRecord, error) {
	if input.FlatID == "" {
		return nil, fmt.Errorf("%w: flat id is required", ErrInvalidInput)
	}
	if input.PaymentAmount.Valid {
		if err := utils.ValidateAmount(input.PaymentAmount.Decimal); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
	}

	apartmentID, err := s.flatApartment(ctx, input.FlatID)
	if err != nil {
		return nil, err
	}

	if input.ExpectedCollectionID != "" {
		collection, err := s.collectionRepo.GetByID(ctx, input.ExpectedCollectionID)
		if err != nil {
			return nil, err
		}
		if collection == nil {
			return nil, fmt.Errorf("%w: %s", ErrCollectionNotFound, input.ExpectedCollectionID)
		}
		if collection.ApartmentID != apartmentID {
			return nil, fmt.Errorf("%w: collection %s belongs to another apartment", ErrInvalidInput, collection.ID)
		}
	}

	record := &entity.PaymentRecord{
		FlatID:               input.FlatID,
		ExpectedCollectionID: input.ExpectedCollectionID,
		PaymentType:          utils.SanitizeString(input.PaymentType),
		PaymentQuarter:       utils.SanitizeString(input.PaymentQuarter),
		PaymentAmount:        input.PaymentAmount,
		PaymentDate:          input.PaymentDate,
		Status:               entity.ApprovalReceived,
	}
	if err := s.paymentRepo.Create(ctx, record); err != nil {
		s.logger.Error("Failed to submit payment", "error", err, "flat_id", input.FlatID)
		return nil, err
	}

	s.logger.Info("Payment submitted",
		"id", record.ID,
		"flat_id", record.FlatID,
		"collection_id", record.ExpectedCollectionID,
		"has_amount", record.PaymentAmount.Valid,
	)
	return record, nil
}

// flatApartment resolves the apartment a flat belongs to through its block
func (s *ledgerServiceImpl) flatApartment(ctx context.Context, flatID string) (string, error) {
	flat, err := s.blockRepo.GetFlat(ctx, flatID)
	if err != nil {
		return "", err
	}
	if flat == nil {
		return "", fmt.Errorf("%w: %s", ErrFlatNotFound, flatID)
	}

	block, err := s.blockRepo.GetBlock(ctx, flat.BlockID)
	if err != nil {
		return "", err
	}
	if block == nil {
		return "", fmt.Errorf("%w: %s", ErrBlockNotFound, flat.BlockID)
	}
	return block.ApartmentID, nil
}

// UpdateStatus records a review decision on a submission. Setting the
// current status again is a no-op; other moves follow the review workflow.
func (s *ledgerServiceImpl) UpdateStatus(ctx context.Context, paymentID, status string) (*entity.PaymentRecord, error) {
	if !entity.IsValidApprovalStatus(status) {
		return nil, fmt.Errorf("%w: unknown approval status %q", ErrInvalidInput, status)
	}

	record, err := s.paymentRepo.GetByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, fmt.Errorf("%w: %s", ErrPaymentNotFound, paymentID)
	}

	previous := record.Status
	if previous == status {
		return record, nil
	}

	trigger, err := s.review.Transition(ctx, workflow.State(previous), workflow.State(status))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.paymentRepo.UpdateStatus(ctx, paymentID, status); err != nil {
		s.logger.Error("Failed to update payment status", "error", err, "id", paymentID)
		return nil, err
	}
	record.Status = status

	s.logger.Info("Payment status updated", "id", paymentID, "from", previous, "to", status, "action", trigger.String())
	return record, nil
}
