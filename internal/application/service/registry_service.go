package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/flatfundpro/dues-portal/internal/application/port"
	"github.com/flatfundpro/dues-portal/internal/domain/entity"
	"github.com/flatfundpro/dues-portal/pkg/utils"
)

// DefineCollectionInput carries an admin-defined due
type DefineCollectionInput struct {
	ApartmentID   string
	PaymentType   string
	Quarter       string
	FinancialYear string
	DueDate       time.Time
	AmountDue     decimal.Decimal
	DailyFine     decimal.Decimal
	IsActive      bool
}

// RegistryService manages blocks, flats and expected collections
type RegistryService interface {
	CreateBlock(ctx context.Context, apartmentID, name string) (*entity.Block, error)
	AddFlats(ctx context.Context, blockID string, flatNumbers []string) ([]entity.Flat, error)
	ListBlocks(ctx context.Context, apartmentID string) ([]entity.Block, error)
	DefineCollection(ctx context.Context, input DefineCollectionInput) (*entity.ExpectedCollection, error)
	ListCollections(ctx context.Context, apartmentID string, activeOnly bool) ([]entity.ExpectedCollection, error)
}

type registryServiceImpl struct {
	blockRepo      port.BlockRepository
	collectionRepo port.CollectionRepository
	txManager      port.TransactionManager
	logger         Logger
}

// NewRegistryService creates a new RegistryService
func NewRegistryService(
	blockRepo port.BlockRepository,
	collectionRepo port.CollectionRepository,
	txManager port.TransactionManager,
	logger Logger,
) RegistryService {
	return &registryServiceImpl{
		blockRepo:      blockRepo,
		collectionRepo: collectionRepo,
		txManager:      txManager,
		logger:         logger,
	}
}

// CreateBlock registers a new block for an apartment
func (s *registryServiceImpl) CreateBlock(ctx context.Context, apartmentID, name string) (*entity.Block, error) {
	name = utils.SanitizeString(name)
	if apartmentID == "" || name == "" {
		return nil, fmt.Errorf("%w: apartment id and block name are required", ErrInvalidInput)
	}

	block := &entity.Block{ApartmentID: apartmentID, Name: name}
	if err := s.blockRepo.CreateBlock(ctx, block); err != nil {
		s.logger.Error("Failed to create block", "error", err, "apartment_id", apartmentID)
		return nil, err
	}

	s.logger.Info("Block created", "id", block.ID, "apartment_id", apartmentID, "name", name)
	return block, nil
}

// AddFlats adds flats to a block; either all are created or none
func (s *registryServiceImpl) AddFlats(ctx context.Context, blockID string, flatNumbers []string) ([]entity.Flat, error) {
	if len(flatNumbers) == 0 {
		return nil, fmt.Errorf("%w: at least one flat number is required", ErrInvalidInput)
	}

	block, err := s.blockRepo.GetBlock(ctx, blockID)
	if err != nil {
		return nil, err
	}
	if block == nil {
		return nil, fmt.Errorf("%w: %s", ErrBlockNotFound, blockID)
	}

	flats := make([]entity.Flat, 0, len(flatNumbers))
	err = s.txManager.WithTransaction(ctx, func(txCtx context.Context) error {
		for _, n := range flatNumbers {
			n = utils.SanitizeString(n)
			if n == "" {
				return fmt.Errorf("%w: empty flat number", ErrInvalidInput)
			}
			flat := entity.Flat{BlockID: blockID, FlatNumber: n}
			if err := s.blockRepo.CreateFlat(txCtx, &flat); err != nil {
				return fmt.Errorf("create flat %s: %w", n, err)
			}
			flats = append(flats, flat)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to add flats", "error", err, "block_id", blockID)
		return nil, err
	}

	s.logger.Info("Flats added", "block_id", blockID, "count", len(flats))
	return flats, nil
}

// ListBlocks returns the apartment's blocks
func (s *registryServiceImpl) ListBlocks(ctx context.Context, apartmentID string) ([]entity.Block, error) {
	return s.blockRepo.ListBlocks(ctx, apartmentID)
}

// DefineCollection validates and stores a new expected collection
func (s *registryServiceImpl) DefineCollection(ctx context.Context, input DefineCollectionInput) (*entity.ExpectedCollection, error) {
	if err := validateCollection(&input); err != nil {
		return nil, err
	}

	collection := &entity.ExpectedCollection{
		ApartmentID:   input.ApartmentID,
		PaymentType:   input.PaymentType,
		Quarter:       input.Quarter,
		FinancialYear: input.FinancialYear,
		DueDate:       input.DueDate,
		AmountDue:     input.AmountDue,
		DailyFine:     input.DailyFine,
		IsActive:      input.IsActive,
	}
	if err := s.collectionRepo.Create(ctx, collection); err != nil {
		s.logger.Error("Failed to define collection", "error", err, "apartment_id", input.ApartmentID)
		return nil, err
	}

	s.logger.Info("Collection defined",
		"id", collection.ID,
		"apartment_id", collection.ApartmentID,
		"payment_type", collection.PaymentType,
		"quarter", collection.Quarter,
		"financial_year", collection.FinancialYear,
	)
	return collection, nil
}

func validateCollection(in *DefineCollectionInput) error {
	in.PaymentType = strings.ToLower(utils.SanitizeString(in.PaymentType))
	in.Quarter = strings.ToUpper(utils.SanitizeString(in.Quarter))
	in.FinancialYear = strings.ToUpper(utils.SanitizeString(in.FinancialYear))

	if in.ApartmentID == "" {
		return fmt.Errorf("%w: apartment id is required", ErrInvalidInput)
	}
	if !entity.IsValidPaymentType(in.PaymentType) {
		return fmt.Errorf("%w: unknown payment type %q", ErrInvalidInput, in.PaymentType)
	}
	if err := utils.ValidateQuarter(in.Quarter); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := utils.ValidateFinancialYear(in.FinancialYear); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if in.DueDate.IsZero() {
		return fmt.Errorf("%w: due date is required", ErrInvalidInput)
	}
	if err := utils.ValidatePositiveAmount(in.AmountDue); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := utils.ValidateAmount(in.DailyFine); err != nil {
		return fmt.Errorf("%w: daily fine: %v", ErrInvalidInput, err)
	}
	return nil
}

// ListCollections returns collections ordered by due date
func (s *registryServiceImpl) ListCollections(ctx context.Context, apartmentID string, activeOnly bool) ([]entity.ExpectedCollection, error) {
	collections, err := s.collectionRepo.ListByApartment(ctx, apartmentID, activeOnly)
	if err != nil {
		s.logger.Error("Failed to list collections", "error", err, "apartment_id", apartmentID)
		return nil, err
	}
	return collections, nil
}
