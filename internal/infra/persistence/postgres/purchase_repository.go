// Package postgres contains the concrete implementation of the persistence layer using GORM and PostgreSQL.
package postgres

import (
	"context"

	"shelflife/internal/domain/entity"
	domainerrors "shelflife/internal/domain/errors"
	"shelflife/internal/domain/repository"
	"shelflife/internal/infra/persistence/model"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// purchaseRepository implements the repository.PurchaseRepository interface.
// Purchase records are append-only; the repository exposes no update or
// delete.
type purchaseRepository struct {
	db *gorm.DB
}

// NewPurchaseRepository is the constructor for purchaseRepository.
func NewPurchaseRepository(db *gorm.DB) repository.PurchaseRepository {
	return &purchaseRepository{db: db}
}

// Create persists a new purchase record together with its line items.
// GORM's association handling inserts the items in the same statement batch.
func (repo *purchaseRepository) Create(ctx context.Context, record *entity.PurchaseRecord) error {
	recordM := fromPurchaseDomain(record)

	if err := repo.db.WithContext(ctx).Create(recordM).Error; err != nil {
		// Convert PostgreSQL errors to repository errors
		if isUniqueConstraintViolation(err) {
			return repository.ErrDuplicateReceipt
		}
		if isForeignKeyConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("invalid customer, store or product reference")
		}
		if isCheckConstraintViolation(err) {
			return domainerrors.ErrValidationFailed.WrapMessage("quantity or amount out of range")
		}
		// For other database errors, return a generic database error
		return domainerrors.NewDatabaseExecuteError(err, "failed to create purchase record")
	}

	// Update the entity with generated values
	record.ID = recordM.ID

	return nil
}

// FindByID retrieves a purchase record with its line items.
func (repo *purchaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.PurchaseRecord, error) {
	var recordM model.PurchaseRecordModel

	if err := repo.db.WithContext(ctx).
		Preload("Items").
		Where("id = ?", id).
		First(&recordM).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPurchaseNotFound
		}

		return nil, errors.Wrap(err, "failed to find purchase by id")
	}

	return toPurchaseDomain(&recordM), nil
}

// FindByCustomer retrieves a customer's purchase history, newest first.
func (repo *purchaseRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.PurchaseRecord, error) {
	return repo.findRecords(ctx, "customer_id = ?", customerID, limit, offset)
}

// FindByStore retrieves all purchases recorded at a store, newest first.
func (repo *purchaseRepository) FindByStore(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]*entity.PurchaseRecord, error) {
	return repo.findRecords(ctx, "store_id = ?", storeID, limit, offset)
}

func (repo *purchaseRepository) findRecords(ctx context.Context, condition string, id uuid.UUID, limit, offset int) ([]*entity.PurchaseRecord, error) {
	var recordModels []*model.PurchaseRecordModel

	query := repo.db.WithContext(ctx).
		Preload("Items").
		Where(condition, id).
		Order("purchased_at DESC")

	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}

	if err := query.Find(&recordModels).Error; err != nil {
		return nil, errors.Wrap(err, "failed to find purchase records")
	}

	records := make([]*entity.PurchaseRecord, 0, len(recordModels))
	for _, recordM := range recordModels {
		records = append(records, toPurchaseDomain(recordM))
	}

	return records, nil
}

// --- Mapper Functions ---

// toPurchaseDomain converts a GORM PurchaseRecordModel to a domain PurchaseRecord entity.
func toPurchaseDomain(data *model.PurchaseRecordModel) *entity.PurchaseRecord {
	if data == nil {
		return nil
	}

	items := make([]entity.PurchaseItem, 0, len(data.Items))
	for _, itemM := range data.Items {
		items = append(items, entity.PurchaseItem{
			ProductID:   itemM.ProductID,
			ProductName: itemM.ProductName,
			Quantity:    itemM.Quantity,
			UnitPrice:   itemM.UnitPrice,
			ExpiryDate:  itemM.ExpiryDate,
		})
	}

	return &entity.PurchaseRecord{
		ID:            data.ID,
		ReceiptNumber: data.ReceiptNumber,
		CustomerID:    data.CustomerID,
		StoreID:       data.StoreID,
		Items:         items,
		TotalAmount:   data.TotalAmount,
		PaymentMethod: entity.PaymentMethod(data.PaymentMethod),
		PurchasedAt:   data.PurchasedAt,
	}
}

// fromPurchaseDomain converts a domain PurchaseRecord entity to a GORM PurchaseRecordModel.
func fromPurchaseDomain(data *entity.PurchaseRecord) *model.PurchaseRecordModel {
	if data == nil {
		return nil
	}

	items := make([]model.PurchaseItemModel, 0, len(data.Items))
	for _, item := range data.Items {
		items = append(items, model.PurchaseItemModel{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			ExpiryDate:  item.ExpiryDate,
		})
	}

	return &model.PurchaseRecordModel{
		ID:            data.ID,
		ReceiptNumber: data.ReceiptNumber,
		CustomerID:    data.CustomerID,
		StoreID:       data.StoreID,
		Items:         items,
		TotalAmount:   data.TotalAmount,
		PaymentMethod: data.PaymentMethod.String(),
		PurchasedAt:   data.PurchasedAt,
	}
}
