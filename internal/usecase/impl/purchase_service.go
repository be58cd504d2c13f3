package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	deliverycontext "shelflife/internal/delivery/context"
	"shelflife/internal/domain/entity"
	domainerrors "shelflife/internal/domain/errors"
	"shelflife/internal/domain/repository"
	"shelflife/internal/domain/service"
	"shelflife/internal/usecase"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"go.uber.org/fx"
)

const defaultHistoryLimit = 50

// purchaseService implements the PurchaseUsecase interface.
type purchaseService struct {
	txManager      repository.TransactionManager
	purchaseRepo   repository.PurchaseRepository
	userRepo       repository.UserRepository
	eventPublisher service.EventPublisher
	qrCodeService  service.QRCodeService
	logger         *slog.Logger
}

// PurchaseServiceParams holds dependencies for PurchaseService, injected by Fx.
type PurchaseServiceParams struct {
	fx.In

	TxManager      repository.TransactionManager
	PurchaseRepo   repository.PurchaseRepository
	UserRepo       repository.UserRepository
	EventPublisher service.EventPublisher
	QRCodeService  service.QRCodeService
	Logger         *slog.Logger
}

// NewPurchaseService is the constructor for purchaseService.
func NewPurchaseService(params PurchaseServiceParams) usecase.PurchaseUsecase {
	return &purchaseService{
		txManager:      params.TxManager,
		purchaseRepo:   params.PurchaseRepo,
		userRepo:       params.UserRepo,
		eventPublisher: params.EventPublisher,
		qrCodeService:  params.QRCodeService,
		logger:         params.Logger,
	}
}

func (srv *purchaseService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// RecordPurchase atomically validates and decrements stock for every line,
// freezes line-item snapshots and persists the record. Any insufficient line
// rolls back the whole purchase.
func (srv *purchaseService) RecordPurchase(ctx context.Context, customerID uuid.UUID, input *usecase.RecordPurchaseInput) (*entity.PurchaseRecord, error) {
	srv.log(ctx).Info("Recording purchase", slog.Any("customerID", customerID), slog.Any("storeID", input.StoreID), slog.Int("lines", len(input.Lines)))

	if len(input.Lines) == 0 {
		return nil, errors.Wrap(domainerrors.ErrEmptyPurchase, "purchase must contain at least one line")
	}
	for _, line := range input.Lines {
		if line.Quantity <= 0 {
			return nil, errors.Wrap(domainerrors.ErrValidationFailed, "line quantity must be positive")
		}
	}

	customer, err := srv.userRepo.FindByID(ctx, customerID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, errors.Wrap(domainerrors.ErrUserNotFound, "customer not found")
		}

		return nil, errors.Wrap(err, "failed to load customer")
	}
	if err := service.Authorize(customer.Roles(), customerID, customerID, service.ActionRecordPurchase); err != nil {
		return nil, err
	}

	var record *entity.PurchaseRecord
	err = srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()
		purchaseRepo := repoFactory.PurchaseRepo()

		items, total, err := srv.collectLines(ctx, productRepo, input)
		if err != nil {
			return err
		}

		record = &entity.PurchaseRecord{
			ReceiptNumber: newReceiptNumber(),
			CustomerID:    customerID,
			StoreID:       input.StoreID,
			Items:         items,
			TotalAmount:   total,
			PaymentMethod: input.PaymentMethod,
			PurchasedAt:   time.Now().UTC(),
		}

		if err := purchaseRepo.Create(ctx, record); err != nil {
			return errors.Wrap(err, "failed to create purchase record")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to record purchase", slog.Any("customerID", customerID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute purchase transaction")
	}

	srv.publishPurchaseEvent(ctx, record)

	srv.log(ctx).Debug("Purchase recorded", slog.Any("purchaseID", record.ID), slog.String("receipt", record.ReceiptNumber))

	return record, nil
}

// collectLines validates each requested line against live inventory and
// decrements stock with a guarded update. Snapshots are frozen here so later
// product edits never rewrite history.
func (srv *purchaseService) collectLines(ctx context.Context, productRepo repository.ProductRepository, input *usecase.RecordPurchaseInput) ([]entity.PurchaseItem, float64, error) {
	items := make([]entity.PurchaseItem, 0, len(input.Lines))
	var total float64

	for _, line := range input.Lines {
		product, err := productRepo.FindByID(ctx, line.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return nil, 0, errors.Wrap(domainerrors.ErrProductNotFound, "purchase references unknown product")
			}

			return nil, 0, errors.Wrap(err, "failed to load product for purchase")
		}

		if product.StoreID != input.StoreID {
			return nil, 0, errors.Wrap(domainerrors.ErrValidationFailed, "product belongs to another store")
		}
		if !product.IsActive {
			return nil, 0, errors.Wrap(domainerrors.ErrProductInactive, "product is no longer sold")
		}

		if err := productRepo.DecrementStock(ctx, product.ID, line.Quantity); err != nil {
			if errors.Is(err, repository.ErrInsufficientStock) {
				return nil, 0, domainerrors.ErrInsufficientStock.WrapMessage(
					fmt.Sprintf("insufficient stock for %s", product.Name))
			}

			return nil, 0, errors.Wrap(err, "failed to decrement stock")
		}

		items = append(items, entity.PurchaseItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			Quantity:    line.Quantity,
			UnitPrice:   product.Price,
			ExpiryDate:  product.ExpiryDate,
		})
		total += product.Price * float64(line.Quantity)
	}

	return items, total, nil
}

// newReceiptNumber builds a human-readable receipt number. Uniqueness is
// enforced by the database constraint, the UUID fragment keeps collisions
// out of normal operation.
func newReceiptNumber() string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])

	return fmt.Sprintf("R-%s-%s", time.Now().UTC().Format("20060102"), fragment)
}

// publishPurchaseEvent publishes after the transaction commits. Delivery is
// best-effort: a broker outage must not fail a completed sale.
func (srv *purchaseService) publishPurchaseEvent(ctx context.Context, record *entity.PurchaseRecord) {
	if srv.eventPublisher == nil {
		return
	}

	event := &service.PurchaseEvent{
		RequestID:     deliverycontext.GetRequestIDFromContext(ctx),
		PurchaseID:    record.ID.String(),
		ReceiptNumber: record.ReceiptNumber,
		StoreID:       record.StoreID.String(),
		CustomerID:    record.CustomerID.String(),
		TotalAmount:   record.TotalAmount,
		ItemCount:     record.ItemCount(),
		PurchasedAt:   record.PurchasedAt,
	}

	if err := srv.eventPublisher.PublishPurchaseEvent(ctx, event); err != nil {
		srv.log(ctx).Warn("Failed to publish purchase event", slog.Any("purchaseID", record.ID), slog.Any("error", err))
	}
}

// GetPurchase retrieves one purchase visible to the given actor.
func (srv *purchaseService) GetPurchase(ctx context.Context, actorID uuid.UUID, purchaseID uuid.UUID) (*entity.PurchaseRecord, error) {
	record, err := srv.purchaseRepo.FindByID(ctx, purchaseID)
	if err != nil {
		if errors.Is(err, repository.ErrPurchaseNotFound) {
			return nil, errors.Wrap(domainerrors.ErrPurchaseNotFound, "purchase not found")
		}

		return nil, errors.Wrap(err, "failed to find purchase by id")
	}

	if err := srv.authorizePurchaseView(ctx, actorID, record); err != nil {
		return nil, err
	}

	return record, nil
}

func (srv *purchaseService) authorizePurchaseView(ctx context.Context, actorID uuid.UUID, record *entity.PurchaseRecord) error {
	actor, err := srv.userRepo.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "actor not found")
		}

		return errors.Wrap(err, "failed to load actor")
	}

	ownerID := record.CustomerID
	if actorID == record.StoreID {
		ownerID = record.StoreID
	}

	return service.Authorize(actor.Roles(), actorID, ownerID, service.ActionViewPurchase)
}

// CustomerHistory lists a customer's purchases, newest first.
func (srv *purchaseService) CustomerHistory(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.PurchaseRecord, error) {
	limit, offset = normalizePage(limit, offset)

	records, err := srv.purchaseRepo.FindByCustomer(ctx, customerID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list customer purchases")
	}

	return records, nil
}

// StoreSales lists purchases recorded at a store, newest first.
func (srv *purchaseService) StoreSales(ctx context.Context, storeID uuid.UUID, limit, offset int) ([]*entity.PurchaseRecord, error) {
	limit, offset = normalizePage(limit, offset)

	records, err := srv.purchaseRepo.FindByStore(ctx, storeID, limit, offset)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list store purchases")
	}

	return records, nil
}

func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 || limit > defaultHistoryLimit {
		limit = defaultHistoryLimit
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}

// ReceiptQR renders the QR code PNG for a purchase receipt.
func (srv *purchaseService) ReceiptQR(ctx context.Context, actorID uuid.UUID, purchaseID uuid.UUID) ([]byte, error) {
	record, err := srv.GetPurchase(ctx, actorID, purchaseID)
	if err != nil {
		return nil, err
	}

	png, err := srv.qrCodeService.GenerateReceiptQR(record.ID, record.ReceiptNumber)
	if err != nil {
		srv.log(ctx).Error("Failed to generate receipt QR code", slog.Any("purchaseID", purchaseID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to generate receipt QR code")
	}

	return png, nil
}
