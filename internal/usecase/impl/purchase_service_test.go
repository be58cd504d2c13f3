package impl

import (
	"context"
	"testing"
	"time"

	"shelflife/internal/domain/entity"
	domainerrors "shelflife/internal/domain/errors"
	"shelflife/internal/domain/repository"
	"shelflife/internal/domain/service"
	mockRepo "shelflife/internal/mocks/repository"
	mockSvc "shelflife/internal/mocks/service"
	"shelflife/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// purchaseServiceFixtures holds all test dependencies for purchase service tests.
type purchaseServiceFixtures struct {
	service        usecase.PurchaseUsecase
	txManager      *mockRepo.MockTransactionManager
	purchaseRepo   *mockRepo.MockPurchaseRepository
	userRepo       *mockRepo.MockUserRepository
	eventPublisher *mockSvc.MockEventPublisher
	qrCodeService  *mockSvc.MockQRCodeService
}

func createTestPurchaseService(t *testing.T) purchaseServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	purchaseRepo := mockRepo.NewMockPurchaseRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)
	eventPublisher := mockSvc.NewMockEventPublisher(t)
	qrCodeService := mockSvc.NewMockQRCodeService(t)

	svc := NewPurchaseService(PurchaseServiceParams{
		TxManager:      txManager,
		PurchaseRepo:   purchaseRepo,
		UserRepo:       userRepo,
		EventPublisher: eventPublisher,
		QRCodeService:  qrCodeService,
		Logger:         newDiscardLogger(),
	})

	return purchaseServiceFixtures{
		service:        svc,
		txManager:      txManager,
		purchaseRepo:   purchaseRepo,
		userRepo:       userRepo,
		eventPublisher: eventPublisher,
		qrCodeService:  qrCodeService,
	}
}

func TestPurchaseService_RecordPurchase_Success(t *testing.T) {
	fixtures := createTestPurchaseService(t)

	ctx := context.Background()
	customerID := uuid.New()
	storeID := uuid.New()

	milk := newTestProduct(storeID, "Whole Milk 1L", 40, time.Now().AddDate(0, 0, 14))
	milk.Price = 2.5
	bread := newTestProduct(storeID, "Sourdough Loaf", 8, time.Now().AddDate(0, 0, 2))
	bread.Price = 4.0

	input := &usecase.RecordPurchaseInput{
		StoreID: storeID,
		Lines: []usecase.PurchaseLine{
			{ProductID: milk.ID, Quantity: 2},
			{ProductID: bread.ID, Quantity: 1},
		},
		PaymentMethod: entity.PaymentCard,
	}

	fixtures.userRepo.EXPECT().FindByID(ctx, customerID).Return(newTestCustomer(customerID), nil)

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockPurchaseRepo := mockRepo.NewMockPurchaseRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockFactory.EXPECT().PurchaseRepo().Return(mockPurchaseRepo)

			mockProductRepo.EXPECT().FindByID(ctx, milk.ID).Return(milk, nil)
			mockProductRepo.EXPECT().DecrementStock(ctx, milk.ID, 2).Return(nil)
			mockProductRepo.EXPECT().FindByID(ctx, bread.ID).Return(bread, nil)
			mockProductRepo.EXPECT().DecrementStock(ctx, bread.ID, 1).Return(nil)

			mockPurchaseRepo.EXPECT().
				Create(ctx, mock.AnythingOfType("*entity.PurchaseRecord")).
				Run(func(ctx context.Context, record *entity.PurchaseRecord) {
					record.ID = uuid.New()
				}).
				Return(nil)

			return fn(mockFactory)
		})

	fixtures.eventPublisher.EXPECT().
		PublishPurchaseEvent(ctx, mock.AnythingOfType("*service.PurchaseEvent")).
		Run(func(ctx context.Context, event *service.PurchaseEvent) {
			assert.Equal(t, storeID.String(), event.StoreID)
			assert.Equal(t, 3, event.ItemCount)
		}).
		Return(nil)

	record, err := fixtures.service.RecordPurchase(ctx, customerID, input)

	require.NoError(t, err)
	assert.Len(t, record.Items, 2)
	assert.InDelta(t, 9.0, record.TotalAmount, 1e-9)
	assert.NotEmpty(t, record.ReceiptNumber)
	// Snapshots are frozen at purchase time.
	assert.Equal(t, "Whole Milk 1L", record.Items[0].ProductName)
	assert.Equal(t, 2.5, record.Items[0].UnitPrice)
}

func TestPurchaseService_RecordPurchase_InsufficientStock(t *testing.T) {
	fixtures := createTestPurchaseService(t)

	ctx := context.Background()
	customerID := uuid.New()
	storeID := uuid.New()

	milk := newTestProduct(storeID, "Whole Milk 1L", 1, time.Now().AddDate(0, 0, 14))

	input := &usecase.RecordPurchaseInput{
		StoreID:       storeID,
		Lines:         []usecase.PurchaseLine{{ProductID: milk.ID, Quantity: 5}},
		PaymentMethod: entity.PaymentCash,
	}

	fixtures.userRepo.EXPECT().FindByID(ctx, customerID).Return(newTestCustomer(customerID), nil)

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockPurchaseRepo := mockRepo.NewMockPurchaseRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockFactory.EXPECT().PurchaseRepo().Return(mockPurchaseRepo).Maybe()

			mockProductRepo.EXPECT().FindByID(ctx, milk.ID).Return(milk, nil)
			mockProductRepo.EXPECT().
				DecrementStock(ctx, milk.ID, 5).
				Return(repository.ErrInsufficientStock)

			return fn(mockFactory)
		})

	record, err := fixtures.service.RecordPurchase(ctx, customerID, input)

	assert.Nil(t, record)
	assert.ErrorIs(t, err, domainerrors.ErrInsufficientStock)
}

func TestPurchaseService_RecordPurchase_EmptyLines(t *testing.T) {
	fixtures := createTestPurchaseService(t)

	record, err := fixtures.service.RecordPurchase(context.Background(), uuid.New(), &usecase.RecordPurchaseInput{
		StoreID:       uuid.New(),
		PaymentMethod: entity.PaymentCash,
	})

	assert.Nil(t, record)
	assert.ErrorIs(t, err, domainerrors.ErrEmptyPurchase)
}

func TestPurchaseService_RecordPurchase_NonPositiveQuantity(t *testing.T) {
	fixtures := createTestPurchaseService(t)

	record, err := fixtures.service.RecordPurchase(context.Background(), uuid.New(), &usecase.RecordPurchaseInput{
		StoreID:       uuid.New(),
		Lines:         []usecase.PurchaseLine{{ProductID: uuid.New(), Quantity: 0}},
		PaymentMethod: entity.PaymentCash,
	})

	assert.Nil(t, record)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestPurchaseService_RecordPurchase_InactiveProduct(t *testing.T) {
	fixtures := createTestPurchaseService(t)

	ctx := context.Background()
	customerID := uuid.New()
	storeID := uuid.New()

	retired := newTestProduct(storeID, "Retired Item", 10, time.Now().AddDate(0, 0, 14))
	retired.IsActive = false

	input := &usecase.RecordPurchaseInput{
		StoreID:       storeID,
		Lines:         []usecase.PurchaseLine{{ProductID: retired.ID, Quantity: 1}},
		PaymentMethod: entity.PaymentMobile,
	}

	fixtures.userRepo.EXPECT().FindByID(ctx, customerID).Return(newTestCustomer(customerID), nil)

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockPurchaseRepo := mockRepo.NewMockPurchaseRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockFactory.EXPECT().PurchaseRepo().Return(mockPurchaseRepo).Maybe()

			mockProductRepo.EXPECT().FindByID(ctx, retired.ID).Return(retired, nil)

			return fn(mockFactory)
		})

	record, err := fixtures.service.RecordPurchase(ctx, customerID, input)

	assert.Nil(t, record)
	assert.ErrorIs(t, err, domainerrors.ErrProductInactive)
}

func TestPurchaseService_RecordPurchase_ProductFromAnotherStore(t *testing.T) {
	fixtures := createTestPurchaseService(t)

	ctx := context.Background()
	customerID := uuid.New()
	storeID := uuid.New()

	foreign := newTestProduct(uuid.New(), "Foreign Item", 10, time.Now().AddDate(0, 0, 14))

	input := &usecase.RecordPurchaseInput{
		StoreID:       storeID,
		Lines:         []usecase.PurchaseLine{{ProductID: foreign.ID, Quantity: 1}},
		PaymentMethod: entity.PaymentCash,
	}

	fixtures.userRepo.EXPECT().FindByID(ctx, customerID).Return(newTestCustomer(customerID), nil)

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)
			mockPurchaseRepo := mockRepo.NewMockPurchaseRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockFactory.EXPECT().PurchaseRepo().Return(mockPurchaseRepo).Maybe()

			mockProductRepo.EXPECT().FindByID(ctx, foreign.ID).Return(foreign, nil)

			return fn(mockFactory)
		})

	record, err := fixtures.service.RecordPurchase(ctx, customerID, input)

	assert.Nil(t, record)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestPurchaseService_RecordPurchase_AdminWithoutCustomerRole(t *testing.T) {
	fixtures := createTestPurchaseService(t)

	ctx := context.Background()
	actorID := uuid.New()

	fixtures.userRepo.EXPECT().FindByID(ctx, actorID).Return(newTestAdmin(actorID), nil)

	record, err := fixtures.service.RecordPurchase(ctx, actorID, &usecase.RecordPurchaseInput{
		StoreID:       uuid.New(),
		Lines:         []usecase.PurchaseLine{{ProductID: uuid.New(), Quantity: 1}},
		PaymentMethod: entity.PaymentCash,
	})

	assert.Nil(t, record)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestPurchaseService_GetPurchase_CustomerCanRead(t *testing.T) {
	fixtures := createTestPurchaseService(t)

	ctx := context.Background()
	customerID := uuid.New()
	record := &entity.PurchaseRecord{
		ID:         uuid.New(),
		CustomerID: customerID,
		StoreID:    uuid.New(),
	}

	fixtures.purchaseRepo.EXPECT().FindByID(ctx, record.ID).Return(record, nil)
	fixtures.userRepo.EXPECT().FindByID(ctx, customerID).Return(newTestCustomer(customerID), nil)

	got, err := fixtures.service.GetPurchase(ctx, customerID, record.ID)

	require.NoError(t, err)
	assert.Equal(t, record, got)
}

func TestPurchaseService_GetPurchase_StrangerForbidden(t *testing.T) {
	fixtures := createTestPurchaseService(t)

	ctx := context.Background()
	strangerID := uuid.New()
	record := &entity.PurchaseRecord{
		ID:         uuid.New(),
		CustomerID: uuid.New(),
		StoreID:    uuid.New(),
	}

	fixtures.purchaseRepo.EXPECT().FindByID(ctx, record.ID).Return(record, nil)
	fixtures.userRepo.EXPECT().FindByID(ctx, strangerID).Return(newTestCustomer(strangerID), nil)

	got, err := fixtures.service.GetPurchase(ctx, strangerID, record.ID)

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestPurchaseService_CustomerHistory_NormalizesPaging(t *testing.T) {
	fixtures := createTestPurchaseService(t)

	ctx := context.Background()
	customerID := uuid.New()

	fixtures.purchaseRepo.EXPECT().
		FindByCustomer(ctx, customerID, defaultHistoryLimit, 0).
		Return([]*entity.PurchaseRecord{}, nil)

	got, err := fixtures.service.CustomerHistory(ctx, customerID, -5, -3)

	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestPurchaseService_ReceiptQR_Success(t *testing.T) {
	fixtures := createTestPurchaseService(t)

	ctx := context.Background()
	customerID := uuid.New()
	record := &entity.PurchaseRecord{
		ID:            uuid.New(),
		ReceiptNumber: "R-20250101-ABCDEF12",
		CustomerID:    customerID,
		StoreID:       uuid.New(),
	}

	fixtures.purchaseRepo.EXPECT().FindByID(ctx, record.ID).Return(record, nil)
	fixtures.userRepo.EXPECT().FindByID(ctx, customerID).Return(newTestCustomer(customerID), nil)
	fixtures.qrCodeService.EXPECT().
		GenerateReceiptQR(record.ID, record.ReceiptNumber).
		Return([]byte("png-bytes"), nil)

	png, err := fixtures.service.ReceiptQR(ctx, customerID, record.ID)

	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), png)
}
