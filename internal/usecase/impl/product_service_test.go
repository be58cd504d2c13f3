package impl

import (
	"context"
	"testing"
	"time"

	"shelflife/internal/domain/entity"
	domainerrors "shelflife/internal/domain/errors"
	"shelflife/internal/domain/repository"
	mockRepo "shelflife/internal/mocks/repository"
	"shelflife/internal/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// productServiceFixtures holds all test dependencies for product service tests.
type productServiceFixtures struct {
	service     usecase.ProductUsecase
	txManager   *mockRepo.MockTransactionManager
	productRepo *mockRepo.MockProductRepository
	userRepo    *mockRepo.MockUserRepository
}

func createTestProductService(t *testing.T) productServiceFixtures {
	txManager := mockRepo.NewMockTransactionManager(t)
	productRepo := mockRepo.NewMockProductRepository(t)
	userRepo := mockRepo.NewMockUserRepository(t)

	service := NewProductService(ProductServiceParams{
		TxManager:   txManager,
		ProductRepo: productRepo,
		UserRepo:    userRepo,
		Logger:      newDiscardLogger(),
	})

	return productServiceFixtures{
		service:     service,
		txManager:   txManager,
		productRepo: productRepo,
		userRepo:    userRepo,
	}
}

func TestProductService_CreateProduct_Success(t *testing.T) {
	fixtures := createTestProductService(t)

	ctx := context.Background()
	storeID := uuid.New()
	input := &usecase.CreateProductInput{
		Barcode:    "4710088410139",
		Name:       "Whole Milk 1L",
		Category:   entity.CategoryDairy,
		Price:      2.5,
		Stock:      40,
		ExpiryDate: time.Now().AddDate(0, 0, 14),
	}

	fixtures.userRepo.EXPECT().FindByID(ctx, storeID).Return(newTestAdmin(storeID), nil)
	fixtures.productRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Product")).
		Run(func(ctx context.Context, product *entity.Product) {
			product.ID = uuid.New()
		}).
		Return(nil)

	product, err := fixtures.service.CreateProduct(ctx, storeID, input)

	require.NoError(t, err)
	assert.Equal(t, storeID, product.StoreID)
	assert.Equal(t, input.Barcode, product.Barcode)
	assert.True(t, product.IsActive)
}

func TestProductService_CreateProduct_DuplicateBarcode(t *testing.T) {
	fixtures := createTestProductService(t)

	ctx := context.Background()
	storeID := uuid.New()
	input := &usecase.CreateProductInput{
		Barcode:    "4710088410139",
		Name:       "Whole Milk 1L",
		Category:   entity.CategoryDairy,
		Price:      2.5,
		Stock:      40,
		ExpiryDate: time.Now().AddDate(0, 0, 14),
	}

	fixtures.userRepo.EXPECT().FindByID(ctx, storeID).Return(newTestAdmin(storeID), nil)
	fixtures.productRepo.EXPECT().
		Create(ctx, mock.AnythingOfType("*entity.Product")).
		Return(repository.ErrDuplicateBarcode)

	product, err := fixtures.service.CreateProduct(ctx, storeID, input)

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domainerrors.ErrBarcodeAlreadyExists)
}

func TestProductService_CreateProduct_CustomerForbidden(t *testing.T) {
	fixtures := createTestProductService(t)

	ctx := context.Background()
	actorID := uuid.New()
	input := &usecase.CreateProductInput{
		Barcode:  "4710088410139",
		Name:     "Whole Milk 1L",
		Category: entity.CategoryDairy,
	}

	fixtures.userRepo.EXPECT().FindByID(ctx, actorID).Return(newTestCustomer(actorID), nil)

	product, err := fixtures.service.CreateProduct(ctx, actorID, input)

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
}

func TestProductService_CreateProduct_InvalidCategory(t *testing.T) {
	fixtures := createTestProductService(t)

	ctx := context.Background()
	storeID := uuid.New()
	input := &usecase.CreateProductInput{
		Barcode:  "4710088410139",
		Name:     "Mystery Item",
		Category: entity.Category("gadgets"),
	}

	fixtures.userRepo.EXPECT().FindByID(ctx, storeID).Return(newTestAdmin(storeID), nil)

	product, err := fixtures.service.CreateProduct(ctx, storeID, input)

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestProductService_UpdateProduct_PartialEdit(t *testing.T) {
	fixtures := createTestProductService(t)

	ctx := context.Background()
	storeID := uuid.New()
	existing := newTestProduct(storeID, "Whole Milk 1L", 40, time.Now().AddDate(0, 0, 14))

	newPrice := 2.9
	input := &usecase.UpdateProductInput{Price: &newPrice}

	fixtures.userRepo.EXPECT().FindByID(ctx, storeID).Return(newTestAdmin(storeID), nil)
	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)

			mockProductRepo.EXPECT().FindByID(ctx, existing.ID).Return(existing, nil)
			mockProductRepo.EXPECT().
				Update(ctx, mock.AnythingOfType("*entity.Product")).
				Return(nil)

			return fn(mockFactory)
		})

	updated, err := fixtures.service.UpdateProduct(ctx, storeID, existing.ID, input)

	require.NoError(t, err)
	assert.Equal(t, 2.9, updated.Price)
	// Untouched fields keep their values.
	assert.Equal(t, "Whole Milk 1L", updated.Name)
	assert.Equal(t, 40, updated.Stock)
}

func TestProductService_UpdateProduct_OwnershipViolation(t *testing.T) {
	fixtures := createTestProductService(t)

	ctx := context.Background()
	actorID := uuid.New()
	otherStore := uuid.New()
	existing := newTestProduct(otherStore, "Whole Milk 1L", 40, time.Now().AddDate(0, 0, 14))

	name := "Renamed"
	input := &usecase.UpdateProductInput{Name: &name}

	fixtures.userRepo.EXPECT().FindByID(ctx, actorID).Return(newTestAdmin(actorID), nil)
	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockProductRepo.EXPECT().FindByID(ctx, existing.ID).Return(existing, nil)

			return fn(mockFactory)
		})

	updated, err := fixtures.service.UpdateProduct(ctx, actorID, existing.ID, input)

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrProductOwnershipViolation)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	fixtures := createTestProductService(t)

	ctx := context.Background()
	storeID := uuid.New()
	productID := uuid.New()
	name := "Renamed"

	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockProductRepo.EXPECT().FindByID(ctx, productID).Return(nil, repository.ErrProductNotFound)

			return fn(mockFactory)
		})

	updated, err := fixtures.service.UpdateProduct(ctx, storeID, productID, &usecase.UpdateProductInput{Name: &name})

	assert.Nil(t, updated)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}

func TestProductService_AdjustStock_RejectsNegative(t *testing.T) {
	fixtures := createTestProductService(t)

	product, err := fixtures.service.AdjustStock(context.Background(), uuid.New(), uuid.New(), -1)

	assert.Nil(t, product)
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestProductService_DeactivateProduct_Success(t *testing.T) {
	fixtures := createTestProductService(t)

	ctx := context.Background()
	storeID := uuid.New()
	existing := newTestProduct(storeID, "Whole Milk 1L", 0, time.Now().AddDate(0, 0, -1))

	fixtures.userRepo.EXPECT().FindByID(ctx, storeID).Return(newTestAdmin(storeID), nil)
	fixtures.txManager.EXPECT().
		Execute(ctx, mock.AnythingOfType("func(repository.RepositoryFactory) error")).
		RunAndReturn(func(ctx context.Context, fn func(repository.RepositoryFactory) error) error {
			mockFactory := mockRepo.NewMockRepositoryFactory(t)
			mockProductRepo := mockRepo.NewMockProductRepository(t)

			mockFactory.EXPECT().ProductRepo().Return(mockProductRepo)
			mockProductRepo.EXPECT().FindByID(ctx, existing.ID).Return(existing, nil)
			mockProductRepo.EXPECT().Deactivate(ctx, existing.ID).Return(nil)

			return fn(mockFactory)
		})

	err := fixtures.service.DeactivateProduct(ctx, storeID, existing.ID)

	require.NoError(t, err)
}

func TestProductService_ListStoreProducts_ActiveOnly(t *testing.T) {
	fixtures := createTestProductService(t)

	ctx := context.Background()
	storeID := uuid.New()
	products := []*entity.Product{
		newTestProduct(storeID, "Milk", 10, time.Now().AddDate(0, 0, 5)),
		newTestProduct(storeID, "Bread", 3, time.Now().AddDate(0, 0, 2)),
	}

	fixtures.productRepo.EXPECT().FindByStore(ctx, storeID, true).Return(products, nil)

	got, err := fixtures.service.ListStoreProducts(ctx, storeID, false)

	require.NoError(t, err)
	assert.Len(t, got, 2)
}

func TestProductService_GetProductByBarcode_NotFound(t *testing.T) {
	fixtures := createTestProductService(t)

	ctx := context.Background()

	fixtures.productRepo.EXPECT().
		FindByBarcode(ctx, "0000000000000").
		Return(nil, repository.ErrProductNotFound)

	got, err := fixtures.service.GetProductByBarcode(ctx, "0000000000000")

	assert.Nil(t, got)
	assert.ErrorIs(t, err, domainerrors.ErrProductNotFound)
}
