package impl

import (
	"context"
	"log/slog"

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

// productService implements the ProductUsecase interface.
type productService struct {
	txManager   repository.TransactionManager
	productRepo repository.ProductRepository
	userRepo    repository.UserRepository
	logger      *slog.Logger
}

// ProductServiceParams holds dependencies for ProductService, injected by Fx.
type ProductServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	ProductRepo repository.ProductRepository
	UserRepo    repository.UserRepository
	Logger      *slog.Logger
}

// NewProductService is the constructor for productService.
func NewProductService(params ProductServiceParams) usecase.ProductUsecase {
	return &productService{
		txManager:   params.TxManager,
		productRepo: params.ProductRepo,
		userRepo:    params.UserRepo,
		logger:      params.Logger,
	}
}

func (srv *productService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// authorizeStore verifies the acting user carries the admin role and owns the resource.
func (srv *productService) authorizeStore(ctx context.Context, storeID, ownerID uuid.UUID, action service.Action) error {
	actor, err := srv.userRepo.FindByID(ctx, storeID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return errors.Wrap(domainerrors.ErrUserNotFound, "acting store not found")
		}

		return errors.Wrap(err, "failed to load acting store")
	}

	return service.Authorize(actor.Roles(), storeID, ownerID, action)
}

// CreateProduct creates a product owned by the acting store.
func (srv *productService) CreateProduct(ctx context.Context, storeID uuid.UUID, input *usecase.CreateProductInput) (*entity.Product, error) {
	srv.log(ctx).Info("Creating product", slog.Any("storeID", storeID), slog.String("barcode", input.Barcode))

	if err := srv.authorizeStore(ctx, storeID, storeID, service.ActionManageProduct); err != nil {
		return nil, err
	}

	if !input.Category.IsValid() {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "unknown product category")
	}
	if input.Price < 0 || input.Stock < 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "price and stock must be non-negative")
	}

	product := &entity.Product{
		Barcode:     input.Barcode,
		StoreID:     storeID,
		Name:        input.Name,
		Description: input.Description,
		Category:    input.Category,
		Price:       input.Price,
		Stock:       input.Stock,
		ExpiryDate:  input.ExpiryDate,
		IsActive:    true,
	}

	if err := srv.productRepo.Create(ctx, product); err != nil {
		if errors.Is(err, repository.ErrDuplicateBarcode) {
			return nil, errors.Wrap(domainerrors.ErrBarcodeAlreadyExists, "barcode already registered")
		}
		srv.log(ctx).Error("Failed to create product", slog.Any("storeID", storeID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to create product")
	}

	srv.log(ctx).Debug("Product created", slog.Any("productID", product.ID))

	return product, nil
}

// UpdateProduct applies partial edits to a product the actor owns. The barcode
// is immutable and never written back.
func (srv *productService) UpdateProduct(ctx context.Context, storeID, productID uuid.UUID, input *usecase.UpdateProductInput) (*entity.Product, error) {
	srv.log(ctx).Info("Updating product", slog.Any("storeID", storeID), slog.Any("productID", productID))

	var updated *entity.Product
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		if err := srv.authorizeStore(ctx, storeID, product.StoreID, service.ActionManageProduct); err != nil {
			return err
		}

		if err := applyProductEdits(product, input); err != nil {
			return err
		}

		if err := productRepo.Update(ctx, product); err != nil {
			return errors.Wrap(err, "failed to update product")
		}
		updated = product

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to update product", slog.Any("productID", productID), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute product update transaction")
	}

	return updated, nil
}

func applyProductEdits(product *entity.Product, input *usecase.UpdateProductInput) error {
	if input.Name != nil {
		product.Name = *input.Name
	}
	if input.Description != nil {
		product.Description = *input.Description
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return errors.Wrap(domainerrors.ErrValidationFailed, "unknown product category")
		}
		product.Category = *input.Category
	}
	if input.Price != nil {
		if *input.Price < 0 {
			return errors.Wrap(domainerrors.ErrValidationFailed, "price must be non-negative")
		}
		product.Price = *input.Price
	}
	if input.Stock != nil {
		if *input.Stock < 0 {
			return errors.Wrap(domainerrors.ErrValidationFailed, "stock must be non-negative")
		}
		product.Stock = *input.Stock
	}
	if input.ExpiryDate != nil {
		product.ExpiryDate = *input.ExpiryDate
	}

	return nil
}

// GetProduct retrieves a product by ID.
func (srv *productService) GetProduct(ctx context.Context, productID uuid.UUID) (*entity.Product, error) {
	product, err := srv.productRepo.FindByID(ctx, productID)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to find product by id")
	}

	return product, nil
}

// GetProductByBarcode retrieves a product by its barcode.
func (srv *productService) GetProductByBarcode(ctx context.Context, barcode string) (*entity.Product, error) {
	product, err := srv.productRepo.FindByBarcode(ctx, barcode)
	if err != nil {
		if errors.Is(err, repository.ErrProductNotFound) {
			return nil, errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
		}

		return nil, errors.Wrap(err, "failed to find product by barcode")
	}

	return product, nil
}

// ListStoreProducts lists a store's products, optionally including deactivated ones.
func (srv *productService) ListStoreProducts(ctx context.Context, storeID uuid.UUID, includeInactive bool) ([]*entity.Product, error) {
	srv.log(ctx).Debug("Listing store products", slog.Any("storeID", storeID), slog.Bool("includeInactive", includeInactive))

	products, err := srv.productRepo.FindByStore(ctx, storeID, !includeInactive)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list store products")
	}

	return products, nil
}

// AdjustStock sets a product's stock to a new non-negative quantity.
func (srv *productService) AdjustStock(ctx context.Context, storeID, productID uuid.UUID, stock int) (*entity.Product, error) {
	srv.log(ctx).Info("Adjusting product stock", slog.Any("productID", productID), slog.Int("stock", stock))

	if stock < 0 {
		return nil, errors.Wrap(domainerrors.ErrValidationFailed, "stock must be non-negative")
	}

	return srv.UpdateProduct(ctx, storeID, productID, &usecase.UpdateProductInput{Stock: &stock})
}

// DeactivateProduct soft-deletes a product the actor owns. History referencing
// the product keeps its frozen snapshots.
func (srv *productService) DeactivateProduct(ctx context.Context, storeID, productID uuid.UUID) error {
	srv.log(ctx).Info("Deactivating product", slog.Any("storeID", storeID), slog.Any("productID", productID))

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		productRepo := repoFactory.ProductRepo()

		product, err := productRepo.FindByID(ctx, productID)
		if err != nil {
			if errors.Is(err, repository.ErrProductNotFound) {
				return errors.Wrap(domainerrors.ErrProductNotFound, "product not found")
			}

			return errors.Wrap(err, "failed to find product")
		}

		if err := srv.authorizeStore(ctx, storeID, product.StoreID, service.ActionManageProduct); err != nil {
			return err
		}

		if err := productRepo.Deactivate(ctx, productID); err != nil {
			return errors.Wrap(err, "failed to deactivate product")
		}

		return nil
	})

	if err != nil {
		srv.log(ctx).Warn("Failed to deactivate product", slog.Any("productID", productID), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute product deactivation transaction")
	}

	return nil
}
