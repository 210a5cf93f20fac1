package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/validators"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// productService serves the catalog. Reads are public, mutations belong to
// the supplier owning the product.
type productService struct {
	productRepository store.ProductRepository
	profileRepository store.ProfileRepository
	validator         validators.Validator
	logger            *logger.Logger
}

func NewProductService(productRepository store.ProductRepository, profileRepository store.ProfileRepository, validator validators.Validator, logger *logger.Logger) ProductService {
	return &productService{
		productRepository: productRepository,
		profileRepository: profileRepository,
		validator:         validator,
		logger:            logger,
	}
}

func (s *productService) Products(ctx context.Context, filter models.ProductFilter, page models.PageRequest) (models.Page[models.Product], error) {
	if err := s.validator.Validate(ctx, filter); err != nil {
		return models.Page[models.Product]{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if err := s.validator.Validate(ctx, page); err != nil {
		return models.Page[models.Product]{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return s.productRepository.ListProducts(ctx, filter, page)
}

func (s *productService) ProductsByName(ctx context.Context, name string, page models.PageRequest) (models.Page[models.Product], error) {
	if err := s.validator.Validate(ctx, page); err != nil {
		return models.Page[models.Product]{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	return s.productRepository.SearchProducts(ctx, name, page)
}

func (s *productService) Categories(ctx context.Context) ([]models.Category, error) {
	return s.productRepository.ListCategories(ctx)
}

func (s *productService) RegisterProduct(ctx context.Context, userID int64, product models.RegisterProduct) (models.Product, error) {
	log := logger.FromContext(ctx)

	if err := s.validator.Validate(ctx, product); err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	supplier, err := supplierID(ctx, s.profileRepository, userID)
	if err != nil {
		return models.Product{}, err
	}

	created, err := s.productRepository.CreateProduct(ctx, models.Product{
		Name:          product.Name,
		Description:   product.Description,
		BasePrice:     product.BasePrice,
		CategoryID:    product.CategoryID,
		SupplierID:    supplier,
		StockQuantity: product.StockQuantity,
		MediaPaths:    product.MediaPaths,
		BaseProductID: product.BaseProductID,
	})
	if err != nil {
		log.Err(err).Str("func", "productService.RegisterProduct").Int64("supplier_id", supplier).Msg("product creation failed")
		return models.Product{}, fmt.Errorf("product creation failed: %w", err)
	}

	return created, nil
}

func (s *productService) UpdateProduct(ctx context.Context, userID int64, update models.UpdateProduct) (models.Product, error) {
	if err := s.validator.Validate(ctx, update); err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	supplier, err := supplierID(ctx, s.profileRepository, userID)
	if err != nil {
		return models.Product{}, err
	}

	updated, err := s.productRepository.UpdateProduct(ctx, supplier, update)
	if err != nil {
		return models.Product{}, fmt.Errorf("product update failed: %w", err)
	}

	return updated, nil
}

func (s *productService) DeleteProduct(ctx context.Context, userID, productID int64) error {
	supplier, err := supplierID(ctx, s.profileRepository, userID)
	if err != nil {
		return err
	}

	if err = s.productRepository.DeleteProduct(ctx, supplier, productID); err != nil {
		return fmt.Errorf("product deletion failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("func", "productService.DeleteProduct").Int64("product_id", productID).Msg("product deleted")
	return nil
}
