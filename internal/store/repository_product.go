package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// productRepository is the PostgreSQL-backed implementation of
// [ProductRepository].
//
// Listings use keyset pagination on product_id: every page query fetches one
// row more than requested to learn whether a next page exists.
type productRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewProductRepository(db *DB, logger *logger.Logger) ProductRepository {
	logger.Debug().Msg("creating product repository")
	return &productRepository{
		db:     db,
		logger: logger,
	}
}

func (r *productRepository) ListProducts(ctx context.Context, filter models.ProductFilter, page models.PageRequest) (models.Page[models.Product], error) {
	query, args, err := buildListProductsQuery(ctx, filter, page)
	if err != nil {
		return models.Page[models.Product]{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryPage(ctx, "productRepository.ListProducts", page, query, args)
}

// SearchProducts matches name case-insensitively anywhere in the product name.
func (r *productRepository) SearchProducts(ctx context.Context, name string, page models.PageRequest) (models.Page[models.Product], error) {
	query, args, err := buildSearchProductsQuery(ctx, name, page)
	if err != nil {
		return models.Page[models.Product]{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	return r.queryPage(ctx, "productRepository.SearchProducts", page, query, args)
}

func (r *productRepository) queryPage(ctx context.Context, funcName string, page models.PageRequest, query string, args []any) (models.Page[models.Product], error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to execute products query")
		return models.Page[models.Product]{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	products := make([]models.Product, 0, page.Limit()+1)
	for rows.Next() {
		product, scanErr := scanProduct(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan product row")
			return models.Page[models.Product]{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		products = append(products, product)
	}

	if err = rows.Err(); err != nil {
		log.Err(err).Str("func", funcName).Msg("error occurred during rows iteration")
		return models.Page[models.Product]{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return models.NewPage(products, page.Limit(), func(p models.Product) int64 { return p.ProductID }), nil
}

func (r *productRepository) FindProduct(ctx context.Context, productID int64) (models.Product, error) {
	product, err := scanProduct(r.db.QueryRowContext(ctx, findProduct, productID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Product{}, ErrProductNotFound
		}
		logger.FromContext(ctx).Err(err).
			Str("func", "productRepository.FindProduct").
			Int64("product_id", productID).
			Msg("failed to find product")
		return models.Product{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return product, nil
}

// CreateProduct inserts product; unknown category or base product ids fail
// with [ErrReferenceNotFound].
func (r *productRepository) CreateProduct(ctx context.Context, product models.Product) (models.Product, error) {
	row := r.db.QueryRowContext(ctx, createProduct,
		product.Name,
		product.Description,
		product.BasePrice,
		product.CategoryID,
		product.SupplierID,
		product.StockQuantity,
		product.MediaPaths,
		product.BaseProductID,
	)

	created, err := scanProduct(row)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "productRepository.CreateProduct").
			Int64("supplier_id", product.SupplierID).
			Msg("failed to create product")
		return models.Product{}, mapWriteError(err, ErrAlreadyExists)
	}

	return created, nil
}

// UpdateProduct applies the non-nil fields of update after checking, under a
// row lock, that supplierID owns the product.
func (r *productRepository) UpdateProduct(ctx context.Context, supplierID int64, update models.UpdateProduct) (models.Product, error) {
	query, args, err := buildUpdateProductQuery(ctx, update)
	if err != nil {
		return models.Product{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.Product
	err = r.db.inTx(ctx, "productRepository.UpdateProduct", func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, findProductOwnerForUpdate, update.ProductID, supplierID, ErrProductNotFound); err != nil {
			return err
		}

		product, err := scanProduct(tx.QueryRowContext(ctx, query, args...))
		if err != nil {
			return rowError(err, ErrProductNotFound)
		}
		updated = product
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "productRepository.UpdateProduct").
			Int64("product_id", update.ProductID).
			Msg("failed to update product")
		return models.Product{}, err
	}

	return updated, nil
}

func (r *productRepository) DeleteProduct(ctx context.Context, supplierID, productID int64) error {
	err := r.db.inTx(ctx, "productRepository.DeleteProduct", func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, findProductOwnerForUpdate, productID, supplierID, ErrProductNotFound); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, deleteProduct, productID); err != nil {
			return mapDeleteError(err, ErrProductReferenced)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "productRepository.DeleteProduct").
			Int64("product_id", productID).
			Msg("failed to delete product")
	}

	return err
}

func (r *productRepository) ListCategories(ctx context.Context) ([]models.Category, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listCategories)
	if err != nil {
		log.Err(err).Str("func", "productRepository.ListCategories").Msg("failed to list categories")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	categories := make([]models.Category, 0, 16)
	for rows.Next() {
		var c models.Category
		if err = rows.Scan(&c.CategoryID, &c.Name, &c.ParentCategoryID); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		categories = append(categories, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return categories, nil
}

// checkOwner reads the owner id of the row identified by id with query and
// compares it with owner.
func checkOwner(ctx context.Context, tx *sql.Tx, query string, id, owner int64, notFound error) error {
	var actual int64
	if err := tx.QueryRowContext(ctx, query, id).Scan(&actual); err != nil {
		return rowError(err, notFound)
	}
	if actual != owner {
		return ErrNotOwner
	}
	return nil
}

func scanProduct(row rowScanner) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ProductID,
		&p.Name,
		&p.Description,
		&p.BasePrice,
		&p.CategoryID,
		&p.SupplierID,
		&p.StockQuantity,
		&p.MediaPaths,
		&p.BaseProductID,
	)
	return p, err
}
