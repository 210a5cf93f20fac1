package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
)

type discountRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewDiscountRepository(db *DB, logger *logger.Logger) DiscountRepository {
	logger.Debug().Msg("creating discount repository")
	return &discountRepository{
		db:     db,
		logger: logger,
	}
}

func (r *discountRepository) ListDiscounts(ctx context.Context, page models.PageRequest) (models.Page[models.Discount], error) {
	query, args, err := buildListDiscountsQuery(ctx, page)
	if err != nil {
		return models.Page[models.Discount]{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	discounts, err := r.query(ctx, "discountRepository.ListDiscounts", query, args...)
	if err != nil {
		return models.Page[models.Discount]{}, err
	}

	return models.NewPage(discounts, page.Limit(), func(d models.Discount) int64 { return d.DiscountID }), nil
}

func (r *discountRepository) ListDiscountsOnProduct(ctx context.Context, productID int64) ([]models.Discount, error) {
	return r.query(ctx, "discountRepository.ListDiscountsOnProduct", listDiscountsOnProduct, productID)
}

func (r *discountRepository) query(ctx context.Context, funcName, query string, args ...any) ([]models.Discount, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("failed to query discounts")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	discounts := make([]models.Discount, 0, 8)
	for rows.Next() {
		d, scanErr := scanDiscount(rows)
		if scanErr != nil {
			log.Err(scanErr).Str("func", funcName).Msg("failed to scan discount row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		discounts = append(discounts, d)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return discounts, nil
}

// CreateDiscount requires supplierID to own the discounted product. A
// duplicate code fails with [ErrAlreadyExists].
func (r *discountRepository) CreateDiscount(ctx context.Context, supplierID int64, discount models.RegisterDiscount) (models.Discount, error) {
	var created models.Discount
	err := r.db.inTx(ctx, "discountRepository.CreateDiscount", func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, findProductOwnerForUpdate, discount.ProductID, supplierID, ErrProductNotFound); err != nil {
			return err
		}

		row := tx.QueryRowContext(ctx, createDiscount,
			discount.Code,
			discount.Description,
			discount.DiscountValue,
			discount.DiscountType,
			discount.ValidFrom,
			discount.ValidUntil,
			discount.MaxUses,
			discount.ProductID,
			discount.CategoryID,
			discount.MinQuantity,
		)
		d, err := scanDiscount(row)
		if err != nil {
			return mapWriteError(err, ErrAlreadyExists)
		}
		created = d
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "discountRepository.CreateDiscount").
			Int64("product_id", discount.ProductID).
			Msg("failed to create discount")
		return models.Discount{}, err
	}

	return created, nil
}

func (r *discountRepository) UpdateDiscount(ctx context.Context, supplierID int64, update models.UpdateDiscount) (models.Discount, error) {
	query, args, err := buildUpdateDiscountQuery(ctx, update)
	if err != nil {
		return models.Discount{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.Discount
	err = r.db.inTx(ctx, "discountRepository.UpdateDiscount", func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, findDiscountOwnerForUpdate, update.DiscountID, supplierID, ErrDiscountNotFound); err != nil {
			return err
		}

		d, err := scanDiscount(tx.QueryRowContext(ctx, query, args...))
		if err != nil {
			return rowError(err, ErrDiscountNotFound)
		}
		updated = d
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "discountRepository.UpdateDiscount").
			Int64("discount_id", update.DiscountID).
			Msg("failed to update discount")
		return models.Discount{}, err
	}

	return updated, nil
}

func (r *discountRepository) DeleteDiscount(ctx context.Context, supplierID, discountID int64) error {
	err := r.db.inTx(ctx, "discountRepository.DeleteDiscount", func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, findDiscountOwnerForUpdate, discountID, supplierID, ErrDiscountNotFound); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, deleteDiscount, discountID); err != nil {
			return mapWriteError(err, ErrAlreadyExists)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "discountRepository.DeleteDiscount").
			Int64("discount_id", discountID).
			Msg("failed to delete discount")
	}

	return err
}

func scanDiscount(row rowScanner) (models.Discount, error) {
	var d models.Discount
	err := row.Scan(
		&d.DiscountID,
		&d.Code,
		&d.Description,
		&d.DiscountValue,
		&d.DiscountType,
		&d.ValidFrom,
		&d.ValidUntil,
		&d.MaxUses,
		&d.TimesUsed,
		&d.ProductID,
		&d.CategoryID,
		&d.MinQuantity,
	)
	return d, err
}
