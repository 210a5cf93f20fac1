package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
)

type reviewRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewReviewRepository(db *DB, logger *logger.Logger) ReviewRepository {
	logger.Debug().Msg("creating review repository")
	return &reviewRepository{
		db:     db,
		logger: logger,
	}
}

func (r *reviewRepository) ListReviewsForProduct(ctx context.Context, productID int64, page models.PageRequest) (models.Page[models.Review], error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListReviewsQuery(ctx, productID, page)
	if err != nil {
		return models.Page[models.Review]{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "reviewRepository.ListReviewsForProduct").Int64("product_id", productID).Msg("failed to query reviews")
		return models.Page[models.Review]{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	reviews := make([]models.Review, 0, page.Limit()+1)
	for rows.Next() {
		review, scanErr := scanReview(rows)
		if scanErr != nil {
			return models.Page[models.Review]{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		reviews = append(reviews, review)
	}
	if err = rows.Err(); err != nil {
		return models.Page[models.Review]{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return models.NewPage(reviews, page.Limit(), func(r models.Review) int64 { return r.ReviewID }), nil
}

// HasOrderedProduct reports whether the customer has a non-cancelled order
// containing the product.
func (r *reviewRepository) HasOrderedProduct(ctx context.Context, customerID, productID int64) (bool, error) {
	var ordered bool
	if err := r.db.QueryRowContext(ctx, customerOrderedProduct, customerID, productID).Scan(&ordered); err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "reviewRepository.HasOrderedProduct").
			Int64("customer_id", customerID).
			Int64("product_id", productID).
			Msg("failed to check order history")
		return false, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return ordered, nil
}

// CreateReview fails with [ErrAlreadyExists] when the customer already
// reviewed the product.
func (r *reviewRepository) CreateReview(ctx context.Context, review models.Review) (models.Review, error) {
	row := r.db.QueryRowContext(ctx, createReview, review.CustomerID, review.ProductID, review.Rating, review.Comment)

	created, err := scanReview(row)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "reviewRepository.CreateReview").
			Int64("product_id", review.ProductID).
			Msg("failed to create review")
		return models.Review{}, mapWriteError(err, ErrAlreadyExists)
	}

	return created, nil
}

func (r *reviewRepository) UpdateReview(ctx context.Context, customerID int64, update models.UpdateReview) (models.Review, error) {
	query, args, err := buildUpdateReviewQuery(ctx, update)
	if err != nil {
		return models.Review{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.Review
	err = r.db.inTx(ctx, "reviewRepository.UpdateReview", func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, findReviewOwnerForUpdate, update.ReviewID, customerID, ErrReviewNotFound); err != nil {
			return err
		}

		review, err := scanReview(tx.QueryRowContext(ctx, query, args...))
		if err != nil {
			return rowError(err, ErrReviewNotFound)
		}
		updated = review
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "reviewRepository.UpdateReview").
			Int64("review_id", update.ReviewID).
			Msg("failed to update review")
		return models.Review{}, err
	}

	return updated, nil
}

func (r *reviewRepository) DeleteReview(ctx context.Context, customerID, reviewID int64) error {
	return r.db.inTx(ctx, "reviewRepository.DeleteReview", func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, findReviewOwnerForUpdate, reviewID, customerID, ErrReviewNotFound); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, deleteReview, reviewID); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		return nil
	})
}

func scanReview(row rowScanner) (models.Review, error) {
	var r models.Review
	err := row.Scan(&r.ReviewID, &r.CustomerID, &r.ProductID, &r.Rating, &r.Comment, &r.CreatedAt)
	return r, err
}
