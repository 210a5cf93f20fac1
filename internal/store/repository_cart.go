package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// cartRepository stores one shopping cart per customer. The cart row is
// created lazily by the first AddToCart.
type cartRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewCartRepository(db *DB, logger *logger.Logger) CartRepository {
	logger.Debug().Msg("creating cart repository")
	return &cartRepository{
		db:     db,
		logger: logger,
	}
}

// ListCartItems returns the cart lines joined with current product names
// and prices. A customer without a cart gets an empty slice.
func (r *cartRepository) ListCartItems(ctx context.Context, customerID int64) ([]models.CartItem, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listCartItems, customerID)
	if err != nil {
		log.Err(err).Str("func", "cartRepository.ListCartItems").Int64("customer_id", customerID).Msg("failed to query cart")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.CartItem, 0, 8)
	for rows.Next() {
		var item models.CartItem
		if err = rows.Scan(&item.CartItemID, &item.CartID, &item.ProductID, &item.ProductName, &item.UnitPrice, &item.Quantity); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

// AddToCart adds line.Quantity to the customer's line for the product,
// creating the cart and the line when missing. It returns the cart id.
func (r *cartRepository) AddToCart(ctx context.Context, customerID int64, line models.CartLine) (int64, error) {
	var cartID int64
	err := r.db.inTx(ctx, "cartRepository.AddToCart", func(tx *sql.Tx) error {
		if err := tx.QueryRowContext(ctx, upsertCart, customerID).Scan(&cartID); err != nil {
			return mapWriteError(err, ErrAlreadyExists)
		}

		if _, err := tx.ExecContext(ctx, addCartItem, cartID, line.ProductID, line.Quantity); err != nil {
			return mapWriteError(err, ErrAlreadyExists)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "cartRepository.AddToCart").
			Int64("customer_id", customerID).
			Int64("product_id", line.ProductID).
			Msg("failed to add to cart")
		return 0, err
	}

	return cartID, nil
}

// UpdateCartItemQuantity sets the quantity of an existing line; zero
// removes the line.
func (r *cartRepository) UpdateCartItemQuantity(ctx context.Context, customerID int64, line models.CartLine) error {
	if line.Quantity == 0 {
		return r.RemoveFromCart(ctx, customerID, line.ProductID)
	}

	return r.execOnItem(ctx, "cartRepository.UpdateCartItemQuantity", updateCartItem, customerID, line.ProductID, line.Quantity)
}

func (r *cartRepository) RemoveFromCart(ctx context.Context, customerID, productID int64) error {
	return r.execOnItem(ctx, "cartRepository.RemoveFromCart", removeCartItem, customerID, productID)
}

func (r *cartRepository) execOnItem(ctx context.Context, funcName, query string, args ...any) error {
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to change cart item")
		return mapWriteError(err, ErrAlreadyExists)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrCartItemNotFound
	}

	return nil
}
