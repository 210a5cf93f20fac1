package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
	"github.com/shopspring/decimal"
)

// orderRepository is the PostgreSQL-backed implementation of
// [OrderRepository].
//
// Stock is protected twice: products are locked with SELECT ... FOR UPDATE
// before the total is computed, and every decrement is conditional on
// stock_quantity >= quantity, so a quantity that cannot be covered never
// makes stock negative. Any failure rolls back the whole order, including
// the discount usage counter.
type orderRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewOrderRepository(db *DB, logger *logger.Logger) OrderRepository {
	logger.Debug().Msg("creating order repository")
	return &orderRepository{
		db:     db,
		logger: logger,
	}
}

// PlaceOrder creates a PENDING order for request.CustomerID in one
// transaction.
//
// Error handling:
//   - unknown discount code → [ErrDiscountNotFound];
//   - unknown product → [ErrProductNotFound];
//   - unknown address or payment method → [ErrAddressNotFound],
//     [ErrPaymentMethodNotFound];
//   - address or payment method of another customer → [ErrNotOwner];
//   - stock below the ordered quantity → [*InsufficientStockError].
func (r *orderRepository) PlaceOrder(ctx context.Context, request models.PlaceOrderRequest) (models.Order, error) {
	log := logger.FromContext(ctx)

	var order models.Order
	err := r.db.inTx(ctx, "orderRepository.PlaceOrder", func(tx *sql.Tx) error {
		placed, err := r.placeOrder(ctx, tx, request)
		if err != nil {
			return err
		}
		order = placed
		return nil
	})
	if err != nil {
		log.Err(err).
			Str("func", "orderRepository.PlaceOrder").
			Int64("customer_id", request.CustomerID).
			Int("items_count", len(request.Items)).
			Msg("failed to place order")
		return models.Order{}, err
	}

	log.Info().
		Str("func", "orderRepository.PlaceOrder").
		Int64("customer_id", request.CustomerID).
		Int64("order_id", order.OrderID).
		Str("total_amount", order.TotalAmount.StringFixed(2)).
		Msg("order placed")

	return order, nil
}

func (r *orderRepository) placeOrder(ctx context.Context, tx *sql.Tx, request models.PlaceOrderRequest) (models.Order, error) {
	var discount *models.Discount
	if request.DiscountCode != nil {
		d, err := scanDiscount(tx.QueryRowContext(ctx, findDiscountByCodeForUpdate, *request.DiscountCode))
		if err != nil {
			return models.Order{}, rowError(err, ErrDiscountNotFound)
		}
		discount = &d
	}

	prices, err := lockProducts(ctx, tx, request.Items)
	if err != nil {
		return models.Order{}, err
	}

	if err = lockOrderReferences(ctx, tx, request); err != nil {
		return models.Order{}, err
	}

	total := decimal.Zero
	for _, line := range request.Items {
		total = total.Add(prices[line.ProductID].Mul(decimal.NewFromInt(int64(line.Quantity))))
	}

	var discountID *int64
	if discount != nil {
		total = discount.Apply(total)
		discountID = &discount.DiscountID

		if _, err = tx.ExecContext(ctx, incrementDiscountUsage, discount.DiscountID); err != nil {
			return models.Order{}, mapWriteError(err, ErrAlreadyExists)
		}
	}

	order, err := scanOrder(tx.QueryRowContext(ctx, createOrder,
		request.CustomerID,
		total,
		models.OrderPending,
		request.ShippingAddressID,
		request.PaymentMethodID,
		discountID,
	))
	if err != nil {
		return models.Order{}, mapWriteError(err, ErrAlreadyExists)
	}

	order.Items = make([]models.OrderItem, 0, len(request.Items))
	for _, line := range request.Items {
		var unitPrice decimal.Decimal
		err = tx.QueryRowContext(ctx, decrementStock, line.ProductID, line.Quantity).Scan(&unitPrice)
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, &InsufficientStockError{ProductID: line.ProductID}
		}
		if err != nil {
			return models.Order{}, mapWriteError(err, ErrAlreadyExists)
		}

		item := models.OrderItem{
			OrderID:   order.OrderID,
			ProductID: line.ProductID,
			Quantity:  line.Quantity,
			UnitPrice: unitPrice,
		}
		if err = tx.QueryRowContext(ctx, createOrderItem, item.OrderID, item.ProductID, item.Quantity, item.UnitPrice).Scan(&item.OrderItemID); err != nil {
			return models.Order{}, mapWriteError(err, ErrAlreadyExists)
		}
		order.Items = append(order.Items, item)
	}

	return order, nil
}

// lockProducts locks every ordered product in ascending id order and
// returns the current base prices.
func lockProducts(ctx context.Context, tx *sql.Tx, lines []models.OrderLine) (map[int64]decimal.Decimal, error) {
	ids := make([]int64, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.ProductID)
	}
	slices.Sort(ids)
	ids = slices.Compact(ids)

	prices := make(map[int64]decimal.Decimal, len(ids))
	for _, id := range ids {
		var price decimal.Decimal
		if err := tx.QueryRowContext(ctx, lockProductPrice, id).Scan(&price); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, fmt.Errorf("%w: product %d", ErrProductNotFound, id)
			}
			return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		prices[id] = price
	}

	return prices, nil
}

// lockOrderReferences locks the shipping address and the payment method
// and checks that both belong to the ordering customer.
func lockOrderReferences(ctx context.Context, tx *sql.Tx, request models.PlaceOrderRequest) error {
	if _, err := lockOwnedAddress(ctx, tx, request.ShippingAddressID, request.CustomerID); err != nil {
		return err
	}
	return checkOwner(ctx, tx, lockPaymentMethod, request.PaymentMethodID, request.CustomerID, ErrPaymentMethodNotFound)
}

// CancelOrder cancels one of the customer's orders and puts every item
// quantity back into stock.
func (r *orderRepository) CancelOrder(ctx context.Context, customerID, orderID int64) (models.Order, error) {
	var cancelled models.Order
	err := r.db.inTx(ctx, "orderRepository.CancelOrder", func(tx *sql.Tx) error {
		if err := lockOrderForCustomer(ctx, tx, orderID, customerID, models.OrderCancelled); err != nil {
			return err
		}

		items, err := queryOrderItems(ctx, tx, orderID)
		if err != nil {
			return err
		}

		for _, item := range items {
			if _, err = tx.ExecContext(ctx, restoreStock, item.ProductID, item.Quantity); err != nil {
				return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
			}
		}

		order, err := scanOrder(tx.QueryRowContext(ctx, setOrderStatus, orderID, models.OrderCancelled))
		if err != nil {
			return rowError(err, ErrOrderNotFound)
		}
		order.Items = items
		cancelled = order
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "orderRepository.CancelOrder").
			Int64("order_id", orderID).
			Msg("failed to cancel order")
		return models.Order{}, err
	}

	return cancelled, nil
}

// lockOrderForCustomer locks the order row and checks ownership and the
// transition to next. A customerID of zero skips the ownership check.
func lockOrderForCustomer(ctx context.Context, tx *sql.Tx, orderID, customerID int64, next models.OrderStatus) error {
	var owner int64
	var status models.OrderStatus
	if err := tx.QueryRowContext(ctx, lockOrder, orderID).Scan(&owner, &status); err != nil {
		return rowError(err, ErrOrderNotFound)
	}

	if customerID != 0 && owner != customerID {
		return ErrNotOwner
	}

	if !status.CanTransitionTo(next) {
		return fmt.Errorf("%w: %s -> %s", ErrInvalidStatusTransition, status, next)
	}

	return nil
}

// UpdateOrderStatus moves the order to status when the transition is legal.
func (r *orderRepository) UpdateOrderStatus(ctx context.Context, orderID int64, status models.OrderStatus) (models.Order, error) {
	var updated models.Order
	err := r.db.inTx(ctx, "orderRepository.UpdateOrderStatus", func(tx *sql.Tx) error {
		if err := lockOrderForCustomer(ctx, tx, orderID, 0, status); err != nil {
			return err
		}

		order, err := scanOrder(tx.QueryRowContext(ctx, setOrderStatus, orderID, status))
		if err != nil {
			return rowError(err, ErrOrderNotFound)
		}
		updated = order
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "orderRepository.UpdateOrderStatus").
			Int64("order_id", orderID).
			Str("status", string(status)).
			Msg("failed to update order status")
		return models.Order{}, err
	}

	return updated, nil
}

func (r *orderRepository) ListOrders(ctx context.Context, customerID int64, page models.PageRequest) (models.Page[models.Order], error) {
	log := logger.FromContext(ctx)

	query, args, err := buildListOrdersQuery(ctx, customerID, page)
	if err != nil {
		return models.Page[models.Order]{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "orderRepository.ListOrders").Int64("customer_id", customerID).Msg("failed to query orders")
		return models.Page[models.Order]{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	orders := make([]models.Order, 0, page.Limit()+1)
	for rows.Next() {
		order, scanErr := scanOrder(rows)
		if scanErr != nil {
			return models.Page[models.Order]{}, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		orders = append(orders, order)
	}
	if err = rows.Err(); err != nil {
		return models.Page[models.Order]{}, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return models.NewPage(orders, page.Limit(), func(o models.Order) int64 { return o.OrderID }), nil
}

// FindOrder returns the order with its items. Orders of other customers
// fail with [ErrNotOwner].
func (r *orderRepository) FindOrder(ctx context.Context, customerID, orderID int64) (models.Order, error) {
	order, err := scanOrder(r.db.QueryRowContext(ctx, findOrder, orderID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Order{}, ErrOrderNotFound
		}
		return models.Order{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if order.CustomerID != customerID {
		return models.Order{}, ErrNotOwner
	}

	order.Items, err = queryOrderItems(ctx, r.db, orderID)
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "orderRepository.FindOrder").
			Int64("order_id", orderID).
			Msg("failed to load order items")
		return models.Order{}, err
	}

	return order, nil
}

type queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

func queryOrderItems(ctx context.Context, q queryer, orderID int64) ([]models.OrderItem, error) {
	rows, err := q.QueryContext(ctx, listOrderItems, orderID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	items := make([]models.OrderItem, 0, 4)
	for rows.Next() {
		var item models.OrderItem
		if err = rows.Scan(&item.OrderItemID, &item.OrderID, &item.ProductID, &item.Quantity, &item.UnitPrice); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		items = append(items, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return items, nil
}

func scanOrder(row rowScanner) (models.Order, error) {
	var o models.Order
	err := row.Scan(
		&o.OrderID,
		&o.CustomerID,
		&o.OrderDate,
		&o.TotalAmount,
		&o.Status,
		&o.ShippingAddressID,
		&o.PaymentMethodID,
		&o.DiscountID,
	)
	return o, err
}
