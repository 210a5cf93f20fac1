package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/internal/metrics"
	"github.com/MKhiriev/go-shop-keeper/internal/store"
	"github.com/MKhiriev/go-shop-keeper/internal/validators"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// orderService drives the order lifecycle. Customers place, list and cancel
// their own orders; suppliers move orders through the status machine.
type orderService struct {
	orderRepository   store.OrderRepository
	profileRepository store.ProfileRepository
	validator         validators.Validator
	metrics           *metrics.Metrics
	logger            *logger.Logger
}

func NewOrderService(orderRepository store.OrderRepository, profileRepository store.ProfileRepository, validator validators.Validator, m *metrics.Metrics, logger *logger.Logger) OrderService {
	return &orderService{
		orderRepository:   orderRepository,
		profileRepository: profileRepository,
		validator:         validator,
		metrics:           m,
		logger:            logger,
	}
}

// PlaceOrder creates an order for the caller's customer profile. Stock,
// totals and the discount are settled by the repository in one transaction;
// a failure leaves no trace in the database.
func (s *orderService) PlaceOrder(ctx context.Context, userID int64, request models.PlaceOrderRequest) (models.Order, error) {
	log := logger.FromContext(ctx)

	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		s.orderFailed(err)
		return models.Order{}, err
	}
	request.CustomerID = customer

	if err = s.validator.Validate(ctx, request); err != nil {
		s.orderFailed(ErrValidation)
		return models.Order{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	order, err := s.orderRepository.PlaceOrder(ctx, request)
	if err != nil {
		s.orderFailed(err)
		log.Err(err).
			Str("func", "orderService.PlaceOrder").
			Int64("customer_id", customer).
			Int("lines", len(request.Items)).
			Msg("order placement failed")
		return models.Order{}, fmt.Errorf("order placement failed: %w", err)
	}

	s.metrics.OrdersPlaced.Inc()
	log.Info().
		Str("func", "orderService.PlaceOrder").
		Int64("order_id", order.OrderID).
		Str("total", order.TotalAmount.StringFixed(2)).
		Msg("order placed")

	return order, nil
}

func (s *orderService) orderFailed(err error) {
	reason := metrics.ReasonInternal
	switch {
	case errors.Is(err, ErrValidation):
		reason = metrics.ReasonValidation
	case errors.Is(err, store.ErrInsufficientStock):
		reason = metrics.ReasonInsufficientStock
	case errors.Is(err, store.ErrNotFound), errors.Is(err, ErrProfileNotFound):
		reason = metrics.ReasonNotFound
	}
	s.metrics.OrderFailures.WithLabelValues(reason).Inc()
}

// CancelOrder cancels one of the caller's orders and puts the stock back.
func (s *orderService) CancelOrder(ctx context.Context, userID, orderID int64) (models.Order, error) {
	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return models.Order{}, err
	}

	order, err := s.orderRepository.CancelOrder(ctx, customer, orderID)
	if err != nil {
		return models.Order{}, fmt.Errorf("order cancellation failed: %w", err)
	}

	logger.FromContext(ctx).Info().Str("func", "orderService.CancelOrder").Int64("order_id", orderID).Msg("order cancelled")
	return order, nil
}

// UpdateOrderStatus moves an order along the fulfilment path. Cancelling
// goes through CancelOrder only, so CANCELLED is refused here.
func (s *orderService) UpdateOrderStatus(ctx context.Context, userID int64, update models.UpdateOrderStatus) (models.Order, error) {
	log := logger.FromContext(ctx)

	status, err := models.ParseOrderStatus(update.Status)
	if err != nil {
		return models.Order{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if status == models.OrderCancelled {
		return models.Order{}, fmt.Errorf("%w: orders are cancelled by their customer", ErrInvalidState)
	}

	supplier, err := supplierID(ctx, s.profileRepository, userID)
	if err != nil {
		return models.Order{}, err
	}

	order, err := s.orderRepository.UpdateOrderStatus(ctx, update.OrderID, status)
	if err != nil {
		log.Err(err).Str("func", "orderService.UpdateOrderStatus").Int64("order_id", update.OrderID).Str("status", update.Status).Msg("order status update failed")
		return models.Order{}, fmt.Errorf("order status update failed: %w", err)
	}

	log.Info().
		Str("func", "orderService.UpdateOrderStatus").
		Int64("order_id", order.OrderID).
		Int64("supplier_id", supplier).
		Str("status", string(order.Status)).
		Msg("order status changed")

	return order, nil
}

func (s *orderService) Orders(ctx context.Context, userID int64, page models.PageRequest) (models.Page[models.Order], error) {
	if err := s.validator.Validate(ctx, page); err != nil {
		return models.Page[models.Order]{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return models.Page[models.Order]{}, err
	}

	return s.orderRepository.ListOrders(ctx, customer, page)
}

func (s *orderService) Order(ctx context.Context, userID, orderID int64) (models.Order, error) {
	customer, err := customerID(ctx, s.profileRepository, userID)
	if err != nil {
		return models.Order{}, err
	}

	return s.orderRepository.FindOrder(ctx, customer, orderID)
}
