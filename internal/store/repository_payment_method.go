package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// paymentMethodRepository is the PostgreSQL-backed implementation of
// [PaymentMethodRepository]. Like addresses, a customer has at most one
// default payment method.
type paymentMethodRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewPaymentMethodRepository(db *DB, logger *logger.Logger) PaymentMethodRepository {
	logger.Debug().Msg("creating payment method repository")
	return &paymentMethodRepository{
		db:     db,
		logger: logger,
	}
}

func (r *paymentMethodRepository) ListPaymentMethods(ctx context.Context, customerID int64) ([]models.PaymentMethod, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listPaymentMethods, customerID)
	if err != nil {
		log.Err(err).Str("func", "paymentMethodRepository.ListPaymentMethods").Int64("customer_id", customerID).Msg("failed to query payment methods")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	methods := make([]models.PaymentMethod, 0, 4)
	for rows.Next() {
		method, scanErr := scanPaymentMethod(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		methods = append(methods, method)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return methods, nil
}

func (r *paymentMethodRepository) FindPaymentMethod(ctx context.Context, customerID, paymentMethodID int64) (models.PaymentMethod, error) {
	method, err := scanPaymentMethod(r.db.QueryRowContext(ctx, findPaymentMethod, paymentMethodID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.PaymentMethod{}, ErrPaymentMethodNotFound
		}
		return models.PaymentMethod{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if method.CustomerID != customerID {
		return models.PaymentMethod{}, ErrNotOwner
	}

	return method, nil
}

// CreatePaymentMethod inserts method for method.CustomerID, clearing the
// previous default first when method is default.
func (r *paymentMethodRepository) CreatePaymentMethod(ctx context.Context, method models.PaymentMethod) (models.PaymentMethod, error) {
	var created models.PaymentMethod
	err := r.db.inTx(ctx, "paymentMethodRepository.CreatePaymentMethod", func(tx *sql.Tx) error {
		if method.IsDefault {
			if err := clearDefault(ctx, tx, lockDefaultPaymentMethod, clearDefaultPaymentMethod, method.CustomerID); err != nil {
				return err
			}
		}

		row := tx.QueryRowContext(ctx, createPaymentMethod,
			method.CustomerID,
			method.PaymentType,
			method.BankName,
			method.AccountHolderName,
			method.CardNumber,
			method.CardExpirationDate,
			method.IBAN,
			method.UPIID,
			method.BankAccountNumber,
			method.IFSCCode,
			method.CardTypeID,
			method.IsDefault,
		)
		m, err := scanPaymentMethod(row)
		if err != nil {
			return mapWriteError(err, ErrAlreadyExists)
		}
		created = m
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "paymentMethodRepository.CreatePaymentMethod").
			Int64("customer_id", method.CustomerID).
			Str("payment_type", string(method.PaymentType)).
			Msg("failed to create payment method")
		return models.PaymentMethod{}, err
	}

	return created, nil
}

// UpdatePaymentMethod overwrites the mutable columns of an existing payment
// method owned by method.CustomerID.
func (r *paymentMethodRepository) UpdatePaymentMethod(ctx context.Context, method models.PaymentMethod) (models.PaymentMethod, error) {
	var updated models.PaymentMethod
	err := r.db.inTx(ctx, "paymentMethodRepository.UpdatePaymentMethod", func(tx *sql.Tx) error {
		if err := checkOwner(ctx, tx, lockPaymentMethod, method.PaymentMethodID, method.CustomerID, ErrPaymentMethodNotFound); err != nil {
			return err
		}

		if method.IsDefault {
			if err := clearDefault(ctx, tx, lockDefaultPaymentMethod, clearDefaultPaymentMethod, method.CustomerID); err != nil {
				return err
			}
		}

		row := tx.QueryRowContext(ctx, updatePaymentMethod,
			method.PaymentMethodID,
			method.BankName,
			method.AccountHolderName,
			method.CardNumber,
			method.CardExpirationDate,
			method.IBAN,
			method.UPIID,
			method.BankAccountNumber,
			method.IFSCCode,
			method.CardTypeID,
			method.IsDefault,
		)
		m, err := scanPaymentMethod(row)
		if err != nil {
			return rowError(err, ErrPaymentMethodNotFound)
		}
		updated = m
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "paymentMethodRepository.UpdatePaymentMethod").
			Int64("payment_method_id", method.PaymentMethodID).
			Msg("failed to update payment method")
		return models.PaymentMethod{}, err
	}

	return updated, nil
}

func (r *paymentMethodRepository) FindCardType(ctx context.Context, cardTypeID int64) (models.CardType, error) {
	var t models.CardType
	if err := r.db.QueryRowContext(ctx, findCardType, cardTypeID).Scan(&t.CardTypeID, &t.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.CardType{}, ErrCardTypeNotFound
		}
		return models.CardType{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return t, nil
}

func (r *paymentMethodRepository) ListCardTypes(ctx context.Context) ([]models.CardType, error) {
	rows, err := r.db.QueryContext(ctx, listCardTypes)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	types := make([]models.CardType, 0, 4)
	for rows.Next() {
		var t models.CardType
		if err = rows.Scan(&t.CardTypeID, &t.Name); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		types = append(types, t)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return types, nil
}

func scanPaymentMethod(row rowScanner) (models.PaymentMethod, error) {
	var m models.PaymentMethod
	err := row.Scan(
		&m.PaymentMethodID,
		&m.CustomerID,
		&m.PaymentType,
		&m.BankName,
		&m.AccountHolderName,
		&m.CardNumber,
		&m.CardExpirationDate,
		&m.IBAN,
		&m.UPIID,
		&m.BankAccountNumber,
		&m.IFSCCode,
		&m.CardTypeID,
		&m.IsDefault,
	)
	return m, err
}
