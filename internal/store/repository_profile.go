package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// profileRepository stores customer and supplier profiles.
type profileRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewProfileRepository(db *DB, logger *logger.Logger) ProfileRepository {
	logger.Debug().Msg("creating profile repository")
	return &profileRepository{
		db:     db,
		logger: logger,
	}
}

// CreateCustomer fails with [ErrAlreadyExists] when the user already has a
// customer profile.
func (r *profileRepository) CreateCustomer(ctx context.Context, customer models.Customer) (models.Customer, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createCustomer, customer.UserID, customer.FirstName, customer.LastName)
	created, err := scanCustomer(row)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.CreateCustomer").Int64("user_id", customer.UserID).Msg("error creating customer")
		return models.Customer{}, mapWriteError(err, ErrAlreadyExists)
	}

	return created, nil
}

func (r *profileRepository) FindCustomerByUserID(ctx context.Context, userID int64) (models.Customer, error) {
	customer, err := scanCustomer(r.db.QueryRowContext(ctx, findCustomerByUserID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Customer{}, ErrCustomerNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*profileRepository.FindCustomerByUserID").Int64("user_id", userID).Msg("error finding customer")
		return models.Customer{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return customer, nil
}

// CreateSupplier fails with [ErrAlreadyExists] when the user already has a
// supplier profile.
func (r *profileRepository) CreateSupplier(ctx context.Context, supplier models.Supplier) (models.Supplier, error) {
	log := logger.FromContext(ctx)

	row := r.db.QueryRowContext(ctx, createSupplier, supplier.UserID, supplier.Name, supplier.ContactPhone)
	created, err := scanSupplier(row)
	if err != nil {
		log.Err(err).Str("func", "*profileRepository.CreateSupplier").Int64("user_id", supplier.UserID).Msg("error creating supplier")
		return models.Supplier{}, mapWriteError(err, ErrAlreadyExists)
	}

	return created, nil
}

func (r *profileRepository) FindSupplierByUserID(ctx context.Context, userID int64) (models.Supplier, error) {
	supplier, err := scanSupplier(r.db.QueryRowContext(ctx, findSupplierByUserID, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Supplier{}, ErrSupplierNotFound
		}
		logger.FromContext(ctx).Err(err).Str("func", "*profileRepository.FindSupplierByUserID").Int64("user_id", userID).Msg("error finding supplier")
		return models.Supplier{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return supplier, nil
}

func scanCustomer(row rowScanner) (models.Customer, error) {
	var c models.Customer
	err := row.Scan(&c.CustomerID, &c.UserID, &c.FirstName, &c.LastName, &c.RegistrationDate)
	return c, err
}

func scanSupplier(row rowScanner) (models.Supplier, error) {
	var s models.Supplier
	err := row.Scan(&s.SupplierID, &s.UserID, &s.Name, &s.ContactPhone)
	return s, err
}
