package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-shop-keeper/internal/logger"
	"github.com/MKhiriev/go-shop-keeper/models"
)

// addressRepository is the PostgreSQL-backed implementation of
// [AddressRepository].
//
// A customer has at most one default address. Whenever a record becomes
// default, the previous default is locked with SELECT ... FOR UPDATE and
// cleared in the same transaction.
type addressRepository struct {
	logger *logger.Logger
	db     *DB
}

func NewAddressRepository(db *DB, logger *logger.Logger) AddressRepository {
	logger.Debug().Msg("creating address repository")
	return &addressRepository{
		db:     db,
		logger: logger,
	}
}

// ListAddresses returns every address of the customer profile attached to
// userID.
func (r *addressRepository) ListAddresses(ctx context.Context, userID int64) ([]models.Address, error) {
	log := logger.FromContext(ctx)

	rows, err := r.db.QueryContext(ctx, listAddressesByUser, userID)
	if err != nil {
		log.Err(err).Str("func", "addressRepository.ListAddresses").Int64("user_id", userID).Msg("failed to query addresses")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	addresses := make([]models.Address, 0, 4)
	for rows.Next() {
		address, scanErr := scanAddress(rows)
		if scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		addresses = append(addresses, address)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return addresses, nil
}

// CreateAddress resolves the address type by name and inserts the address.
func (r *addressRepository) CreateAddress(ctx context.Context, customerID int64, address models.RegisterAddress) (models.Address, error) {
	var created models.Address
	err := r.db.inTx(ctx, "addressRepository.CreateAddress", func(tx *sql.Tx) error {
		var addressTypeID int64
		if err := tx.QueryRowContext(ctx, findAddressTypeByName, address.AddressType).Scan(&addressTypeID); err != nil {
			return rowError(err, ErrAddressTypeNotFound)
		}

		if address.IsDefault {
			if err := clearDefault(ctx, tx, lockDefaultAddress, clearDefaultAddress, customerID); err != nil {
				return err
			}
		}

		var addressID int64
		err := tx.QueryRowContext(ctx, createAddress,
			customerID,
			addressTypeID,
			address.Street,
			address.City,
			address.State,
			address.PostalCode,
			address.Country,
			address.IsDefault,
		).Scan(&addressID)
		if err != nil {
			return mapWriteError(err, ErrAlreadyExists)
		}

		created, err = scanAddress(tx.QueryRowContext(ctx, findAddress, addressID))
		if err != nil {
			return rowError(err, ErrAddressNotFound)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "addressRepository.CreateAddress").
			Int64("customer_id", customerID).
			Msg("failed to create address")
		return models.Address{}, err
	}

	return created, nil
}

// UpdateAddress applies the non-nil fields of update to one of the
// customer's addresses.
func (r *addressRepository) UpdateAddress(ctx context.Context, customerID int64, update models.UpdateAddress) (models.Address, error) {
	query, args, err := buildUpdateAddressQuery(ctx, update)
	if err != nil {
		return models.Address{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var updated models.Address
	err = r.db.inTx(ctx, "addressRepository.UpdateAddress", func(tx *sql.Tx) error {
		if _, err := lockOwnedAddress(ctx, tx, update.AddressID, customerID); err != nil {
			return err
		}

		if update.IsDefault != nil && *update.IsDefault {
			if err := clearDefault(ctx, tx, lockDefaultAddress, clearDefaultAddress, customerID); err != nil {
				return err
			}
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return mapWriteError(err, ErrAlreadyExists)
		}

		address, err := scanAddress(tx.QueryRowContext(ctx, findAddress, update.AddressID))
		if err != nil {
			return rowError(err, ErrAddressNotFound)
		}
		updated = address
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "addressRepository.UpdateAddress").
			Int64("address_id", update.AddressID).
			Msg("failed to update address")
		return models.Address{}, err
	}

	return updated, nil
}

// DeleteAddress removes one of the customer's addresses. The default
// address cannot be deleted ([ErrDefaultAddress]).
func (r *addressRepository) DeleteAddress(ctx context.Context, customerID, addressID int64) error {
	err := r.db.inTx(ctx, "addressRepository.DeleteAddress", func(tx *sql.Tx) error {
		isDefault, err := lockOwnedAddress(ctx, tx, addressID, customerID)
		if err != nil {
			return err
		}
		if isDefault {
			return ErrDefaultAddress
		}

		if _, err = tx.ExecContext(ctx, deleteAddress, addressID); err != nil {
			return mapDeleteError(err, ErrAddressReferenced)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "addressRepository.DeleteAddress").
			Int64("address_id", addressID).
			Msg("failed to delete address")
	}

	return err
}

func (r *addressRepository) FindAddressType(ctx context.Context, addressTypeID int64) (models.AddressType, error) {
	var t models.AddressType
	if err := r.db.QueryRowContext(ctx, findAddressType, addressTypeID).Scan(&t.AddressTypeID, &t.Name); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.AddressType{}, ErrAddressTypeNotFound
		}
		return models.AddressType{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	return t, nil
}

// RenameAddressType renames a type the customer uses on one of their
// addresses; otherwise it fails with [ErrNotOwner].
func (r *addressRepository) RenameAddressType(ctx context.Context, customerID int64, addressType models.AddressType) (models.AddressType, error) {
	var renamed models.AddressType
	err := r.db.inTx(ctx, "addressRepository.RenameAddressType", func(tx *sql.Tx) error {
		var used bool
		if err := tx.QueryRowContext(ctx, customerUsesAddressType, customerID, addressType.AddressTypeID).Scan(&used); err != nil {
			return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
		}
		if !used {
			return ErrNotOwner
		}

		err := tx.QueryRowContext(ctx, renameAddressType, addressType.AddressTypeID, addressType.Name).
			Scan(&renamed.AddressTypeID, &renamed.Name)
		if err != nil {
			return rowError(err, ErrAddressTypeNotFound)
		}
		return nil
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).
			Str("func", "addressRepository.RenameAddressType").
			Int64("address_type_id", addressType.AddressTypeID).
			Msg("failed to rename address type")
		return models.AddressType{}, err
	}

	return renamed, nil
}

// lockOwnedAddress locks the address row, checks the owner and reports
// whether it is the default.
func lockOwnedAddress(ctx context.Context, tx *sql.Tx, addressID, customerID int64) (bool, error) {
	var owner int64
	var isDefault bool
	if err := tx.QueryRowContext(ctx, lockAddress, addressID).Scan(&owner, &isDefault); err != nil {
		return false, rowError(err, ErrAddressNotFound)
	}
	if owner != customerID {
		return false, ErrNotOwner
	}
	return isDefault, nil
}

// clearDefault locks the customer's current default row, if any, with
// lockQuery and flips it to false with clearQuery.
func clearDefault(ctx context.Context, tx *sql.Tx, lockQuery, clearQuery string, customerID int64) error {
	var currentID int64
	err := tx.QueryRowContext(ctx, lockQuery, customerID).Scan(&currentID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	if _, err = tx.ExecContext(ctx, clearQuery, currentID); err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	return nil
}

func scanAddress(row rowScanner) (models.Address, error) {
	var a models.Address
	err := row.Scan(
		&a.AddressID,
		&a.CustomerID,
		&a.AddressTypeID,
		&a.AddressType,
		&a.Street,
		&a.City,
		&a.State,
		&a.PostalCode,
		&a.Country,
		&a.IsDefault,
	)
	return a, err
}
