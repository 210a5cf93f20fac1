package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is the parent of every "no such row" error. Callers that only
// care about absence can match it with [errors.Is].
var ErrNotFound = errors.New("not found")

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	ErrUserNotFound          = fmt.Errorf("user %w", ErrNotFound)
	ErrCustomerNotFound      = fmt.Errorf("customer %w", ErrNotFound)
	ErrSupplierNotFound      = fmt.Errorf("supplier %w", ErrNotFound)
	ErrCategoryNotFound      = fmt.Errorf("category %w", ErrNotFound)
	ErrProductNotFound       = fmt.Errorf("product %w", ErrNotFound)
	ErrDiscountNotFound      = fmt.Errorf("discount %w", ErrNotFound)
	ErrOrderNotFound         = fmt.Errorf("order %w", ErrNotFound)
	ErrAddressNotFound       = fmt.Errorf("address %w", ErrNotFound)
	ErrAddressTypeNotFound   = fmt.Errorf("address type %w", ErrNotFound)
	ErrPaymentMethodNotFound = fmt.Errorf("payment method %w", ErrNotFound)
	ErrCardTypeNotFound      = fmt.Errorf("card type %w", ErrNotFound)
	ErrReviewNotFound        = fmt.Errorf("review %w", ErrNotFound)
	ErrCartItemNotFound      = fmt.Errorf("cart item %w", ErrNotFound)

	// ErrReferenceNotFound is returned when a foreign key points to a row
	// that does not exist (unknown address, payment method, card type...).
	ErrReferenceNotFound = fmt.Errorf("referenced row %w", ErrNotFound)
)

var (
	// ErrAlreadyExists is returned on a unique constraint violation.
	ErrAlreadyExists = errors.New("already exists")

	// ErrUserAlreadyExists is returned when the email is already registered.
	ErrUserAlreadyExists = fmt.Errorf("user with this email %w", ErrAlreadyExists)

	// ErrReferenced is returned when a row cannot be deleted because orders
	// still point to it.
	ErrReferenced = errors.New("referenced by orders")

	ErrProductReferenced = fmt.Errorf("product is %w", ErrReferenced)
	ErrAddressReferenced = fmt.Errorf("address is %w", ErrReferenced)

	// ErrNotOwner is returned when the caller does not own the row a mutation
	// targets.
	ErrNotOwner = errors.New("row is owned by another user")

	// ErrInsufficientStock is returned when a product cannot cover an
	// ordered quantity. See [InsufficientStockError].
	ErrInsufficientStock = errors.New("insufficient stock")

	// ErrInvalidStatusTransition is returned when an order cannot move to the
	// requested status from its current one.
	ErrInvalidStatusTransition = errors.New("invalid order status transition")

	// ErrDefaultAddress is returned when deleting the default address.
	ErrDefaultAddress = errors.New("cannot delete default address")

	// ErrCheckViolation is returned when a row violates a CHECK constraint
	// or a value does not fit its column.
	ErrCheckViolation = errors.New("value violates a check constraint")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. invalid argument count or unsupported type).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	ErrBeginningTransaction = errors.New("failed to begin transaction")

	// ErrCommitingTransaction is returned when committing an open transaction
	// fails. The transaction is considered rolled back at this point.
	ErrCommitingTransaction = errors.New("failed to commit transaction")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to execute statement")

	ErrScanningRow  = errors.New("failed to scan row")
	ErrScanningRows = errors.New("failed to scan rows")
)

// InsufficientStockError names the product whose stock could not cover an
// order line.
type InsufficientStockError struct {
	ProductID int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for product %d", e.ProductID)
}

func (e *InsufficientStockError) Unwrap() error {
	return ErrInsufficientStock
}
