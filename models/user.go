package models

import "time"

// User represents an account entity used for authentication and authorization.
// Customer and Supplier profiles are derived from it 1:1.
type User struct {
	UserID int64 `json:"userId"`

	Email string `json:"email"`

	// PasswordHash is the encoded Argon2id credential. It is never
	// serialized and never logged.
	PasswordHash string `json:"-"`

	Role Role `json:"role"`

	EmailVerified bool `json:"emailVerified"`

	CreatedAt time.Time `json:"createdAt"`
}

// TableName returns the name of the database table
// associated with the User model.
func (u User) TableName() string {
	return "users"
}

// RegisterUser is the input of the registerUser operation.
type RegisterUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     Role   `json:"role"`
}

// LoginUser is the input of the login operation.
type LoginUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthUser is returned by registration and login.
type AuthUser struct {
	UserRole Role   `json:"userRole"`
	Token    string `json:"token"`
}

// ChangePassword is the input of the changePassword operation.
type ChangePassword struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

// Customer is the buyer profile of a user with [RoleCustomer].
type Customer struct {
	CustomerID       int64     `json:"customerId"`
	UserID           int64     `json:"userId"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	RegistrationDate time.Time `json:"registrationDate"`
}

// RegisterCustomer is the input of the registerCustomer operation.
type RegisterCustomer struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// Supplier is the seller profile of a user with [RoleSupplier].
type Supplier struct {
	SupplierID   int64   `json:"supplierId"`
	UserID       int64   `json:"userId"`
	Name         string  `json:"name"`
	ContactPhone *string `json:"contactPhone,omitempty"`
}

// RegisterSupplier is the input of the registerSupplier operation.
type RegisterSupplier struct {
	Name         string  `json:"name"`
	ContactPhone *string `json:"contactPhone,omitempty"`
}
