package models

// Address is a customer's postal address. At most one address per customer
// carries IsDefault.
type Address struct {
	AddressID     int64   `json:"addressId"`
	CustomerID    int64   `json:"customerId"`
	AddressTypeID int64   `json:"addressTypeId"`
	AddressType   string  `json:"addressType"`
	Street        string  `json:"street"`
	City          string  `json:"city"`
	State         *string `json:"state,omitempty"`
	PostalCode    string  `json:"postalCode"`
	Country       string  `json:"country"`
	IsDefault     bool    `json:"isDefault"`
}

// AddressType labels an address ("home", "work", ...).
type AddressType struct {
	AddressTypeID int64  `json:"addressTypeId"`
	Name          string `json:"name"`
}

// RegisterAddress is the input of the registerAddress operation.
type RegisterAddress struct {
	AddressType string  `json:"addressType"`
	Street      string  `json:"street"`
	City        string  `json:"city"`
	State       *string `json:"state,omitempty"`
	PostalCode  string  `json:"postalCode"`
	Country     string  `json:"country"`
	IsDefault   bool    `json:"isDefault"`
}

// UpdateAddress is a partial update; nil fields are left unchanged.
type UpdateAddress struct {
	AddressID  int64   `json:"addressId"`
	Street     *string `json:"street,omitempty"`
	City       *string `json:"city,omitempty"`
	State      *string `json:"state,omitempty"`
	PostalCode *string `json:"postalCode,omitempty"`
	Country    *string `json:"country,omitempty"`
	IsDefault  *bool   `json:"isDefault,omitempty"`
}
