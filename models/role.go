// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"database/sql/driver"
	"errors"
	"fmt"
)

// ErrUnknownRole is returned when a role name is not one of the closed set.
var ErrUnknownRole = errors.New("unknown role")

// Role is the closed set of account kinds. It is embedded in both [User]
// and [Claims] and drives every authorization decision.
//
// The zero value is not a valid role.
type Role uint8

const (
	RoleCustomer Role = iota + 1
	RoleSupplier
)

// ParseRole converts the text form ("customer", "supplier") into a Role.
func ParseRole(s string) (Role, error) {
	switch s {
	case "customer":
		return RoleCustomer, nil
	case "supplier":
		return RoleSupplier, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// String returns the text form of the role, or "" for an invalid value.
func (r Role) String() string {
	switch r {
	case RoleCustomer:
		return "customer"
	case RoleSupplier:
		return "supplier"
	default:
		return ""
	}
}

// Valid reports whether r is one of the defined roles.
func (r Role) Valid() bool {
	return r == RoleCustomer || r == RoleSupplier
}

func (r Role) MarshalText() ([]byte, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, r)
	}
	return []byte(r.String()), nil
}

func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Value stores the role as its text form.
func (r Role) Value() (driver.Value, error) {
	if !r.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, r)
	}
	return r.String(), nil
}

// Scan reads the text form written by Value.
func (r *Role) Scan(src any) error {
	switch v := src.(type) {
	case string:
		return r.UnmarshalText([]byte(v))
	case []byte:
		return r.UnmarshalText(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrUnknownRole, src)
	}
}
