package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// Product is a sellable item owned by a supplier. StockQuantity is
// decremented by placed orders, restored by cancellations and never negative.
type Product struct {
	ProductID     int64           `json:"productId"`
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	CategoryID    *int64          `json:"categoryId,omitempty"`
	SupplierID    int64           `json:"supplierId"`
	StockQuantity int             `json:"stockQuantity"`
	MediaPaths    StringList      `json:"mediaPaths"`
	BaseProductID *int64          `json:"baseProductId,omitempty"`
}

// RegisterProduct is the input of the registerProduct operation. The
// supplier is taken from the caller's token.
type RegisterProduct struct {
	Name          string          `json:"name"`
	Description   *string         `json:"description,omitempty"`
	BasePrice     decimal.Decimal `json:"basePrice"`
	CategoryID    *int64          `json:"categoryId,omitempty"`
	StockQuantity int             `json:"stockQuantity"`
	MediaPaths    StringList      `json:"mediaPaths,omitempty"`
	BaseProductID *int64          `json:"baseProductId,omitempty"`
}

// UpdateProduct is a partial update; nil fields are left unchanged.
type UpdateProduct struct {
	ProductID     int64            `json:"productId"`
	Name          *string          `json:"name,omitempty"`
	Description   *string          `json:"description,omitempty"`
	BasePrice     *decimal.Decimal `json:"basePrice,omitempty"`
	CategoryID    *int64           `json:"categoryId,omitempty"`
	StockQuantity *int             `json:"stockQuantity,omitempty"`
	MediaPaths    *StringList      `json:"mediaPaths,omitempty"`
	BaseProductID *int64           `json:"baseProductId,omitempty"`
}

// ProductFilter selects products by exactly one key.
type ProductFilter struct {
	CategoryID    *int64 `json:"categoryId,omitempty"`
	SupplierID    *int64 `json:"supplierId,omitempty"`
	BaseProductID *int64 `json:"baseProductId,omitempty"`
	ProductID     *int64 `json:"productId,omitempty"`
}

// Keys returns how many filter keys are set.
func (f ProductFilter) Keys() int {
	n := 0
	for _, v := range []*int64{f.CategoryID, f.SupplierID, f.BaseProductID, f.ProductID} {
		if v != nil {
			n++
		}
	}
	return n
}

// Category groups products; categories may nest.
type Category struct {
	CategoryID       int64  `json:"categoryId"`
	Name             string `json:"name"`
	ParentCategoryID *int64 `json:"parentCategoryId,omitempty"`
}

// StringList is a list of strings persisted as a JSON array.
type StringList []string

// Value implements [driver.Valuer].
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return []byte("[]"), nil
	}
	return json.Marshal([]string(l))
}

// Scan implements [sql.Scanner].
func (l *StringList) Scan(src any) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = StringList{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into StringList", src)
	}
	return json.Unmarshal(raw, (*[]string)(l))
}
