package http

import (
	"maps"

	"github.com/MKhiriev/go-shop-keeper/models"
)

// Static role lists of the operation table.
var (
	customerOnly = []models.Role{models.RoleCustomer}
	supplierOnly = []models.Role{models.RoleSupplier}
	anyRole      = []models.Role{models.RoleCustomer, models.RoleSupplier}
)

// Variables shared by several operations.
type (
	pageVariables struct {
		Page models.PageRequest `json:"page"`
	}
	productIDVariables struct {
		ProductID int64 `json:"productId"`
	}
)

func (h *Handler) operationTable() map[string]operation {
	table := make(map[string]operation)
	for _, part := range []map[string]operation{
		h.accountOperations(),
		h.catalogOperations(),
		h.orderOperations(),
		h.customerOperations(),
	} {
		maps.Copy(table, part)
	}
	return table
}
