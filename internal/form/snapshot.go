package form

import (
	"github.com/guttosm/package-form/internal/domain/model"
)

// Field names a select in the form.
type Field string

const (
	FieldCustomer    Field = "customer"
	FieldWarehouse   Field = "warehouse"
	FieldPackageType Field = "package_type"
)

// ParseField validates a field name received from a client.
func ParseField(s string) (Field, bool) {
	switch f := Field(s); f {
	case FieldCustomer, FieldWarehouse, FieldPackageType:
		return f, true
	default:
		return "", false
	}
}

// Snapshot is an immutable copy of a controller's view-state.
type Snapshot struct {
	Mounted      bool                                `json:"mounted"`
	Open         bool                                `json:"open"`
	Submitting   bool                                `json:"submitting"`
	Selection    model.Selection                     `json:"selection"`
	Customers    model.OptionList[model.Customer]    `json:"customers"`
	Warehouses   model.OptionList[model.Warehouse]   `json:"warehouses"`
	PackageTypes model.OptionList[model.PackageType] `json:"package_types"`
}

// CanSubmit reports whether all three selections are made.
func (s Snapshot) CanSubmit() bool {
	return s.Selection.Payload().Validate() == nil
}
