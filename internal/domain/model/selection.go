package model

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Selection holds the three independent choices made in the form.
type Selection struct {
	CustomerID    ID `json:"customer_id"`
	WarehouseID   ID `json:"warehouse_id"`
	PackageTypeID ID `json:"package_type_id"`
}

// Payload returns the body posted to the upstream for this selection.
func (s Selection) Payload() PackagePayload {
	return PackagePayload{
		WarehouseID:   s.WarehouseID,
		CustomerID:    s.CustomerID,
		PackageTypeID: s.PackageTypeID,
	}
}

// PackagePayload is the create-package request sent upstream.
//
// @Description Package creation payload
type PackagePayload struct {
	WarehouseID   ID `json:"warehouse_id" validate:"required" example:"1"`
	CustomerID    ID `json:"customer_id" validate:"required" example:"7"`
	PackageTypeID ID `json:"package_type_id" validate:"required" example:"3"`
} // @name PackagePayload

// Validate checks that every field is present.
func (p PackagePayload) Validate() error {
	return validate.Struct(p)
}

// MissingFields returns the JSON names of the empty fields, in form order.
func (p PackagePayload) MissingFields() []string {
	var missing []string
	if p.CustomerID == "" {
		missing = append(missing, "customer_id")
	}
	if p.WarehouseID == "" {
		missing = append(missing, "warehouse_id")
	}
	if p.PackageTypeID == "" {
		missing = append(missing, "package_type_id")
	}
	return missing
}
