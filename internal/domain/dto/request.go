// Package dto defines Data Transfer Objects for HTTP request and response handling.
//
// DTOs are used to decouple the HTTP layer from the domain model,
// providing validation and serialization for API communication.
package dto

import (
	"github.com/guttosm/package-form/internal/domain/model"
	"github.com/guttosm/package-form/internal/form"
)

// SelectRequest changes one select of the form. An empty value clears it.
//
// @Description Change one select of the package form
// @Example {"field": "warehouse", "value": "1"}
type SelectRequest struct {
	Field string `json:"field" form:"field" binding:"required,oneof=customer warehouse package_type" example:"warehouse" enums:"customer,warehouse,package_type"`
	Value string `json:"value" form:"value" example:"1"`
} // @name SelectRequest

// FormField returns the parsed field. Binding has already rejected unknown names.
func (r SelectRequest) FormField() form.Field {
	f, _ := form.ParseField(r.Field)
	return f
}

// SubmitRequest carries the select values present when the form was
// submitted. Missing fields leave the session's current selection alone.
//
// @Description Submit the package form
// @Example {"customer_id": "7", "warehouse_id": "1", "package_type_id": "3"}
type SubmitRequest struct {
	CustomerID    *string `json:"customer_id" form:"customer_id" example:"7"`
	WarehouseID   *string `json:"warehouse_id" form:"warehouse_id" example:"1"`
	PackageTypeID *string `json:"package_type_id" form:"package_type_id" example:"3"`
} // @name SubmitRequest

// Updates returns the selections to apply before submitting, in form order.
func (r SubmitRequest) Updates() []FieldUpdate {
	var out []FieldUpdate
	if r.CustomerID != nil {
		out = append(out, FieldUpdate{Field: form.FieldCustomer, Value: model.ID(*r.CustomerID)})
	}
	if r.WarehouseID != nil {
		out = append(out, FieldUpdate{Field: form.FieldWarehouse, Value: model.ID(*r.WarehouseID)})
	}
	if r.PackageTypeID != nil {
		out = append(out, FieldUpdate{Field: form.FieldPackageType, Value: model.ID(*r.PackageTypeID)})
	}
	return out
}

// FieldUpdate is one pending selection.
type FieldUpdate struct {
	Field form.Field
	Value model.ID
}
