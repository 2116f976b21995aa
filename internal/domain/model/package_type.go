package model

import "encoding/json"

// PackageType is a category of storage unit offered by a warehouse.
//
// @Description Package type option
type PackageType struct {
	ID                ID       `json:"id" example:"3"`
	Name              string   `json:"name" example:"Small box"`
	AvailableCapacity *float64 `json:"available_capacity,omitempty" example:"12"`
	WarehouseID       ID       `json:"warehouse_id,omitempty" example:"1"`
} // @name PackageType

// UnmarshalJSON decodes a package type whose identifier may be sent as
// either "id" or "package_type_id". "id" wins unless it is empty or zero.
func (p *PackageType) UnmarshalJSON(data []byte) error {
	var raw struct {
		ID                ID       `json:"id"`
		PackageTypeID     ID       `json:"package_type_id"`
		Name              string   `json:"name"`
		AvailableCapacity *float64 `json:"available_capacity"`
		WarehouseID       ID       `json:"warehouse_id"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.ID = raw.ID
	if p.ID.IsZero() {
		p.ID = raw.PackageTypeID
	}
	p.Name = raw.Name
	p.AvailableCapacity = raw.AvailableCapacity
	p.WarehouseID = raw.WarehouseID
	return nil
}

// SoldOut reports whether the upstream says the type has exactly zero
// capacity left. A missing or fractional capacity is not sold out.
func (p PackageType) SoldOut() bool {
	return p.AvailableCapacity != nil && *p.AvailableCapacity == 0
}

// FilterAvailable drops package types that are sold out, preserving order.
func FilterAvailable(types []PackageType) []PackageType {
	result := make([]PackageType, 0, len(types))
	for _, t := range types {
		if !t.SoldOut() {
			result = append(result, t)
		}
	}
	return result
}
