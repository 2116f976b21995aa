package model

// Warehouse is a physical storage location offering one or more package types.
//
// @Description Warehouse option
type Warehouse struct {
	WarehouseID   ID     `json:"warehouse_id" example:"1"`
	WarehouseName string `json:"warehouse_name" example:"North depot"`
} // @name Warehouse

// UniqueWarehouses removes rows repeating an earlier warehouse_id.
// The upstream returns one row per warehouse/package-type pair.
func UniqueWarehouses(warehouses []Warehouse) []Warehouse {
	seen := make(map[ID]struct{}, len(warehouses))
	result := make([]Warehouse, 0, len(warehouses))
	for _, w := range warehouses {
		if _, ok := seen[w.WarehouseID]; ok {
			continue
		}
		seen[w.WarehouseID] = struct{}{}
		result = append(result, w)
	}
	return result
}
