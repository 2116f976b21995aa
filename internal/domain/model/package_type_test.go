package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func floatPtr(v float64) *float64 { return &v }

func TestPackageType_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		expectedID ID
	}{
		{name: "id field", input: `{"id": 3, "name": "Small"}`, expectedID: "3"},
		{name: "package_type_id field", input: `{"package_type_id": 4, "name": "Large"}`, expectedID: "4"},
		{name: "id wins over package_type_id", input: `{"id": 5, "package_type_id": 9}`, expectedID: "5"},
		{name: "zero id falls back", input: `{"id": 0, "package_type_id": 9}`, expectedID: "9"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pt PackageType
			require.NoError(t, json.Unmarshal([]byte(tt.input), &pt))
			assert.Equal(t, tt.expectedID, pt.ID)
		})
	}
}

func TestPackageType_AvailableCapacity(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		capacity *float64
		soldOut  bool
	}{
		{name: "whole number", input: `{"id": 1, "available_capacity": 12}`, capacity: floatPtr(12)},
		{name: "fractional", input: `{"id": 1, "available_capacity": 2.5}`, capacity: floatPtr(2.5)},
		{name: "below one", input: `{"id": 1, "available_capacity": 0.5}`, capacity: floatPtr(0.5)},
		{name: "zero", input: `{"id": 1, "available_capacity": 0}`, capacity: floatPtr(0), soldOut: true},
		{name: "zero as decimal", input: `{"id": 1, "available_capacity": 0.0}`, capacity: floatPtr(0), soldOut: true},
		{name: "null", input: `{"id": 1, "available_capacity": null}`},
		{name: "missing", input: `{"id": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pt PackageType
			require.NoError(t, json.Unmarshal([]byte(tt.input), &pt))
			assert.Equal(t, tt.capacity, pt.AvailableCapacity)
			assert.Equal(t, tt.soldOut, pt.SoldOut())
		})
	}
}

func TestFilterAvailable(t *testing.T) {
	types := []PackageType{
		{ID: "1", Name: "Small", AvailableCapacity: floatPtr(3)},
		{ID: "2", Name: "Medium", AvailableCapacity: floatPtr(0)},
		{ID: "3", Name: "Large"},
		{ID: "4", Name: "Pallet", AvailableCapacity: floatPtr(-1)},
	}

	result := FilterAvailable(types)

	ids := make([]ID, 0, len(result))
	for _, pt := range result {
		ids = append(ids, pt.ID)
	}
	assert.Equal(t, []ID{"1", "3", "4"}, ids)
}

func TestFilterAvailable_Empty(t *testing.T) {
	assert.Empty(t, FilterAvailable(nil))
}
