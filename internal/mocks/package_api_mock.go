// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/guttosm/package-form/internal/domain/model"
	"github.com/guttosm/package-form/internal/upstream"
)

type MockPackageAPI struct {
	mock.Mock
}

func (m *MockPackageAPI) ListPackageTypes(ctx context.Context) ([]model.PackageType, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PackageType), args.Error(1)
}

func (m *MockPackageAPI) ListPackageTypesForWarehouse(ctx context.Context, warehouseID model.ID) ([]model.PackageType, error) {
	args := m.Called(ctx, warehouseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.PackageType), args.Error(1)
}

func (m *MockPackageAPI) ListWarehouses(ctx context.Context) ([]model.Warehouse, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Warehouse), args.Error(1)
}

func (m *MockPackageAPI) ListCustomers(ctx context.Context) ([]model.Customer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Customer), args.Error(1)
}

func (m *MockPackageAPI) CreatePackage(ctx context.Context, payload model.PackagePayload) (upstream.CreateResult, error) {
	args := m.Called(ctx, payload)
	return args.Get(0).(upstream.CreateResult), args.Error(1)
}
