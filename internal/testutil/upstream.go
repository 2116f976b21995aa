// Package testutil provides test helpers: a fake package API and, under the
// integration tag, MongoDB testcontainers.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"sync"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/package-form/internal/domain/model"
)

// FakeUpstream is an in-memory package API served by httptest.
type FakeUpstream struct {
	*httptest.Server

	mu            sync.Mutex
	customers     []model.Customer
	warehouses    []model.Warehouse
	packageTypes  []model.PackageType
	scopedTypes   map[model.ID][]model.PackageType
	failures      map[string]int
	createStatus  int
	createBody    any
	created       []model.PackagePayload
	scopedQueries []string
	requestIDs    []string
}

// NewFakeUpstream starts a fake seeded with DefaultCustomers, DefaultWarehouses
// and DefaultPackageTypes. The server is closed when the test ends.
func NewFakeUpstream(t interface{ Cleanup(func()) }) *FakeUpstream {
	gin.SetMode(gin.TestMode)

	f := &FakeUpstream{
		customers:    DefaultCustomers(),
		warehouses:   DefaultWarehouses(),
		packageTypes: DefaultPackageTypes(),
		scopedTypes:  map[model.ID][]model.PackageType{},
		failures:     map[string]int{},
		createStatus: http.StatusOK,
		createBody:   gin.H{"message": "Package stored"},
	}

	router := gin.New()
	router.Use(f.recordRequestID)
	router.GET("/api/Customer", f.list(func() any { return f.customers }))
	router.GET("/api/Warehouse", f.list(func() any { return f.warehouses }))
	router.GET("/api/PackageTypes", f.packageTypesHandler)
	router.POST("/api/Packages", f.createHandler)

	f.Server = httptest.NewServer(router)
	t.Cleanup(f.Close)
	return f
}

// DefaultCustomers returns the customers the fake starts with.
func DefaultCustomers() []model.Customer {
	return []model.Customer{
		{ID: "7", FirstName: "Ada", LastName: "Lovelace"},
		{ID: "8", FirstName: "Alan", LastName: "Turing"},
	}
}

// DefaultWarehouses returns the warehouses the fake starts with.
func DefaultWarehouses() []model.Warehouse {
	return []model.Warehouse{
		{WarehouseID: "1", WarehouseName: "North depot"},
		{WarehouseID: "2", WarehouseName: "South depot"},
	}
}

// DefaultPackageTypes returns the package types the fake starts with.
func DefaultPackageTypes() []model.PackageType {
	return []model.PackageType{
		{ID: "3", Name: "Small box"},
		{ID: "4", Name: "Pallet"},
	}
}

// SetScopedPackageTypes sets the answer for GET /api/PackageTypes?warehouse_id=id.
func (f *FakeUpstream) SetScopedPackageTypes(id model.ID, types []model.PackageType) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.scopedTypes[id] = types
}

// FailNext makes the next n requests to path answer 500.
func (f *FakeUpstream) FailNext(path string, n int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[path] = n
}

// SetCreateResponse sets the status and JSON body of POST /api/Packages.
func (f *FakeUpstream) SetCreateResponse(status int, body any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.createStatus = status
	f.createBody = body
}

// Created returns the payloads received by POST /api/Packages.
func (f *FakeUpstream) Created() []model.PackagePayload {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.PackagePayload(nil), f.created...)
}

// ScopedQueries returns the warehouse_id values of scoped package type requests.
func (f *FakeUpstream) ScopedQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.scopedQueries...)
}

// RequestIDs returns the X-Request-ID header of every request received, in order.
func (f *FakeUpstream) RequestIDs() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.requestIDs...)
}

func (f *FakeUpstream) recordRequestID(c *gin.Context) {
	f.mu.Lock()
	f.requestIDs = append(f.requestIDs, c.GetHeader("X-Request-ID"))
	f.mu.Unlock()
	c.Next()
}

// failing consumes one queued failure for path.
func (f *FakeUpstream) failing(c *gin.Context) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	path := c.Request.URL.Path
	if f.failures[path] == 0 {
		return false
	}
	f.failures[path]--
	c.JSON(http.StatusInternalServerError, gin.H{"error": "upstream failure"})
	return true
}

func (f *FakeUpstream) list(items func() any) gin.HandlerFunc {
	return func(c *gin.Context) {
		if f.failing(c) {
			return
		}
		f.mu.Lock()
		defer f.mu.Unlock()
		c.JSON(http.StatusOK, items())
	}
}

func (f *FakeUpstream) packageTypesHandler(c *gin.Context) {
	if f.failing(c) {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	id, scoped := c.GetQuery("warehouse_id")
	if !scoped {
		c.JSON(http.StatusOK, f.packageTypes)
		return
	}

	f.scopedQueries = append(f.scopedQueries, id)
	types, ok := f.scopedTypes[model.ID(id)]
	if !ok {
		types = f.packageTypes
	}
	c.JSON(http.StatusOK, types)
}

func (f *FakeUpstream) createHandler(c *gin.Context) {
	if f.failing(c) {
		return
	}

	var payload model.PackagePayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid payload"})
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.created = append(f.created, payload)
	c.JSON(f.createStatus, f.createBody)
}
