// Package form holds the package form's view-state and the orchestration of
// its option list loads and submission.
package form

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/guttosm/package-form/internal/domain/model"
	"github.com/guttosm/package-form/internal/metrics"
	"github.com/guttosm/package-form/internal/upstream"
)

// API is the subset of the package API the form needs.
type API interface {
	ListPackageTypes(ctx context.Context) ([]model.PackageType, error)
	ListPackageTypesForWarehouse(ctx context.Context, warehouseID model.ID) ([]model.PackageType, error)
	ListWarehouses(ctx context.Context) ([]model.Warehouse, error)
	ListCustomers(ctx context.Context) ([]model.Customer, error)
	CreatePackage(ctx context.Context, payload model.PackagePayload) (upstream.CreateResult, error)
}

// Submission results, as recorded in metrics and audit logs.
const (
	ResultCreated    = "created"
	ResultRejected   = "rejected"
	ResultFailed     = "failed"
	ResultIncomplete = "incomplete"
)

// Option configures a Controller.
type Option func(*Controller)

// WithNotifier sets where success and failure messages go.
func WithNotifier(n Notifier) Option {
	return func(c *Controller) { c.notifier = n }
}

// WithLogger sets the controller's logger.
func WithLogger(l zerolog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithSkipUnscopedLoad makes Mount leave out the unscoped package type
// request and load only through the warehouse-scoped endpoint.
func WithSkipUnscopedLoad(skip bool) Option {
	return func(c *Controller) { c.skipUnscoped = skip }
}

// Controller is the state of one mounted package form. It is safe for
// concurrent use; network calls are made without holding the lock.
type Controller struct {
	api          API
	notifier     Notifier
	logger       zerolog.Logger
	skipUnscoped bool

	life    context.Context
	unmount context.CancelFunc

	mu           sync.Mutex
	mounted      bool
	open         bool
	submitting   bool
	selection    model.Selection
	customers    model.OptionList[model.Customer]
	warehouses   model.OptionList[model.Warehouse]
	packageTypes model.OptionList[model.PackageType]

	// ptGen identifies the load allowed to write packageTypes.
	ptGen    uint64
	ptCancel context.CancelFunc
}

// New creates an unmounted controller.
func New(api API, opts ...Option) *Controller {
	c := &Controller{
		api:      api,
		notifier: discardNotifier{},
		logger:   log.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.life, c.unmount = context.WithCancel(context.Background())
	return c
}

// Mount loads the three option lists concurrently and returns once all of
// them have settled. A failed list is logged and marked Failed; it never
// holds up the others. Package types are loaded unscoped first and then
// scoped to the still empty warehouse, which drops sold-out types.
func (c *Controller) Mount(ctx context.Context) error {
	c.mu.Lock()
	if c.life.Err() != nil {
		c.mu.Unlock()
		return ErrUnmounted
	}
	if c.mounted {
		c.mu.Unlock()
		return ErrAlreadyMounted
	}
	c.mounted = true
	c.customers.Loading()
	c.warehouses.Loading()
	c.mu.Unlock()

	var wg sync.WaitGroup
	wg.Add(3)
	go func() {
		defer wg.Done()
		c.loadInitialPackageTypes(ctx)
	}()
	go func() {
		defer wg.Done()
		c.loadWarehouses(ctx)
	}()
	go func() {
		defer wg.Done()
		c.loadCustomers(ctx)
	}()
	wg.Wait()
	return nil
}

// Unmount cancels every in-flight load. The controller must not be reused.
func (c *Controller) Unmount() {
	c.unmount()
}

// Open shows the modal.
func (c *Controller) Open() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = true
}

// Close hides the modal. Selections are kept.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.open = false
}

// SelectCustomer records the chosen customer.
func (c *Controller) SelectCustomer(id model.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection.CustomerID = id
}

// SelectPackageType records the chosen package type.
func (c *Controller) SelectPackageType(id model.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.selection.PackageTypeID = id
}

// SelectWarehouse records the chosen warehouse and, when it differs from the
// current one, replaces the package type list with the types that warehouse
// still has capacity for. Choosing the empty value reloads too, scoped to an
// empty warehouse id. It returns the load error, if any; a load superseded
// by a later selection returns nil.
func (c *Controller) SelectWarehouse(ctx context.Context, id model.ID) error {
	c.mu.Lock()
	if c.selection.WarehouseID == id {
		c.mu.Unlock()
		return nil
	}
	c.selection.WarehouseID = id
	c.mu.Unlock()

	return c.loadPackageTypes(ctx, id, true)
}

// Select records value for the named field.
func (c *Controller) Select(ctx context.Context, field Field, value model.ID) error {
	switch field {
	case FieldCustomer:
		c.SelectCustomer(value)
	case FieldWarehouse:
		return c.SelectWarehouse(ctx, value)
	case FieldPackageType:
		c.SelectPackageType(value)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// Submit posts the current selection. Without all three selections nothing
// is sent and ErrIncompleteSelection is returned. Otherwise exactly one
// create request is made and its outcome is reported through the notifier:
// success closes the modal, failure leaves it open. It returns one of the
// Result constants and the upstream error, which has already been reported.
func (c *Controller) Submit(ctx context.Context) (string, error) {
	c.mu.Lock()
	if !c.open {
		c.mu.Unlock()
		return "", ErrFormClosed
	}
	payload := c.selection.Payload()
	if err := payload.Validate(); err != nil {
		c.mu.Unlock()
		metrics.RecordSubmission(ResultIncomplete)
		return "", fmt.Errorf("%w: missing %s", ErrIncompleteSelection, strings.Join(payload.MissingFields(), ", "))
	}
	if c.submitting {
		c.mu.Unlock()
		return "", ErrSubmitInProgress
	}
	c.submitting = true
	c.mu.Unlock()

	ctx, cancel := c.bind(ctx)
	defer cancel()

	result, err := c.api.CreatePackage(ctx, payload)

	c.mu.Lock()
	c.submitting = false
	if err == nil {
		c.open = false
	}
	c.mu.Unlock()

	logger := c.logger.With().
		Str("customer_id", payload.CustomerID.String()).
		Str("warehouse_id", payload.WarehouseID.String()).
		Str("package_type_id", payload.PackageTypeID.String()).
		Logger()

	if err != nil {
		outcome := ResultFailed
		var rejected *upstream.RejectedError
		if errors.As(err, &rejected) {
			outcome = ResultRejected
		}
		metrics.RecordSubmission(outcome)
		logger.Warn().Err(err).Str("result", outcome).Msg("Package submission failed")
		c.notifier.Notify(KindError, err.Error())
		return outcome, err
	}

	metrics.RecordSubmission(ResultCreated)
	logger.Info().Str("result", ResultCreated).Msg("Package submitted")
	c.notifier.Notify(KindSuccess, result.Message)
	return ResultCreated, nil
}

// Snapshot returns a copy of the current view-state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Snapshot{
		Mounted:      c.mounted,
		Open:         c.open,
		Submitting:   c.submitting,
		Selection:    c.selection,
		Customers:    c.customers.Clone(),
		Warehouses:   c.warehouses.Clone(),
		PackageTypes: c.packageTypes.Clone(),
	}
}

// bind derives a context cancelled by either ctx or Unmount.
func (c *Controller) bind(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	stop := context.AfterFunc(c.life, cancel)
	return ctx, func() {
		stop()
		cancel()
	}
}

// loadPackageTypes replaces the package type list. Each call supersedes any
// load still in flight: the earlier request is cancelled and its response,
// should it still arrive, is discarded.
func (c *Controller) loadPackageTypes(ctx context.Context, warehouseID model.ID, scoped bool) error {
	ctx, cancel := c.bind(ctx)
	defer cancel()

	c.mu.Lock()
	if c.ptCancel != nil {
		c.ptCancel()
	}
	c.ptGen++
	gen := c.ptGen
	c.ptCancel = cancel
	c.packageTypes.Loading()
	c.mu.Unlock()

	var (
		types []model.PackageType
		err   error
	)
	if scoped {
		types, err = c.api.ListPackageTypesForWarehouse(ctx, warehouseID)
		if err == nil {
			types = model.FilterAvailable(types)
		}
	} else {
		types, err = c.api.ListPackageTypes(ctx)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	logger := c.logger.With().Str("list", "package_types").Str("warehouse_id", warehouseID.String()).Logger()
	if gen != c.ptGen {
		metrics.RecordStaleResponse("package_types")
		logger.Debug().Uint64("generation", gen).Msg("Discarded superseded package type response")
		return nil
	}
	c.ptCancel = nil

	if err != nil {
		c.packageTypes.Failed(err)
		logger.Error().Err(err).Msg("Error fetching package types")
		return err
	}
	if types == nil {
		types = []model.PackageType{}
	}
	c.packageTypes.Loaded(types)
	if scoped {
		logger.Debug().Interface("package_types", types).Msg("Loaded package types for warehouse")
	}
	return nil
}

func (c *Controller) loadInitialPackageTypes(ctx context.Context) {
	if !c.skipUnscoped {
		_ = c.loadPackageTypes(ctx, "", false)
	}

	c.mu.Lock()
	selected := c.selection.WarehouseID != ""
	c.mu.Unlock()
	if selected {
		return
	}
	_ = c.loadPackageTypes(ctx, "", true)
}

func (c *Controller) loadWarehouses(ctx context.Context) {
	ctx, cancel := c.bind(ctx)
	defer cancel()

	warehouses, err := c.api.ListWarehouses(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.warehouses.Failed(err)
		c.logger.Error().Err(err).Str("list", "warehouses").Msg("Error fetching warehouses")
		return
	}
	c.warehouses.Loaded(model.UniqueWarehouses(warehouses))
}

func (c *Controller) loadCustomers(ctx context.Context) {
	ctx, cancel := c.bind(ctx)
	defer cancel()

	customers, err := c.api.ListCustomers(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	if err != nil {
		c.customers.Failed(err)
		c.logger.Error().Err(err).Str("list", "customers").Msg("Error fetching customers")
		return
	}
	if customers == nil {
		customers = []model.Customer{}
	}
	c.customers.Loaded(customers)
}
