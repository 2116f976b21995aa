package i18n

// Error message translation keys.
const (
	ErrKeyInvalidRequest       = "error.invalid_request"
	ErrKeyInvalidRequestBody   = "error.invalid_request_body"
	ErrKeyInternalError        = "error.internal_error"
	ErrKeyNotFound             = "error.not_found"
	ErrKeyRateLimitExceeded    = "error.rate_limit_exceeded"
	ErrKeyConflict             = "error.conflict"
	ErrKeyTimeout              = "error.timeout"
	ErrKeyIncompleteSelection  = "error.incomplete_selection"
	ErrKeyFormClosed           = "error.form_closed"
	ErrKeySubmitInProgress     = "error.submit_in_progress"
	ErrKeyUnknownField         = "error.unknown_field"
	ErrKeyUpstreamUnavailable  = "error.upstream_unavailable"
	ErrKeyIdempotencyInFlight  = "error.idempotency_in_flight"
	ErrKeyIdempotencyKeyTooBig = "error.idempotency_key_too_long"
)

// Page text translation keys.
const (
	KeyFormTitle             = "form.title"
	KeyFormModalLabel        = "form.modal_label"
	KeyFormOpenButton        = "form.open_button"
	KeyFormCustomer          = "form.customer"
	KeyFormWarehouse         = "form.warehouse"
	KeyFormPackageType       = "form.package_type"
	KeyFormSelectCustomer    = "form.select_customer"
	KeyFormSelectWarehouse   = "form.select_warehouse"
	KeyFormSelectPackageType = "form.select_package_type"
	KeyFormSubmit            = "form.submit"
	KeyFormClose             = "form.close"
	KeyFormListLoading       = "form.list_loading"
	KeyFormListFailed        = "form.list_failed"
	KeyFormRefreshTypes      = "form.refresh_package_types"
)
