package form

import "errors"

var (
	// ErrIncompleteSelection is returned by Submit when a selection is missing.
	ErrIncompleteSelection = errors.New("customer, warehouse and package type are required")
	// ErrFormClosed is returned by Submit while the modal is closed.
	ErrFormClosed = errors.New("package form is not open")
	// ErrSubmitInProgress is returned by Submit while an earlier submit is in flight.
	ErrSubmitInProgress = errors.New("a submission is already in progress")
	// ErrAlreadyMounted is returned by a second call to Mount.
	ErrAlreadyMounted = errors.New("package form already mounted")
	// ErrUnmounted is returned by operations on a controller that has been torn down.
	ErrUnmounted = errors.New("package form unmounted")
	// ErrUnknownField is returned by Select for an unrecognised field name.
	ErrUnknownField = errors.New("unknown form field")
)
