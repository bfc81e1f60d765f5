// Package errs holds the typed errors shared by the domain, the use cases and the
// adapters of the storefront backend.
//
// Every error type pairs a sentinel with a struct carrying the offending parameter:
//
//	ErrValueIsRequired   ValueIsRequiredError    a mandatory value is missing
//	ErrValueIsInvalid    ValueIsInvalidError     a value is malformed
//	ErrValueIsOutOfRange ValueIsOutOfRangeError  a value falls outside its bounds
//	ErrObjectNotFound    ObjectNotFoundError     a looked-up object does not exist
//	ErrConflict          ConflictError           the current object state forbids the operation
//
// Most constructors come in two flavours, with and without a cause. Unwrap returns the
// sentinel, so callers classify with errors.Is and read details with errors.As.
//
// The HTTP adapter maps the sentinels onto status codes; nothing below the adapter
// layer knows about HTTP.
package errs
