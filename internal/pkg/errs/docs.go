// Package errs provides standardized error types for the marketplace order service.
// Every error type follows the same shape so handlers can classify failures with
// errors.Is against a sentinel and errors.As against the concrete type:
//
//   - a sentinel error variable (e.g., ErrValueIsRequired)
//   - a struct type carrying the offending parameter and an optional cause
//   - constructors with and without cause
//   - Error() producing a single-line message and Unwrap() returning the sentinel
//
// The available types are ObjectNotFoundError, ValueIsInvalidError,
// ValueIsOutOfRangeError, ValueIsRequiredError and VersionIsInvalidError. The last
// one signals an optimistic concurrency conflict on a versioned aggregate.
package errs
