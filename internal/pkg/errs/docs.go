// Package errs provides standardized error types for the automail simulator.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the domain model and the adapters.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside of its bounds (floors, priorities)
//   - ObjectNotFoundError: For when an object cannot be found (robots, deliveries)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method so errors.Is matches the sentinel
package errs
