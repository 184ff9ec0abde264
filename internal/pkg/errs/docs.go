// Package errs provides the typed errors shared by the order tracking service.
// Every error follows the same shape so callers can classify failures with
// errors.Is against a sentinel and errors.As against the struct type:
//   - ObjectNotFoundError: an order or recipient does not exist, or two aggregates
//     disagree about ownership
//   - ValueIsInvalidError: a value, such as an order status or role, was rejected
//   - ValueIsRequiredError: a mandatory value is missing
//   - ValueIsOutOfRangeError: a numeric value, such as a page number, is out of bounds
//   - ActionIsNotAllowedError: the caller's role or identity forbids the action
//
// Each type has a constructor with and without cause, an Error method and an
// Unwrap method returning its sentinel.
package errs
