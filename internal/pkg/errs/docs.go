// Package errs provides the typed errors shared by the tracking service.
//
// Every error type pairs a sentinel (ErrValueIsRequired, ErrObjectNotFound, ...)
// with a struct carrying details. Unwrap returns the sentinel, so callers
// classify failures with errors.Is and inspect details with errors.As:
//
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    return ctx.JSON(http.StatusNotFound, ...)
//	}
//
// The HTTP adapter maps the sentinels to status codes:
//   - ErrValueIsRequired, ErrValueIsInvalid, ErrValueIsOutOfRange -> 400
//   - ErrObjectNotFound -> 404
//   - ErrObjectConflict -> 409
package errs
