// Package try provides Try[T], a value that is either a success carrying a T
// or a failure carrying an error.
//
// Every stage of a handler pipeline exchanges Try values, so expected absence
// (a missing query, an empty error list) is inspected by branching instead of
// by nil checks:
//
//	t := try.Unwrap(raw.Errors, raw.Errors != nil, "no error found for %v", raw)
//	if errs, err := t.Get(); err == nil {
//	    // errors were reported
//	}
package try
