package pndcp

import "errors"

// Validator accumulates validation errors found while checking a parsed
// frame for size/field consistency, mirroring the teacher's own
// accumulator pattern (ethernet.Frame.ValidateSize, dhcpv4.Frame's option
// walk). It is a diagnostic tool for offline/operator use (see
// [github.com/soypat/pndcp/frame.Frame.Validate]), not the hot receive
// path: Parse itself returns the first error immediately and drops the
// frame (§7 propagation policy), allocation-free.
type Validator struct {
	accum []error
}

// AddError appends err to the accumulated error list. Panics if err is nil.
func (v *Validator) AddError(err error) {
	if err == nil {
		panic("pndcp: AddError called with nil error")
	}
	v.accum = append(v.accum, err)
}

// HasError reports whether any error has been accumulated.
func (v *Validator) HasError() bool {
	return len(v.accum) != 0
}

// Err joins all accumulated errors, or returns nil if none were recorded.
func (v *Validator) Err() error {
	switch len(v.accum) {
	case 0:
		return nil
	case 1:
		return v.accum[0]
	default:
		return errors.Join(v.accum...)
	}
}

// ErrPop returns the first accumulated error (or nil) and resets the
// Validator for reuse, avoiding reallocation of the backing array.
func (v *Validator) ErrPop() error {
	if len(v.accum) == 0 {
		return nil
	}
	err := v.accum[0]
	v.accum = v.accum[:0]
	return err
}

// Reset clears all accumulated errors without returning them.
func (v *Validator) Reset() {
	v.accum = v.accum[:0]
}
