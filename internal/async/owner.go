// Package async tags asynchronous work with the liveness of its owner so a
// result that lands after the owner was torn down can be discarded instead of
// applied to dead state.
package async

import "sync/atomic"

// Owner is the liveness handle a component holds for the async operations it
// dispatches.
type Owner struct {
	closed atomic.Bool
}

// NewOwner returns a live owner.
func NewOwner() *Owner {
	return &Owner{}
}

// Close marks the owner as torn down. Results resolving afterwards must be
// dropped.
func (o *Owner) Close() {
	o.closed.Store(true)
}

// Live reports whether results may still be applied.
func (o *Owner) Live() bool {
	return !o.closed.Load()
}
