// SPDX-License-Identifier: ice License 1.0

package tracking

import (
	"context"
)

func newDelivery() *Delivery {
	return &Delivery{done: make(chan struct{})}
}

func resolvedDelivery(delivered bool) *Delivery {
	d := newDelivery()
	d.resolve(delivered)

	return d
}

// resolve must be called exactly once.
func (d *Delivery) resolve(delivered bool) {
	d.delivered = delivered
	close(d.done)
}

// Done is closed once the outcome is known.
func (d *Delivery) Done() <-chan struct{} {
	return d.done
}

// Wait blocks until the outcome is known or ctx is done, in which case it reports false.
func (d *Delivery) Wait(ctx context.Context) bool {
	select {
	case <-d.done:
		return d.delivered
	case <-ctx.Done():
		return false
	}
}

// Delivered reports the outcome without blocking; it's false while the request is still in flight.
func (d *Delivery) Delivered() bool {
	select {
	case <-d.done:
		return d.delivered
	default:
		return false
	}
}
