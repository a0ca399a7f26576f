/*
Copyright 2026 The EDF Elevator Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package framework

import (
	"github.com/virtblk/edf-elevator/pkg/edf/types"
)

// QueueCapability defines a functional capability a RequestQueue implementation
// provides. Ordering policies declare the capabilities they require so that
// configuration validation can refuse incompatible pairings up front.
type QueueCapability string

const (
	// CapabilityFIFO indicates the queue preserves admission order: PeekHead returns
	// the oldest item. Under constant weights admission order approximates deadline
	// order, which is the original design's assumption.
	CapabilityFIFO QueueCapability = "FIFO"

	// CapabilityDeadlineOrdered indicates the queue keeps items sorted by deadline:
	// PeekHead returns the item with the earliest deadline regardless of admission
	// order, so a drain is exact even when weights changed while requests were in
	// flight.
	CapabilityDeadlineOrdered QueueCapability = "DeadlineOrdered"
)

// RequestQueue is the contract for a single direction's queue of admitted requests.
//
// Implementations are NOT goroutine-safe: the scheduler owns serialization of all
// queue access (one mutator at a time, readers serialized against mutation) and
// performs no internal locking on this path. Implementations are unbounded; admission
// control happens outside the queue.
type RequestQueue interface {
	// Name returns the registered name of the concrete implementation.
	Name() string

	// Capabilities returns the set of functional capabilities this queue provides.
	Capabilities() []QueueCapability

	// Len returns the number of items currently queued.
	Len() int

	// ByteSize returns the total byte size of all queued items.
	ByteSize() uint64

	// PeekHead returns the item at the head of the queue without removing it, or nil
	// if the queue is empty. Which item is the head is defined by the queue's
	// capabilities.
	PeekHead() types.QueueItemAccessor

	// Add enqueues an item and associates a new handle with it via item.SetHandle.
	// The item must not be nil.
	Add(item types.QueueItemAccessor) error

	// Remove finds and removes the item identified by handle, invalidating the
	// handle. It returns ErrInvalidQueueItemHandle for a nil, invalidated, or
	// foreign handle.
	Remove(handle types.QueueItemHandle) (types.QueueItemAccessor, error)

	// Predecessor returns the item ordered immediately before the one identified by
	// handle, or nil at the queue boundary. The boundary is not an error.
	Predecessor(handle types.QueueItemHandle) (types.QueueItemAccessor, error)

	// Successor returns the item ordered immediately after the one identified by
	// handle, or nil at the queue boundary. The boundary is not an error.
	Successor(handle types.QueueItemHandle) (types.QueueItemAccessor, error)
}
