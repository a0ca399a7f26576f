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

package types

// IORequest is the contract for a caller-owned storage request submitted to the
// scheduler. The scheduler never copies, frees, or otherwise owns the object behind
// this interface; it only stamps scheduling metadata onto its own wrapper and holds an
// opaque handle while the request is queued.
type IORequest interface {
	// ID returns an optional, caller-facing identifier used for logging and tracing
	// only. The scheduler makes no dispatching decision based on it.
	ID() string

	// Direction returns the data direction of the request. The returned value is
	// treated as immutable for the lifetime of the request.
	Direction() Direction

	// ByteSize returns the size of the request's data transfer in bytes. It is used
	// for queue byte accounting and statistics, never for ordering.
	ByteSize() uint64
}

// QueueItemHandle is an opaque handle to a request that has been added to a
// framework.RequestQueue. It acts as a key for targeted O(1) operations (removal,
// neighbor lookup) without exposing the queue's internal structure.
//
// A handle is created by and bound to the specific queue instance that stores the
// item. A handle that has left its queue (via merge removal or dispatch) is
// invalidated and every subsequent operation on it is a non-erroneous no-op at the
// scheduler surface.
type QueueItemHandle interface {
	// Handle returns the underlying queue-specific raw handle (e.g. a *list.Element).
	// Callers outside the owning queue implementation treat it as opaque.
	Handle() any

	// Invalidate marks this handle as no longer valid for future operations. It MUST
	// be called by the owning queue when the item leaves the queue, and MUST be
	// idempotent.
	Invalidate()

	// IsInvalidated reports whether the handle has been invalidated.
	IsInvalidated() bool
}

// QueueItemAccessor is the read-only view of an admitted request that queue backends
// and ordering policies operate on. The scheduler creates one accessor per admission;
// the accessor, not the caller's IORequest, is what lives in a queue.
type QueueItemAccessor interface {
	// Request returns the underlying caller-owned request.
	Request() IORequest

	// ArrivalTime is the tick at which the request was admitted.
	ArrivalTime() Tick

	// Deadline is the tick after which the request is eligible for dispatch. It is
	// assigned exactly once at admission and changes only as the result of a merge,
	// where it becomes the minimum of the two merged deadlines.
	Deadline() Tick

	// Handle returns the QueueItemHandle for this item, or nil if the item is not
	// currently in a queue.
	Handle() QueueItemHandle

	// SetHandle associates a handle with this item. It MUST be called by a
	// framework.RequestQueue implementation inside Add, immediately after the handle
	// is created, and is not intended for use anywhere else.
	SetHandle(handle QueueItemHandle)
}
