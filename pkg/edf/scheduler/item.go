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

package scheduler

import (
	"github.com/virtblk/edf-elevator/pkg/edf/types"
)

// item is the scheduler's internal representation of an admitted request. It wraps
// the caller-owned types.IORequest and carries the scheduling metadata (arrival tick,
// deadline, queue handle) the caller's object never sees. The scheduler holds the
// only references; request storage stays with the caller.
type item struct {
	request types.IORequest
	arrival types.Tick
	// deadline is assigned once at admission and lowered only by ProposeMerge.
	deadline types.Tick
	handle   types.QueueItemHandle
}

var _ types.QueueItemAccessor = &item{}

func newItem(request types.IORequest, arrival, deadline types.Tick) *item {
	return &item{
		request:  request,
		arrival:  arrival,
		deadline: deadline,
	}
}

// Request returns the underlying caller-owned request.
func (it *item) Request() types.IORequest { return it.request }

// ArrivalTime returns the tick at which the request was admitted.
func (it *item) ArrivalTime() types.Tick { return it.arrival }

// Deadline returns the tick after which the request is eligible for dispatch.
func (it *item) Deadline() types.Tick { return it.deadline }

// Handle returns the queue handle for this item, or nil if it is not in a queue.
func (it *item) Handle() types.QueueItemHandle { return it.handle }

// SetHandle associates a queue handle with this item. Called by RequestQueue.Add.
func (it *item) SetHandle(handle types.QueueItemHandle) { it.handle = handle }

// setDeadline lowers the deadline as the result of a merge. Scheduler-internal: the
// deadline is immutable at every other point in the item's life.
func (it *item) setDeadline(deadline types.Tick) { it.deadline = deadline }
