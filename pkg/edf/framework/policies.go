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

// DirectionQueueAccessor is the read-only, policy-facing view of one direction's
// queue. Policies use it to inspect queue heads; they never mutate queues.
type DirectionQueueAccessor interface {
	// Direction returns the I/O direction this queue serves.
	Direction() types.Direction

	// Len returns the number of items currently queued.
	Len() int

	// PeekHead returns the head item without removing it, or nil if empty.
	PeekHead() types.QueueItemAccessor
}

// DispatchOrderingPolicy decides which direction's queue the dispatcher services next
// during a drain. The dispatcher calls SelectQueue in a loop, popping the head of the
// returned queue each time, until the policy reports that no queue has dispatchable
// work.
//
// The original elevator hard-coded a read-before-write bias here; modeling the
// decision as a policy makes that bias (and its write-starvation trade-off) a
// configuration choice.
type DispatchOrderingPolicy interface {
	// Name returns the registered name of the policy.
	Name() string

	// SelectQueue returns the queue whose head should be dispatched next among the
	// given direction queues, considering only queues whose head deadline has
	// expired at now. It returns nil when no queue has an expired head, which ends
	// the drain. Queues are always presented in types.Directions order.
	//
	// SelectQueue must not mutate queue state. Policies may keep internal selection
	// state (e.g. a round-robin cursor); such state is serialized by the scheduler
	// along with every other mutating operation.
	SelectQueue(now types.Tick, queues []DirectionQueueAccessor) DirectionQueueAccessor

	// RequiredQueueCapabilities returns the capabilities a RequestQueue must provide
	// for this policy to deliver its documented behavior. An empty slice means the
	// policy works with any queue.
	RequiredQueueCapabilities() []QueueCapability
}
