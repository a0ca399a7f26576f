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

package ordering

import (
	"github.com/virtblk/edf-elevator/pkg/edf/framework"
	"github.com/virtblk/edf-elevator/pkg/edf/types"
)

// EarliestHeadPolicyName is the name of the earliest-head ordering policy.
//
// EarliestHead is a greedy strategy that compares the expired heads of all direction
// queues and selects the one with the earliest deadline, so the drained sequence is
// globally deadline-ordered across directions. Ties go to reads, preserving the
// original bias only when urgency is equal.
const EarliestHeadPolicyName = "EarliestHead"

func init() {
	MustRegisterPolicy(RegisteredPolicyName(EarliestHeadPolicyName),
		func() (framework.DispatchOrderingPolicy, error) {
			return newEarliestHead(), nil
		})
}

type earliestHead struct{}

func newEarliestHead() *earliestHead {
	return &earliestHead{}
}

// Name returns the name of the policy.
func (p *earliestHead) Name() string {
	return EarliestHeadPolicyName
}

// SelectQueue returns the queue whose expired head carries the earliest deadline, or
// nil when no queue has an expired head. Queues arrive in types.Directions order, so
// a strict Before comparison leaves ties with the read queue.
func (p *earliestHead) SelectQueue(now types.Tick, queues []framework.DirectionQueueAccessor) framework.DirectionQueueAccessor {
	var best framework.DirectionQueueAccessor
	var bestDeadline types.Tick

	for _, q := range queues {
		if q == nil {
			continue
		}
		head := q.PeekHead()
		if head == nil || !head.Deadline().Expired(now) {
			continue
		}
		if best == nil || head.Deadline().Before(bestDeadline) {
			best = q
			bestDeadline = head.Deadline()
		}
	}
	return best
}

// RequiredQueueCapabilities requires deadline-ordered queues: with FIFO queues the
// head is only approximately the earliest deadline, and a cross-direction comparison
// of approximations would advertise an ordering guarantee the policy cannot keep.
func (p *earliestHead) RequiredQueueCapabilities() []framework.QueueCapability {
	return []framework.QueueCapability{framework.CapabilityDeadlineOrdered}
}

var _ framework.DispatchOrderingPolicy = &earliestHead{}
