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

// RoundRobinPolicyName is the name of the round-robin ordering policy.
//
// RoundRobin advances a cursor over the direction queues on every selection, so
// eligible reads and writes interleave one-for-one and neither direction can starve
// the other. A direction with no expired head forfeits its turn.
const RoundRobinPolicyName = "RoundRobin"

func init() {
	MustRegisterPolicy(RegisteredPolicyName(RoundRobinPolicyName),
		func() (framework.DispatchOrderingPolicy, error) {
			return newRoundRobin(), nil
		})
}

// roundRobin carries the rotation cursor between calls. The scheduler serializes
// SelectQueue with all other mutating operations, so the cursor needs no lock.
type roundRobin struct {
	next int
}

func newRoundRobin() *roundRobin {
	return &roundRobin{}
}

// Name returns the name of the policy.
func (p *roundRobin) Name() string {
	return RoundRobinPolicyName
}

// SelectQueue returns the next queue in rotation whose head deadline has expired, or
// nil when no queue has an expired head.
func (p *roundRobin) SelectQueue(now types.Tick, queues []framework.DirectionQueueAccessor) framework.DirectionQueueAccessor {
	if len(queues) == 0 {
		return nil
	}

	for i := range queues {
		q := queues[(p.next+i)%len(queues)]
		if q == nil {
			continue
		}
		if head := q.PeekHead(); head != nil && head.Deadline().Expired(now) {
			p.next = (p.next + i + 1) % len(queues)
			return q
		}
	}
	return nil
}

// RequiredQueueCapabilities returns an empty slice; the policy only inspects heads
// and works with any queue backend.
func (p *roundRobin) RequiredQueueCapabilities() []framework.QueueCapability {
	return []framework.QueueCapability{}
}

var _ framework.DispatchOrderingPolicy = &roundRobin{}
