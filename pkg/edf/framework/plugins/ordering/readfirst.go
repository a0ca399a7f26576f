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

// ReadFirstPolicyName is the name of the read-first ordering policy.
//
// ReadFirst reproduces the original elevator's dispatch order: every expired read is
// drained before any write is considered. Reads are usually on someone's critical
// path while writes tolerate batching, but the bias is absolute: under sustained
// read arrival with read heads that stay expired, writes starve. Callers that cannot
// accept that trade-off should configure RoundRobin or EarliestHead instead.
const ReadFirstPolicyName = "ReadFirst"

func init() {
	MustRegisterPolicy(RegisteredPolicyName(ReadFirstPolicyName),
		func() (framework.DispatchOrderingPolicy, error) {
			return newReadFirst(), nil
		})
}

type readFirst struct{}

func newReadFirst() *readFirst {
	return &readFirst{}
}

// Name returns the name of the policy.
func (p *readFirst) Name() string {
	return ReadFirstPolicyName
}

// SelectQueue returns the first queue in types.Directions order (reads before writes)
// whose head deadline has expired, or nil when no queue has an expired head.
func (p *readFirst) SelectQueue(now types.Tick, queues []framework.DirectionQueueAccessor) framework.DirectionQueueAccessor {
	for _, q := range queues {
		if q == nil {
			continue
		}
		if head := q.PeekHead(); head != nil && head.Deadline().Expired(now) {
			return q
		}
	}
	return nil
}

// RequiredQueueCapabilities returns an empty slice; the policy only inspects heads
// and works with any queue backend.
func (p *readFirst) RequiredQueueCapabilities() []framework.QueueCapability {
	return []framework.QueueCapability{}
}

var _ framework.DispatchOrderingPolicy = &readFirst{}
