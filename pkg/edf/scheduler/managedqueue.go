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
	"sync/atomic"

	"github.com/go-logr/logr"

	"github.com/virtblk/edf-elevator/pkg/edf/framework"
	"github.com/virtblk/edf-elevator/pkg/edf/types"
)

// managedQueue wraps one direction's framework.RequestQueue and maintains
// atomically-updated depth and byte statistics beside it.
//
// The queue itself is mutated only on the scheduler's serialized path; the atomic
// mirrors exist so the administrative and metrics read paths get consistent numbers
// without taking part in that serialization. All mutations MUST go through this
// wrapper; touching the underlying queue directly would let the mirrors drift.
type managedQueue struct {
	queue     framework.RequestQueue
	direction types.Direction
	len       atomic.Int64
	byteSize  atomic.Uint64
	logger    logr.Logger
}

func newManagedQueue(q framework.RequestQueue, direction types.Direction, logger logr.Logger) *managedQueue {
	return &managedQueue{
		queue:     q,
		direction: direction,
		logger: logger.WithName("managed-queue").WithValues(
			"direction", direction.String(),
			"queueType", q.Name(),
		),
	}
}

func (mq *managedQueue) add(it types.QueueItemAccessor) error {
	if err := mq.queue.Add(it); err != nil {
		return err
	}
	mq.len.Add(1)
	mq.byteSize.Add(it.Request().ByteSize())
	return nil
}

func (mq *managedQueue) remove(handle types.QueueItemHandle) (types.QueueItemAccessor, error) {
	removed, err := mq.queue.Remove(handle)
	if err != nil {
		return nil, err
	}
	mq.len.Add(-1)
	// Two's-complement add is the atomic way to subtract from a Uint64.
	mq.byteSize.Add(^removed.Request().ByteSize() + 1)
	return removed, nil
}

// --- Pass-through and accessor methods ---

func (mq *managedQueue) name() string                      { return mq.queue.Name() }
func (mq *managedQueue) peekHead() types.QueueItemAccessor { return mq.queue.PeekHead() }
func (mq *managedQueue) queueLen() int                     { return int(mq.len.Load()) }
func (mq *managedQueue) queueByteSize() uint64             { return mq.byteSize.Load() }

func (mq *managedQueue) predecessor(handle types.QueueItemHandle) (types.QueueItemAccessor, error) {
	return mq.queue.Predecessor(handle)
}

func (mq *managedQueue) successor(handle types.QueueItemHandle) (types.QueueItemAccessor, error) {
	return mq.queue.Successor(handle)
}

// accessor returns the read-only, policy-facing view of this queue.
func (mq *managedQueue) accessor() framework.DirectionQueueAccessor {
	return &directionQueueAccessor{mq: mq}
}

// directionQueueAccessor implements framework.DirectionQueueAccessor over a
// managedQueue.
type directionQueueAccessor struct {
	mq *managedQueue
}

func (a *directionQueueAccessor) Direction() types.Direction        { return a.mq.direction }
func (a *directionQueueAccessor) Len() int                          { return a.mq.queueLen() }
func (a *directionQueueAccessor) PeekHead() types.QueueItemAccessor { return a.mq.peekHead() }

var _ framework.DirectionQueueAccessor = &directionQueueAccessor{}
