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

// Package listqueue provides the default FIFO queue backend, built on a standard
// library container/list.List. Append, removal by handle, and neighbor lookup are all
// O(1), matching the intrusive-list mechanics of the original elevator. Admission
// order stands in for deadline order, which is exact only under constant weights.
package listqueue

import (
	"container/list"

	"github.com/virtblk/edf-elevator/pkg/edf/framework"
	"github.com/virtblk/edf-elevator/pkg/edf/framework/plugins/queue"
	"github.com/virtblk/edf-elevator/pkg/edf/types"
)

// ListQueueName is the name of the list queue backend.
const ListQueueName = "ListQueue"

func init() {
	queue.MustRegisterQueue(queue.RegisteredQueueName(ListQueueName),
		func() (framework.RequestQueue, error) {
			return newListQueue(), nil
		})
}

// listQueue implements framework.RequestQueue on a container/list.List.
// It performs no internal locking; the scheduler serializes all access.
type listQueue struct {
	requests *list.List
	byteSize uint64
}

// listItemHandle is the concrete types.QueueItemHandle used by listQueue. It wraps
// the list.Element and records the owning queue so foreign handles are rejected.
type listItemHandle struct {
	element       *list.Element
	owner         *listQueue
	isInvalidated bool
}

// Handle returns the underlying queue-specific raw handle.
func (lh *listItemHandle) Handle() any {
	return lh.element
}

// Invalidate marks this handle instance as no longer valid for future operations.
func (lh *listItemHandle) Invalidate() {
	lh.isInvalidated = true
}

// IsInvalidated returns true if this handle instance has been marked as invalid.
func (lh *listItemHandle) IsInvalidated() bool {
	return lh.isInvalidated
}

var _ types.QueueItemHandle = &listItemHandle{}

func newListQueue() *listQueue {
	return &listQueue{
		requests: list.New(),
	}
}

// --- framework.RequestQueue interface implementation ---

// Add appends an item to the tail of the list.
func (lq *listQueue) Add(item types.QueueItemAccessor) error {
	if item == nil {
		return framework.ErrNilQueueItem
	}

	element := lq.requests.PushBack(item)
	lq.byteSize += item.Request().ByteSize()
	item.SetHandle(&listItemHandle{element: element, owner: lq})
	return nil
}

// Remove removes the item identified by the given handle from the queue.
func (lq *listQueue) Remove(handle types.QueueItemHandle) (types.QueueItemAccessor, error) {
	lh, err := lq.checkHandle(handle)
	if err != nil {
		return nil, err
	}

	item := lh.element.Value.(types.QueueItemAccessor)
	lq.requests.Remove(lh.element)
	lq.byteSize -= item.Request().ByteSize()
	handle.Invalidate()
	return item, nil
}

// Predecessor returns the item queued immediately before the handle's item, or nil at
// the head of the queue.
func (lq *listQueue) Predecessor(handle types.QueueItemHandle) (types.QueueItemAccessor, error) {
	lh, err := lq.checkHandle(handle)
	if err != nil {
		return nil, err
	}

	prev := lh.element.Prev()
	if prev == nil {
		return nil, nil
	}
	return prev.Value.(types.QueueItemAccessor), nil
}

// Successor returns the item queued immediately after the handle's item, or nil at
// the tail of the queue.
func (lq *listQueue) Successor(handle types.QueueItemHandle) (types.QueueItemAccessor, error) {
	lh, err := lq.checkHandle(handle)
	if err != nil {
		return nil, err
	}

	next := lh.element.Next()
	if next == nil {
		return nil, nil
	}
	return next.Value.(types.QueueItemAccessor), nil
}

// checkHandle validates that handle is a live handle owned by this queue.
func (lq *listQueue) checkHandle(handle types.QueueItemHandle) (*listItemHandle, error) {
	if handle == nil || handle.IsInvalidated() {
		return nil, framework.ErrInvalidQueueItemHandle
	}
	lh, ok := handle.(*listItemHandle)
	if !ok || lh.owner != lq {
		return nil, framework.ErrInvalidQueueItemHandle
	}
	return lh, nil
}

// Name returns the name of the queue backend.
func (lq *listQueue) Name() string {
	return ListQueueName
}

// Capabilities returns the capabilities of the queue backend.
func (lq *listQueue) Capabilities() []framework.QueueCapability {
	return []framework.QueueCapability{framework.CapabilityFIFO}
}

// Len returns the number of items in the queue.
func (lq *listQueue) Len() int {
	return lq.requests.Len()
}

// ByteSize returns the total byte size of all items in the queue.
func (lq *listQueue) ByteSize() uint64 {
	return lq.byteSize
}

// PeekHead returns the oldest item without removing it, or nil if the queue is empty.
func (lq *listQueue) PeekHead() types.QueueItemAccessor {
	front := lq.requests.Front()
	if front == nil {
		return nil
	}
	return front.Value.(types.QueueItemAccessor)
}

var _ framework.RequestQueue = &listQueue{}
