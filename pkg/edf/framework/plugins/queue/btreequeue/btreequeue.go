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

// Package btreequeue provides a deadline-ordered queue backend built on a B-tree.
// PeekHead always returns the earliest-deadline item regardless of admission order,
// so a drain stays exact even when weights are retuned while requests are in flight,
// closing the ordering gap the default FIFO backend inherits from the original design.
//
// The trade-off is that removal and neighbor lookup are O(log n) instead of O(1), and
// neighbor lookup walks deadline order rather than admission order. Ties on deadline
// fall back to admission sequence, so equal-deadline items still dispatch FIFO.
package btreequeue

import (
	"github.com/tidwall/btree"

	"github.com/virtblk/edf-elevator/pkg/edf/framework"
	"github.com/virtblk/edf-elevator/pkg/edf/framework/plugins/queue"
	"github.com/virtblk/edf-elevator/pkg/edf/types"
)

// BTreeQueueName is the name of the B-tree queue backend.
const BTreeQueueName = "BTreeQueue"

func init() {
	queue.MustRegisterQueue(queue.RegisteredQueueName(BTreeQueueName),
		func() (framework.RequestQueue, error) {
			return newBTreeQueue(), nil
		})
}

// entry is one queued item keyed by (deadline, admission sequence). The deadline is
// captured at Add time; a merge only ever lowers the survivor's deadline to a value
// it already sorts at (the survivor is the earlier of the pair), so the stored key
// never goes stale.
type entry struct {
	deadline types.Tick
	seq      uint64
	item     types.QueueItemAccessor
}

// entryLess orders entries by deadline in happens-before order, breaking ties by
// admission sequence. Deadlines in one queue are assumed to span less than half the
// tick range, the same bound every wrap-tolerant comparison in the system relies on.
func entryLess(a, b *entry) bool {
	if a.deadline != b.deadline {
		return a.deadline.Before(b.deadline)
	}
	return a.seq < b.seq
}

// btreeItemHandle is the concrete types.QueueItemHandle used by btreeQueue.
type btreeItemHandle struct {
	entry         *entry
	owner         *btreeQueue
	isInvalidated bool
}

// Handle returns the underlying queue-specific raw handle.
func (bh *btreeItemHandle) Handle() any {
	return bh.entry
}

// Invalidate marks this handle instance as no longer valid for future operations.
func (bh *btreeItemHandle) Invalidate() {
	bh.isInvalidated = true
}

// IsInvalidated returns true if this handle instance has been marked as invalid.
func (bh *btreeItemHandle) IsInvalidated() bool {
	return bh.isInvalidated
}

var _ types.QueueItemHandle = &btreeItemHandle{}

// btreeQueue implements framework.RequestQueue on a tidwall/btree generic B-tree.
// Locking is disabled on the tree; the scheduler serializes all access.
type btreeQueue struct {
	tree     *btree.BTreeG[*entry]
	byteSize uint64
	nextSeq  uint64
}

func newBTreeQueue() *btreeQueue {
	return &btreeQueue{
		tree: btree.NewBTreeGOptions(entryLess, btree.Options{NoLocks: true}),
	}
}

// --- framework.RequestQueue interface implementation ---

// Add inserts an item keyed by its deadline.
func (bq *btreeQueue) Add(item types.QueueItemAccessor) error {
	if item == nil {
		return framework.ErrNilQueueItem
	}

	e := &entry{
		deadline: item.Deadline(),
		seq:      bq.nextSeq,
		item:     item,
	}
	bq.nextSeq++
	bq.tree.Set(e)
	bq.byteSize += item.Request().ByteSize()
	item.SetHandle(&btreeItemHandle{entry: e, owner: bq})
	return nil
}

// Remove removes the item identified by the given handle from the queue.
func (bq *btreeQueue) Remove(handle types.QueueItemHandle) (types.QueueItemAccessor, error) {
	bh, err := bq.checkHandle(handle)
	if err != nil {
		return nil, err
	}

	if _, ok := bq.tree.Delete(bh.entry); !ok {
		return nil, framework.ErrInvalidQueueItemHandle
	}
	bq.byteSize -= bh.entry.item.Request().ByteSize()
	handle.Invalidate()
	return bh.entry.item, nil
}

// Predecessor returns the item with the next-earlier (deadline, sequence) key, or nil
// if the handle's item already holds the earliest key.
func (bq *btreeQueue) Predecessor(handle types.QueueItemHandle) (types.QueueItemAccessor, error) {
	bh, err := bq.checkHandle(handle)
	if err != nil {
		return nil, err
	}

	var pred *entry
	bq.tree.Descend(bh.entry, func(e *entry) bool {
		if e == bh.entry {
			return true
		}
		pred = e
		return false
	})
	if pred == nil {
		return nil, nil
	}
	return pred.item, nil
}

// Successor returns the item with the next-later (deadline, sequence) key, or nil if
// the handle's item already holds the latest key.
func (bq *btreeQueue) Successor(handle types.QueueItemHandle) (types.QueueItemAccessor, error) {
	bh, err := bq.checkHandle(handle)
	if err != nil {
		return nil, err
	}

	var succ *entry
	bq.tree.Ascend(bh.entry, func(e *entry) bool {
		if e == bh.entry {
			return true
		}
		succ = e
		return false
	})
	if succ == nil {
		return nil, nil
	}
	return succ.item, nil
}

// checkHandle validates that handle is a live handle owned by this queue.
func (bq *btreeQueue) checkHandle(handle types.QueueItemHandle) (*btreeItemHandle, error) {
	if handle == nil || handle.IsInvalidated() {
		return nil, framework.ErrInvalidQueueItemHandle
	}
	bh, ok := handle.(*btreeItemHandle)
	if !ok || bh.owner != bq {
		return nil, framework.ErrInvalidQueueItemHandle
	}
	return bh, nil
}

// Name returns the name of the queue backend.
func (bq *btreeQueue) Name() string {
	return BTreeQueueName
}

// Capabilities returns the capabilities of the queue backend.
func (bq *btreeQueue) Capabilities() []framework.QueueCapability {
	return []framework.QueueCapability{framework.CapabilityDeadlineOrdered}
}

// Len returns the number of items in the queue.
func (bq *btreeQueue) Len() int {
	return bq.tree.Len()
}

// ByteSize returns the total byte size of all items in the queue.
func (bq *btreeQueue) ByteSize() uint64 {
	return bq.byteSize
}

// PeekHead returns the earliest-deadline item without removing it, or nil if the
// queue is empty.
func (bq *btreeQueue) PeekHead() types.QueueItemAccessor {
	e, ok := bq.tree.Min()
	if !ok {
		return nil
	}
	return e.item
}

var _ framework.RequestQueue = &btreeQueue{}
