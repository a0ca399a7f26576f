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

// Package queue_test runs the framework.RequestQueue contract against every
// registered backend.
package queue_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtblk/edf-elevator/pkg/edf/framework"
	"github.com/virtblk/edf-elevator/pkg/edf/framework/plugins/queue"
	"github.com/virtblk/edf-elevator/pkg/edf/framework/plugins/queue/btreequeue"
	"github.com/virtblk/edf-elevator/pkg/edf/framework/plugins/queue/listqueue"
	"github.com/virtblk/edf-elevator/pkg/edf/types"
)

// testRequest is a minimal caller-owned request.
type testRequest struct {
	id        string
	direction types.Direction
	byteSize  uint64
}

func (r *testRequest) ID() string                 { return r.id }
func (r *testRequest) Direction() types.Direction { return r.direction }
func (r *testRequest) ByteSize() uint64           { return r.byteSize }

// testItem is a minimal types.QueueItemAccessor for exercising queues directly,
// without a scheduler.
type testItem struct {
	request  *testRequest
	arrival  types.Tick
	deadline types.Tick
	handle   types.QueueItemHandle
}

func newTestItem(id string, deadline types.Tick, byteSize uint64) *testItem {
	return &testItem{
		request:  &testRequest{id: id, direction: types.DirectionRead, byteSize: byteSize},
		deadline: deadline,
	}
}

func (it *testItem) Request() types.IORequest          { return it.request }
func (it *testItem) ArrivalTime() types.Tick           { return it.arrival }
func (it *testItem) Deadline() types.Tick              { return it.deadline }
func (it *testItem) Handle() types.QueueItemHandle     { return it.handle }
func (it *testItem) SetHandle(h types.QueueItemHandle) { it.handle = h }

var queueNames = []queue.RegisteredQueueName{
	listqueue.ListQueueName,
	btreequeue.BTreeQueueName,
}

func newQueue(t *testing.T, name queue.RegisteredQueueName) framework.RequestQueue {
	t.Helper()
	q, err := queue.NewQueueFromName(name)
	require.NoError(t, err, "constructing registered queue %q must succeed", name)
	return q
}

func TestQueueConformance(t *testing.T) {
	t.Parallel()

	for _, name := range queueNames {
		t.Run(string(name), func(t *testing.T) {
			t.Parallel()

			t.Run("AddAssignsHandleAndAccounts", func(t *testing.T) {
				t.Parallel()
				q := newQueue(t, name)

				it := newTestItem("a", 100, 4096)
				require.NoError(t, q.Add(it))
				require.NotNil(t, it.Handle(), "Add must associate a handle")
				assert.False(t, it.Handle().IsInvalidated())
				assert.Equal(t, 1, q.Len())
				assert.Equal(t, uint64(4096), q.ByteSize())
			})

			t.Run("AddNilItem", func(t *testing.T) {
				t.Parallel()
				q := newQueue(t, name)
				assert.ErrorIs(t, q.Add(nil), framework.ErrNilQueueItem)
			})

			t.Run("RemoveInvalidatesHandle", func(t *testing.T) {
				t.Parallel()
				q := newQueue(t, name)

				it := newTestItem("a", 100, 512)
				require.NoError(t, q.Add(it))

				removed, err := q.Remove(it.Handle())
				require.NoError(t, err)
				assert.Same(t, it, removed)
				assert.True(t, it.Handle().IsInvalidated())
				assert.Equal(t, 0, q.Len())
				assert.Equal(t, uint64(0), q.ByteSize())

				_, err = q.Remove(it.Handle())
				assert.ErrorIs(t, err, framework.ErrInvalidQueueItemHandle,
					"a second remove through the same handle must fail")
			})

			t.Run("RemoveForeignHandle", func(t *testing.T) {
				t.Parallel()
				q := newQueue(t, name)
				other := newQueue(t, name)

				it := newTestItem("a", 100, 512)
				require.NoError(t, other.Add(it))

				_, err := q.Remove(it.Handle())
				assert.ErrorIs(t, err, framework.ErrInvalidQueueItemHandle)

				_, err = q.Remove(nil)
				assert.ErrorIs(t, err, framework.ErrInvalidQueueItemHandle)
			})

			t.Run("NeighborLookup", func(t *testing.T) {
				t.Parallel()
				q := newQueue(t, name)

				// Deadlines strictly increasing, so FIFO order and deadline order
				// agree and the walk below holds for both backends.
				items := make([]*testItem, 0, 3)
				for i := 0; i < 3; i++ {
					it := newTestItem(fmt.Sprintf("item-%d", i), types.Tick(100*(i+1)), 512)
					require.NoError(t, q.Add(it))
					items = append(items, it)
				}

				pred, err := q.Predecessor(items[0].Handle())
				require.NoError(t, err)
				assert.Nil(t, pred, "head has no predecessor")

				succ, err := q.Successor(items[2].Handle())
				require.NoError(t, err)
				assert.Nil(t, succ, "tail has no successor")

				mid, err := q.Successor(items[0].Handle())
				require.NoError(t, err)
				require.NotNil(t, mid)
				assert.Equal(t, "item-1", mid.Request().ID())

				back, err := q.Predecessor(items[2].Handle())
				require.NoError(t, err)
				require.NotNil(t, back)
				assert.Equal(t, "item-1", back.Request().ID())

				// Removing the middle entry must splice the walk.
				_, err = q.Remove(items[1].Handle())
				require.NoError(t, err)
				succ, err = q.Successor(items[0].Handle())
				require.NoError(t, err)
				require.NotNil(t, succ)
				assert.Equal(t, "item-2", succ.Request().ID())
			})

			t.Run("PeekHeadEmpty", func(t *testing.T) {
				t.Parallel()
				q := newQueue(t, name)
				assert.Nil(t, q.PeekHead())
			})
		})
	}
}

func TestListQueue_FIFOOrder(t *testing.T) {
	t.Parallel()
	q := newQueue(t, listqueue.ListQueueName)

	// Admission order deliberately disagrees with deadline order.
	first := newTestItem("first", 300, 512)
	second := newTestItem("second", 100, 512)
	require.NoError(t, q.Add(first))
	require.NoError(t, q.Add(second))

	head := q.PeekHead()
	require.NotNil(t, head)
	assert.Equal(t, "first", head.Request().ID(),
		"FIFO backend must surface admission order, not deadline order")
	assert.Contains(t, q.Capabilities(), framework.CapabilityFIFO)
}

func TestBTreeQueue_DeadlineOrder(t *testing.T) {
	t.Parallel()
	q := newQueue(t, btreequeue.BTreeQueueName)

	first := newTestItem("first", 300, 512)
	second := newTestItem("second", 100, 512)
	tied := newTestItem("tied", 100, 512)
	require.NoError(t, q.Add(first))
	require.NoError(t, q.Add(second))
	require.NoError(t, q.Add(tied))

	head := q.PeekHead()
	require.NotNil(t, head)
	assert.Equal(t, "second", head.Request().ID(),
		"deadline-ordered backend must surface the earliest deadline")
	assert.Contains(t, q.Capabilities(), framework.CapabilityDeadlineOrdered)

	// Equal deadlines dispatch in admission order.
	succ, err := q.Successor(head.Handle())
	require.NoError(t, err)
	require.NotNil(t, succ)
	assert.Equal(t, "tied", succ.Request().ID())

	// Neighbor lookup walks deadline order, not admission order.
	last, err := q.Successor(succ.Handle())
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "first", last.Request().ID())
}
