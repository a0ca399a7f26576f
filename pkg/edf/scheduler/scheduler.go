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
	"fmt"
	"sync/atomic"

	"github.com/go-logr/logr"
	"go.uber.org/multierr"

	"github.com/virtblk/edf-elevator/pkg/edf/framework"
	"github.com/virtblk/edf-elevator/pkg/edf/framework/plugins/ordering"
	"github.com/virtblk/edf-elevator/pkg/edf/framework/plugins/queue"
	"github.com/virtblk/edf-elevator/pkg/edf/types"
)

// QueueStats is a point-in-time snapshot of one direction queue.
type QueueStats struct {
	// Len is the number of requests currently queued.
	Len int
	// ByteSize is the total byte size of the queued requests.
	ByteSize uint64
}

// Stats is a point-in-time snapshot of a Scheduler's counters and queue depths.
// BatchedRequests and MergedRequests are monotonic for the Scheduler's lifetime.
type Stats struct {
	// BatchedRequests counts requests that left a queue via Drain.
	BatchedRequests uint64
	// MergedRequests counts effective merges, one per superseded entry removed.
	MergedRequests uint64
	// Queues holds per-direction depth and byte statistics, indexed by
	// types.Direction.
	Queues [types.NumDirections]QueueStats
}

// Scheduler owns the two direction queues, the tunables, and the performance
// counters of one managed device queue. One Scheduler is created per device queue
// and lives until that queue is torn down.
//
// All mutating operations (Admit, ProposeMerge, Drain, Close) and the neighbor
// lookups MUST be serialized by the caller; see the package documentation.
type Scheduler struct {
	logger logr.Logger
	policy framework.DispatchOrderingPolicy
	queues [types.NumDirections]*managedQueue
	// policyView caches the policy-facing queue accessors in types.Directions order.
	policyView []framework.DirectionQueueAccessor

	quantum atomic.Uint64
	weights [types.NumDirections]atomic.Uint64

	batched atomic.Uint64
	merged  atomic.Uint64

	closed bool
}

// New creates a Scheduler from cfg with empty queues and zeroed counters. A nil cfg
// gets the defaults. The configuration is re-validated, so a Config built by hand
// (rather than by NewConfig) is also safe to pass.
func New(cfg *Config, logger logr.Logger) (*Scheduler, error) {
	if cfg == nil {
		var err error
		if cfg, err = NewConfig(); err != nil {
			return nil, err
		}
	} else if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid scheduler config: %w", err)
	}

	policy, err := ordering.NewPolicyFromName(cfg.OrderingPolicy)
	if err != nil {
		return nil, err
	}

	s := &Scheduler{
		logger: logger.WithName("edf-scheduler").WithValues("orderingPolicy", policy.Name()),
		policy: policy,
	}
	s.quantum.Store(ClampTunable(uint64(cfg.Quantum)))
	s.weights[types.DirectionRead].Store(ClampTunable(cfg.ReadWeight))
	s.weights[types.DirectionWrite].Store(ClampTunable(cfg.WriteWeight))

	for _, dir := range types.Directions {
		q, err := queue.NewQueueFromName(cfg.Queue)
		if err != nil {
			return nil, err
		}
		s.queues[dir] = newManagedQueue(q, dir, s.logger)
		s.policyView = append(s.policyView, s.queues[dir].accessor())
	}
	return s, nil
}

// Admit stamps the request with a deadline and appends it to the tail of its
// direction's queue. The returned accessor is the handle for all later operations on
// this request (merge proposals, neighbor lookups); it is the only reference the
// scheduler keeps, the request object itself stays with the caller.
func (s *Scheduler) Admit(request types.IORequest, now types.Tick) (types.QueueItemAccessor, error) {
	if s.closed {
		return nil, ErrSchedulerClosed
	}
	if request == nil {
		return nil, ErrNilRequest
	}
	dir := request.Direction()
	if !dir.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDirection, dir)
	}

	deadline := AssignDeadline(dir, now, types.Tick(s.quantum.Load()),
		s.weights[types.DirectionRead].Load(), s.weights[types.DirectionWrite].Load())
	it := newItem(request, now, deadline)
	if err := s.queues[dir].add(it); err != nil {
		return nil, err
	}

	s.logger.V(2).Info("admitted request",
		"requestID", request.ID(), "direction", dir.String(), "now", now, "deadline", deadline)
	return it, nil
}

// ProposeMerge consolidates two queued requests whose byte ranges the caller has
// determined to be adjacent. The entry with the earlier deadline keeps its queue
// position; the other entry is removed and its handle invalidated; the survivor's
// deadline becomes the minimum of the two, so merging never relaxes urgency.
//
// It returns false without touching any state when the pair cannot be merged: a nil
// or identical pair, different directions, or either handle already gone (dispatched
// or previously merged away). Those are expected states, not errors.
func (s *Scheduler) ProposeMerge(a, b types.QueueItemAccessor) bool {
	if s.closed || a == nil || b == nil || a == b {
		return false
	}
	ha, hb := a.Handle(), b.Handle()
	if ha == nil || ha.IsInvalidated() || hb == nil || hb.IsInvalidated() {
		return false
	}
	if a.Request().Direction() != b.Request().Direction() {
		return false
	}

	survivor, superseded := a, b
	if b.Deadline().Before(a.Deadline()) {
		survivor, superseded = b, a
	}
	sit, ok := survivor.(*item)
	if !ok {
		// Foreign accessor, not one of ours.
		return false
	}

	dir := superseded.Request().Direction()
	if _, err := s.queues[dir].remove(superseded.Handle()); err != nil {
		return false
	}
	sit.setDeadline(types.MinTick(survivor.Deadline(), superseded.Deadline()))
	s.merged.Add(1)

	s.logger.V(2).Info("merged requests",
		"survivorID", survivor.Request().ID(),
		"supersededID", superseded.Request().ID(),
		"deadline", survivor.Deadline())
	return true
}

// Drain removes and returns every request whose deadline has elapsed at now, in the
// order the configured dispatch policy selects them. It scans each direction queue
// from the head and stops a direction at its first unexpired entry. Drain never
// blocks; when nothing is eligible it returns an empty sequence.
func (s *Scheduler) Drain(now types.Tick) []types.QueueItemAccessor {
	var dispatched []types.QueueItemAccessor
	for {
		selected := s.policy.SelectQueue(now, s.policyView)
		if selected == nil {
			break
		}
		mq := s.queues[selected.Direction()]
		head := mq.peekHead()
		if head == nil || !head.Deadline().Expired(now) {
			// Contract violation by the policy; an unexpired entry must never
			// be dispatched.
			s.logger.Error(nil, "ordering policy selected a queue without an expired head",
				"policy", s.policy.Name(), "direction", selected.Direction().String())
			break
		}
		if _, err := mq.remove(head.Handle()); err != nil {
			s.logger.Error(err, "failed to remove expired head during drain",
				"direction", selected.Direction().String())
			break
		}
		s.batched.Add(1)
		dispatched = append(dispatched, head)
	}

	if len(dispatched) > 0 {
		s.logger.V(2).Info("drained expired requests", "now", now, "count", len(dispatched))
	}
	return dispatched
}

// Predecessor returns the request queued immediately before it in its direction
// queue, or nil at the queue head. It also returns nil when it is no longer queued;
// a request leaving the queue between calls is a valid state, not an error.
func (s *Scheduler) Predecessor(it types.QueueItemAccessor) types.QueueItemAccessor {
	mq, handle := s.lookupQueue(it)
	if mq == nil {
		return nil
	}
	prev, err := mq.predecessor(handle)
	if err != nil {
		return nil
	}
	return prev
}

// Successor returns the request queued immediately after it in its direction queue,
// or nil at the queue tail. It also returns nil when it is no longer queued.
func (s *Scheduler) Successor(it types.QueueItemAccessor) types.QueueItemAccessor {
	mq, handle := s.lookupQueue(it)
	if mq == nil {
		return nil
	}
	next, err := mq.successor(handle)
	if err != nil {
		return nil
	}
	return next
}

func (s *Scheduler) lookupQueue(it types.QueueItemAccessor) (*managedQueue, types.QueueItemHandle) {
	if s.closed || it == nil {
		return nil, nil
	}
	handle := it.Handle()
	if handle == nil || handle.IsInvalidated() {
		return nil, nil
	}
	dir := it.Request().Direction()
	if !dir.Valid() {
		return nil, nil
	}
	return s.queues[dir], handle
}

// Close tears the scheduler down. Both queues must be empty: a request still queued
// at teardown is one whose completion handling was dropped, and Close reports it as
// a fatal invariant violation rather than discarding it silently. Violations are
// aggregated per direction. Close is idempotent once it has succeeded.
func (s *Scheduler) Close() error {
	if s.closed {
		return nil
	}

	var err error
	for _, dir := range types.Directions {
		if n := s.queues[dir].queueLen(); n > 0 {
			err = multierr.Append(err,
				fmt.Errorf("%w: %d %s requests still queued", ErrQueueNotDrained, n, dir.String()))
		}
	}
	if err != nil {
		s.logger.Error(err, "teardown with non-empty queues")
		return err
	}

	s.closed = true
	s.logger.V(1).Info("scheduler closed",
		"batchedRequests", s.batched.Load(), "mergedRequests", s.merged.Load())
	return nil
}

// --- Tunables and counters ---

// Quantum returns the current timeslice quantum.
func (s *Scheduler) Quantum() types.Tick {
	return types.Tick(s.quantum.Load())
}

// SetQuantum stores a new timeslice quantum, clamped to [0, MaxTunable]. It affects
// only deadlines assigned after the store; queued requests keep their deadlines.
func (s *Scheduler) SetQuantum(quantum types.Tick) {
	s.quantum.Store(ClampTunable(uint64(quantum)))
}

// Weight returns the deadline multiplier for the given direction.
func (s *Scheduler) Weight(direction types.Direction) uint64 {
	if !direction.Valid() {
		return 0
	}
	return s.weights[direction].Load()
}

// SetWeight stores a new deadline multiplier for the given direction, clamped to
// [0, MaxTunable]. Retuning weights while requests are queued can make FIFO queue
// order diverge from deadline order; see the package notes on queue backends.
func (s *Scheduler) SetWeight(direction types.Direction, weight uint64) {
	if !direction.Valid() {
		return
	}
	s.weights[direction].Store(ClampTunable(weight))
}

// Stats returns a snapshot of the counters and per-direction queue statistics.
func (s *Scheduler) Stats() Stats {
	st := Stats{
		BatchedRequests: s.batched.Load(),
		MergedRequests:  s.merged.Load(),
	}
	for _, dir := range types.Directions {
		st.Queues[dir] = QueueStats{
			Len:      s.queues[dir].queueLen(),
			ByteSize: s.queues[dir].queueByteSize(),
		}
	}
	return st
}

// OrderingPolicyName returns the name of the configured dispatch ordering policy.
func (s *Scheduler) OrderingPolicyName() string {
	return s.policy.Name()
}

// QueueName returns the name of the configured queue backend.
func (s *Scheduler) QueueName() string {
	return s.queues[types.DirectionRead].name()
}
