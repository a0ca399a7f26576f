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

// Package admin exposes a scheduler's tunables and counters as a flat, string-typed
// key-value surface, the shape host administrative mechanisms (sysfs-like settings
// trees, config endpoints) expect. Stores are tolerant: out-of-range values are
// clamped to the nearest bound, and stores to the read-only counters are accepted
// and ignored for compatibility with the original administrative interface.
package admin

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/virtblk/edf-elevator/pkg/edf/scheduler"
	"github.com/virtblk/edf-elevator/pkg/edf/types"
)

// Keys of the administrative fields.
const (
	// KeyReadWeight is the read deadline multiplier, a unitless integer.
	KeyReadWeight = "read_weight"
	// KeyWriteWeight is the write deadline multiplier, a unitless integer.
	KeyWriteWeight = "write_weight"
	// KeyTimesliceQuantum is the timeslice quantum, exposed in milliseconds and
	// converted to ticks internally.
	KeyTimesliceQuantum = "timeslice_quantum"
	// KeyBatchedRequests is the read-only count of requests dispatched via drain.
	KeyBatchedRequests = "batched_requests"
	// KeyMergedRequests is the read-only count of effective merges.
	KeyMergedRequests = "merged_requests"
)

// ErrUnknownKey indicates a Get or Set against a key the surface does not expose.
var ErrUnknownKey = errors.New("unknown administrative key")

// Elevator is the slice of the scheduler surface the administrative store binds to.
// *scheduler.Scheduler implements it.
type Elevator interface {
	Quantum() types.Tick
	SetQuantum(types.Tick)
	Weight(types.Direction) uint64
	SetWeight(types.Direction, uint64)
	Stats() scheduler.Stats
}

// Store is a live read/write binding of the administrative fields to one scheduler.
// Reads and stores go straight through; no value is cached.
type Store struct {
	elevator Elevator
}

// NewStore creates a Store bound to the given scheduler.
func NewStore(elevator Elevator) *Store {
	return &Store{elevator: elevator}
}

// Keys returns the exposed field names in stable order.
func (s *Store) Keys() []string {
	keys := []string{
		KeyReadWeight,
		KeyWriteWeight,
		KeyTimesliceQuantum,
		KeyBatchedRequests,
		KeyMergedRequests,
	}
	sort.Strings(keys)
	return keys
}

// Get returns the current value of the named field, formatted as a decimal string.
func (s *Store) Get(key string) (string, error) {
	switch key {
	case KeyReadWeight:
		return strconv.FormatUint(s.elevator.Weight(types.DirectionRead), 10), nil
	case KeyWriteWeight:
		return strconv.FormatUint(s.elevator.Weight(types.DirectionWrite), 10), nil
	case KeyTimesliceQuantum:
		return strconv.FormatUint(ticksToMsecs(s.elevator.Quantum()), 10), nil
	case KeyBatchedRequests:
		return strconv.FormatUint(s.elevator.Stats().BatchedRequests, 10), nil
	case KeyMergedRequests:
		return strconv.FormatUint(s.elevator.Stats().MergedRequests, 10), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
}

// Set parses value as a decimal integer and stores it into the named field. Values
// below zero or above the tunable bound are clamped, not rejected. Stores to the
// counter fields parse the value and then discard it.
func (s *Store) Set(key, value string) error {
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return fmt.Errorf("malformed value for %q: %w", key, err)
	}
	clamped := clampSigned(parsed)

	switch key {
	case KeyReadWeight:
		s.elevator.SetWeight(types.DirectionRead, clamped)
	case KeyWriteWeight:
		s.elevator.SetWeight(types.DirectionWrite, clamped)
	case KeyTimesliceQuantum:
		s.elevator.SetQuantum(msecsToTicks(clamped))
	case KeyBatchedRequests, KeyMergedRequests:
		// Counters are externally readable but not writable. The store is accepted
		// and ignored to keep existing administrative tooling working.
	default:
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return nil
}

// clampSigned maps a parsed signed value into the unsigned tunable range.
func clampSigned(v int64) uint64 {
	if v < 0 {
		return 0
	}
	return scheduler.ClampTunable(uint64(v))
}

// The external unit for the quantum is the millisecond; internally it is ticks at
// types.TickRate.

func msecsToTicks(ms uint64) types.Tick {
	return types.Tick(ms * types.TickRate / 1000)
}

func ticksToMsecs(t types.Tick) uint64 {
	return uint64(t) * 1000 / types.TickRate
}
