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

package types

// Tick is a point on the scheduler's monotonic timeline. The timeline is a
// bounded-width counter supplied by the caller (a hardware tick, a jiffy, a loop
// iteration); it is expected to wrap, so ordering MUST be established with Before /
// After / Expired rather than with the < operator. Comparisons are meaningful only
// for ticks less than half the counter width apart, which is the standard contract
// for wrap-tolerant timelines.
type Tick uint64

// TickRate is the number of ticks per second used when ticks are derived from a wall
// clock (see clockutil.TickClock). Cores driven by a caller-owned tick source are
// free to ignore it.
const TickRate = 1000

// Before reports whether t happens before u on the wrapping timeline.
func (t Tick) Before(u Tick) bool {
	return int64(t-u) < 0
}

// After reports whether t happens after u on the wrapping timeline.
func (t Tick) After(u Tick) bool {
	return int64(t-u) > 0
}

// Expired reports whether a deadline t has elapsed at time now, i.e. t <= now in
// happens-before order.
func (t Tick) Expired(now Tick) bool {
	return !now.Before(t)
}

// MinTick returns the earlier of two ticks in happens-before order.
func MinTick(a, b Tick) Tick {
	if b.Before(a) {
		return b
	}
	return a
}
