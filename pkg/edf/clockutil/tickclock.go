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

// Package clockutil bridges wall-clock hosts onto the scheduler's tick timeline.
// Hosts that already own a tick source (a device interrupt, a jiffy counter, a
// simulation loop) do not need it.
package clockutil

import (
	"time"

	"k8s.io/utils/clock"

	"github.com/virtblk/edf-elevator/pkg/edf/types"
)

// TickClock derives types.Tick values from a clock.PassiveClock at types.TickRate
// ticks per second, measured from a fixed epoch captured at construction. Using a
// fixed epoch keeps the tick stream monotonic as long as the underlying clock is.
type TickClock struct {
	clock clock.PassiveClock
	epoch time.Time
}

// NewTickClock creates a TickClock over c, with the epoch at c.Now(). Pass a
// clocktesting.FakePassiveClock to drive ticks manually in tests.
func NewTickClock(c clock.PassiveClock) *TickClock {
	return &TickClock{
		clock: c,
		epoch: c.Now(),
	}
}

// Now returns the current tick.
func (tc *TickClock) Now() types.Tick {
	elapsed := tc.clock.Since(tc.epoch)
	return types.Tick(elapsed / (time.Second / types.TickRate))
}
