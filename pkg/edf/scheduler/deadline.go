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
	"github.com/virtblk/edf-elevator/pkg/edf/types"
)

// AssignDeadline computes a request's dispatch deadline: now plus the timeslice
// quantum scaled by the direction's weight. It is pure and is called exactly once
// per request, at admission.
//
// With the clamped tunable bounds the product fits well inside half the tick range,
// so the wrap-tolerant comparisons stay sound.
func AssignDeadline(direction types.Direction, now, quantum types.Tick, readWeight, writeWeight uint64) types.Tick {
	weight := readWeight
	if direction == types.DirectionWrite {
		weight = writeWeight
	}
	return now + types.Tick(uint64(quantum)*weight)
}
