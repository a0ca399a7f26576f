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

// Direction is the data direction of an I/O request. It is fixed at admission and
// never changes for the lifetime of the request.
type Direction uint8

const (
	// DirectionRead identifies requests transferring data from the device.
	DirectionRead Direction = iota
	// DirectionWrite identifies requests transferring data to the device.
	DirectionWrite

	// NumDirections is the size of the closed Direction domain. It is the length of
	// every per-direction array in the scheduler.
	NumDirections = 2
)

// Directions lists the closed two-valued domain in dispatch-preference order of the
// original design (reads before writes). Policies that do not share that bias must
// not rely on this ordering.
var Directions = [NumDirections]Direction{DirectionRead, DirectionWrite}

// String returns the lowercase wire/log name of the direction.
func (d Direction) String() string {
	switch d {
	case DirectionRead:
		return "read"
	case DirectionWrite:
		return "write"
	default:
		return "invalid"
	}
}

// Valid reports whether d is a member of the closed Direction domain.
func (d Direction) Valid() bool {
	return d < NumDirections
}
