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
	"errors"
)

var (
	// ErrNilRequest indicates that a nil request was passed to Admit.
	ErrNilRequest = errors.New("nil request")

	// ErrInvalidDirection indicates a request whose Direction is outside the closed
	// read/write domain.
	ErrInvalidDirection = errors.New("invalid request direction")

	// ErrSchedulerClosed indicates an operation on a Scheduler after Close.
	ErrSchedulerClosed = errors.New("scheduler is closed")

	// ErrQueueNotDrained is the fatal invariant violation reported by Close when a
	// direction queue still holds requests: some admitted request was never merged
	// away or dispatched, i.e. its completion handling was dropped by the caller.
	ErrQueueNotDrained = errors.New("queue not drained at teardown")
)
