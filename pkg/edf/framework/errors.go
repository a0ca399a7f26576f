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

package framework

import (
	"errors"
)

// RequestQueue errors.
var (
	// ErrNilQueueItem indicates that a nil item was passed to RequestQueue.Add.
	ErrNilQueueItem = errors.New("nil queue item")

	// ErrInvalidQueueItemHandle indicates that a types.QueueItemHandle provided to a
	// RequestQueue operation is nil, has been invalidated, or does not belong to
	// that queue. The scheduler surface translates this into a no-op: a request
	// leaving its queue concurrently with a merge proposal is a valid state, not a
	// failure.
	ErrInvalidQueueItemHandle = errors.New("invalid queue item handle")
)
