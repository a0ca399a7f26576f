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

// Package queue provides the registry through which framework.RequestQueue
// implementations are looked up by name. Backends register themselves from init().
package queue

import (
	"fmt"
	"sync"

	"github.com/virtblk/edf-elevator/pkg/edf/framework"
)

// RegisteredQueueName is the name under which a queue backend is registered.
type RegisteredQueueName string

// QueueConstructor defines the function signature for creating a
// framework.RequestQueue.
type QueueConstructor func() (framework.RequestQueue, error)

var (
	// mu guards the registration map.
	mu sync.RWMutex
	// registeredQueues stores the constructors for all registered queue backends.
	registeredQueues = make(map[RegisteredQueueName]QueueConstructor)
)

// MustRegisterQueue registers a queue constructor, and panics if the name is already
// registered. It is intended to be called from init() functions.
func MustRegisterQueue(name RegisteredQueueName, constructor QueueConstructor) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registeredQueues[name]; ok {
		panic(fmt.Sprintf("framework.RequestQueue already registered with name %q", name))
	}
	registeredQueues[name] = constructor
}

// NewQueueFromName creates a new RequestQueue given its registered name. The
// scheduler calls this once per direction during initialization.
func NewQueueFromName(name RegisteredQueueName) (framework.RequestQueue, error) {
	mu.RLock()
	defer mu.RUnlock()
	constructor, ok := registeredQueues[name]
	if !ok {
		return nil, fmt.Errorf("no framework.RequestQueue registered with name %q", name)
	}
	return constructor()
}

// RegisteredQueueNames returns the names of all registered backends, for
// configuration error messages and CLI help.
func RegisteredQueueNames() []RegisteredQueueName {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]RegisteredQueueName, 0, len(registeredQueues))
	for name := range registeredQueues {
		names = append(names, name)
	}
	return names
}
