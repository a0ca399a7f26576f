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

// Package ordering provides the registered framework.DispatchOrderingPolicy
// implementations that decide which direction queue the dispatcher services next.
package ordering

import (
	"fmt"
	"sync"

	"github.com/virtblk/edf-elevator/pkg/edf/framework"
)

// RegisteredPolicyName is the name under which an ordering policy is registered.
type RegisteredPolicyName string

// PolicyConstructor defines the function signature for creating a
// framework.DispatchOrderingPolicy.
type PolicyConstructor func() (framework.DispatchOrderingPolicy, error)

var (
	// mu guards the registration map.
	mu sync.RWMutex
	// registeredPolicies stores the constructors for all registered policies.
	registeredPolicies = make(map[RegisteredPolicyName]PolicyConstructor)
)

// MustRegisterPolicy registers a policy constructor, and panics if the name is
// already registered. It is intended to be called from init() functions.
func MustRegisterPolicy(name RegisteredPolicyName, constructor PolicyConstructor) {
	mu.Lock()
	defer mu.Unlock()
	if _, ok := registeredPolicies[name]; ok {
		panic(fmt.Sprintf("framework.DispatchOrderingPolicy already registered with name %q", name))
	}
	registeredPolicies[name] = constructor
}

// NewPolicyFromName creates a new DispatchOrderingPolicy given its registered name.
// Policies may be stateful, so every scheduler gets its own instance.
func NewPolicyFromName(name RegisteredPolicyName) (framework.DispatchOrderingPolicy, error) {
	mu.RLock()
	defer mu.RUnlock()
	constructor, ok := registeredPolicies[name]
	if !ok {
		return nil, fmt.Errorf("no framework.DispatchOrderingPolicy registered with name %q", name)
	}
	return constructor()
}

// RegisteredPolicyNames returns the names of all registered policies, for
// configuration error messages and CLI help.
func RegisteredPolicyNames() []RegisteredPolicyName {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]RegisteredPolicyName, 0, len(registeredPolicies))
	for name := range registeredPolicies {
		names = append(names, name)
	}
	return names
}
