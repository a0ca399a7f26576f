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
	"math"

	"github.com/virtblk/edf-elevator/pkg/edf/framework"
	"github.com/virtblk/edf-elevator/pkg/edf/framework/plugins/ordering"
	"github.com/virtblk/edf-elevator/pkg/edf/framework/plugins/queue"
	"github.com/virtblk/edf-elevator/pkg/edf/framework/plugins/queue/listqueue"
	"github.com/virtblk/edf-elevator/pkg/edf/types"
)

// --- Defaults ---

const (
	// DefaultQuantum is the default timeslice quantum: two seconds of ticks, the
	// original elevator's 2*HZ.
	DefaultQuantum types.Tick = 2 * types.TickRate
	// DefaultReadWeight is the default deadline multiplier for reads.
	DefaultReadWeight uint64 = 2
	// DefaultWriteWeight is the default deadline multiplier for writes. Writes get a
	// longer grace period than reads: their completion is less latency-sensitive to
	// the issuing caller and benefits more from batching.
	DefaultWriteWeight uint64 = 4

	// MaxTunable is the upper clamp bound for the quantum and both weights. Stores
	// beyond it are clamped, not rejected, matching the tolerant administrative
	// semantics of the original interface.
	MaxTunable uint64 = math.MaxInt32

	// defaultQueue is the default queue backend for both direction queues.
	defaultQueue queue.RegisteredQueueName = listqueue.ListQueueName
	// defaultOrderingPolicy is the default dispatch ordering policy.
	defaultOrderingPolicy ordering.RegisteredPolicyName = ordering.ReadFirstPolicyName
)

// Config holds the construction-time configuration of a Scheduler. The quantum and
// weights remain mutable on the live Scheduler; the queue backend and ordering policy
// are fixed for the Scheduler's lifetime.
type Config struct {
	// Quantum is the timeslice quantum multiplied by a direction weight to produce
	// each deadline.
	// Optional: defaults to DefaultQuantum; clamped to [0, MaxTunable].
	Quantum types.Tick

	// ReadWeight is the deadline multiplier for reads.
	// Optional: defaults to DefaultReadWeight; clamped to [0, MaxTunable].
	ReadWeight uint64

	// WriteWeight is the deadline multiplier for writes.
	// Optional: defaults to DefaultWriteWeight; clamped to [0, MaxTunable].
	WriteWeight uint64

	// Queue names the framework.RequestQueue backend used for both directions.
	// Optional: defaults to "ListQueue".
	Queue queue.RegisteredQueueName

	// OrderingPolicy names the framework.DispatchOrderingPolicy that decides which
	// direction a drain services next.
	// Optional: defaults to "ReadFirst".
	OrderingPolicy ordering.RegisteredPolicyName
}

// ConfigOption defines a functional option for NewConfig.
type ConfigOption func(*Config)

// WithQuantum sets the timeslice quantum.
func WithQuantum(quantum types.Tick) ConfigOption {
	return func(c *Config) {
		c.Quantum = quantum
	}
}

// WithReadWeight sets the read deadline multiplier.
func WithReadWeight(weight uint64) ConfigOption {
	return func(c *Config) {
		c.ReadWeight = weight
	}
}

// WithWriteWeight sets the write deadline multiplier.
func WithWriteWeight(weight uint64) ConfigOption {
	return func(c *Config) {
		c.WriteWeight = weight
	}
}

// WithQueue sets the queue backend by registered name (e.g. "BTreeQueue").
func WithQueue(name queue.RegisteredQueueName) ConfigOption {
	return func(c *Config) {
		c.Queue = name
	}
}

// WithOrderingPolicy sets the dispatch ordering policy by registered name
// (e.g. "RoundRobin").
func WithOrderingPolicy(name ordering.RegisteredPolicyName) ConfigOption {
	return func(c *Config) {
		c.OrderingPolicy = name
	}
}

// NewConfig creates a Config populated with defaults, applies the provided options,
// clamps the tunables, and validates that the named queue and policy exist and are
// compatible.
func NewConfig(opts ...ConfigOption) (*Config, error) {
	cfg := &Config{
		Quantum:        DefaultQuantum,
		ReadWeight:     DefaultReadWeight,
		WriteWeight:    DefaultWriteWeight,
		Queue:          defaultQueue,
		OrderingPolicy: defaultOrderingPolicy,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	cfg.Quantum = types.Tick(ClampTunable(uint64(cfg.Quantum)))
	cfg.ReadWeight = ClampTunable(cfg.ReadWeight)
	cfg.WriteWeight = ClampTunable(cfg.WriteWeight)

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("invalid scheduler config: %w", err)
	}
	return cfg, nil
}

// ClampTunable clamps an administrative tunable into [0, MaxTunable].
func ClampTunable(v uint64) uint64 {
	if v > MaxTunable {
		return MaxTunable
	}
	return v
}

// validate instantiates the named plugins once to confirm they exist and that the
// policy's required queue capabilities are provided by the chosen backend.
func (c *Config) validate() error {
	tempPolicy, err := ordering.NewPolicyFromName(c.OrderingPolicy)
	if err != nil {
		return fmt.Errorf("failed to validate ordering policy %q: %w", c.OrderingPolicy, err)
	}

	tempQueue, err := queue.NewQueueFromName(c.Queue)
	if err != nil {
		return fmt.Errorf("failed to validate queue type %q: %w", c.Queue, err)
	}

	required := tempPolicy.RequiredQueueCapabilities()
	if len(required) == 0 {
		return nil
	}

	provided := tempQueue.Capabilities()
	capabilitySet := make(map[framework.QueueCapability]struct{}, len(provided))
	for _, cap := range provided {
		capabilitySet[cap] = struct{}{}
	}
	for _, req := range required {
		if _, ok := capabilitySet[req]; !ok {
			return fmt.Errorf("policy %q is not compatible with queue %q: missing capability %q",
				tempPolicy.Name(), tempQueue.Name(), req)
		}
	}
	return nil
}
