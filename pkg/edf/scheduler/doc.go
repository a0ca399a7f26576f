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

// Package scheduler implements the earliest-deadline-first elevator core: admission
// stamps each request with a deadline derived from the timeslice quantum and the
// per-direction weight, merges keep the tighter of two deadlines while dropping the
// superseded queue entry, and a drain releases every expired request in the order the
// configured dispatch policy dictates.
//
// # Concurrency
//
// A Scheduler is single-writer: the caller serializes Admit, ProposeMerge, Drain,
// neighbor lookups, and Close, typically under the device queue's lock. The queue
// path performs no internal locking. Tunables and counters are atomics so the
// administrative and metrics read paths can observe them without holding the caller's
// lock.
package scheduler
