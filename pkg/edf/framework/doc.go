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

// Package framework defines the extension-point contracts of the elevator: the
// per-direction RequestQueue a backend must implement and the DispatchOrderingPolicy
// that decides which direction's queue is serviced next during a drain. Concrete
// implementations live under framework/plugins and register themselves by name in
// init().
package framework
