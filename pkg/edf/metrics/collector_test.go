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

package metrics_test

import (
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtblk/edf-elevator/pkg/edf/metrics"
	"github.com/virtblk/edf-elevator/pkg/edf/scheduler"
	"github.com/virtblk/edf-elevator/pkg/edf/types"
)

// stubSource returns a fixed snapshot, standing in for a live scheduler.
type stubSource struct {
	stats scheduler.Stats
}

func (s *stubSource) Stats() scheduler.Stats { return s.stats }

func TestSchedulerCollector(t *testing.T) {
	t.Parallel()

	source := &stubSource{stats: scheduler.Stats{
		BatchedRequests: 12,
		MergedRequests:  3,
	}}
	source.stats.Queues[types.DirectionRead] = scheduler.QueueStats{Len: 2, ByteSize: 8192}
	source.stats.Queues[types.DirectionWrite] = scheduler.QueueStats{Len: 5, ByteSize: 40960}

	collector := metrics.NewSchedulerCollector(source)

	want := `
		# HELP edf_elevator_batched_requests_total Requests dispatched to the device via drain.
		# TYPE edf_elevator_batched_requests_total counter
		edf_elevator_batched_requests_total 12
		# HELP edf_elevator_merged_requests_total Effective merges of adjacent queued requests.
		# TYPE edf_elevator_merged_requests_total counter
		edf_elevator_merged_requests_total 3
		# HELP edf_elevator_queue_bytes Total byte size of requests currently queued, per I/O direction.
		# TYPE edf_elevator_queue_bytes gauge
		edf_elevator_queue_bytes{direction="read"} 8192
		edf_elevator_queue_bytes{direction="write"} 40960
		# HELP edf_elevator_queue_depth Number of requests currently queued, per I/O direction.
		# TYPE edf_elevator_queue_depth gauge
		edf_elevator_queue_depth{direction="read"} 2
		edf_elevator_queue_depth{direction="write"} 5
	`
	require.NoError(t, testutil.CollectAndCompare(collector, strings.NewReader(want)))
}

func TestSchedulerCollector_Registers(t *testing.T) {
	t.Parallel()

	registry := prometheus.NewRegistry()
	require.NoError(t, registry.Register(metrics.NewSchedulerCollector(&stubSource{})))

	// A zero-valued snapshot still exports every series.
	count, err := testutil.GatherAndCount(registry)
	require.NoError(t, err)
	assert.Equal(t, 6, count)
}
