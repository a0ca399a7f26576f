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

// Package metrics exposes a scheduler's counters and queue depths as Prometheus
// metrics via a custom collector, so scrapes always see the live values without a
// separate update path.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/virtblk/edf-elevator/pkg/edf/scheduler"
	"github.com/virtblk/edf-elevator/pkg/edf/types"
)

var (
	descQueueDepth = prometheus.NewDesc(
		"edf_elevator_queue_depth",
		"Number of requests currently queued, per I/O direction.",
		[]string{"direction"}, nil,
	)
	descQueueBytes = prometheus.NewDesc(
		"edf_elevator_queue_bytes",
		"Total byte size of requests currently queued, per I/O direction.",
		[]string{"direction"}, nil,
	)
	descBatchedRequests = prometheus.NewDesc(
		"edf_elevator_batched_requests_total",
		"Requests dispatched to the device via drain.",
		nil, nil,
	)
	descMergedRequests = prometheus.NewDesc(
		"edf_elevator_merged_requests_total",
		"Effective merges of adjacent queued requests.",
		nil, nil,
	)
)

// StatsSource supplies the snapshot the collector exports.
// *scheduler.Scheduler implements it.
type StatsSource interface {
	Stats() scheduler.Stats
}

type schedulerCollector struct {
	source StatsSource
}

var _ prometheus.Collector = &schedulerCollector{}

// NewSchedulerCollector returns a prometheus.Collector exposing the scheduler's
// queue depths and monotonic counters.
func NewSchedulerCollector(source StatsSource) prometheus.Collector {
	return &schedulerCollector{source: source}
}

// Describe implements the prometheus.Collector interface.
func (c *schedulerCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- descQueueDepth
	ch <- descQueueBytes
	ch <- descBatchedRequests
	ch <- descMergedRequests
}

// Collect implements the prometheus.Collector interface.
func (c *schedulerCollector) Collect(ch chan<- prometheus.Metric) {
	stats := c.source.Stats()

	for _, dir := range types.Directions {
		ch <- prometheus.MustNewConstMetric(
			descQueueDepth,
			prometheus.GaugeValue,
			float64(stats.Queues[dir].Len),
			dir.String(),
		)
		ch <- prometheus.MustNewConstMetric(
			descQueueBytes,
			prometheus.GaugeValue,
			float64(stats.Queues[dir].ByteSize),
			dir.String(),
		)
	}
	ch <- prometheus.MustNewConstMetric(
		descBatchedRequests, prometheus.CounterValue, float64(stats.BatchedRequests))
	ch <- prometheus.MustNewConstMetric(
		descMergedRequests, prometheus.CounterValue, float64(stats.MergedRequests))
}
