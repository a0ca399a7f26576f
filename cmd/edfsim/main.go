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

// edfsim drives the EDF elevator with a synthetic block workload: a stream of read
// and write requests with tunable mix, byte-range-adjacent arrivals to exercise
// merging, and a periodic drain standing in for the device dispatch loop. It prints
// final counters and can expose live Prometheus metrics while it runs.
package main

import (
	"context"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/go-logr/logr"
	"github.com/go-logr/zapr"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/virtblk/edf-elevator/pkg/edf/framework/plugins/ordering"
	"github.com/virtblk/edf-elevator/pkg/edf/framework/plugins/queue"
	_ "github.com/virtblk/edf-elevator/pkg/edf/framework/plugins/queue/btreequeue"
	_ "github.com/virtblk/edf-elevator/pkg/edf/framework/plugins/queue/listqueue"
	"github.com/virtblk/edf-elevator/pkg/edf/metrics"
	"github.com/virtblk/edf-elevator/pkg/edf/scheduler"
	"github.com/virtblk/edf-elevator/pkg/edf/types"
)

const sectorSize = 512

var (
	quantumMs   = pflag.Uint64("quantum-ms", 2000, "timeslice quantum in milliseconds")
	readWeight  = pflag.Uint64("read-weight", scheduler.DefaultReadWeight, "read deadline multiplier")
	writeWeight = pflag.Uint64("write-weight", scheduler.DefaultWriteWeight, "write deadline multiplier")
	queueName   = pflag.String("queue", "ListQueue", "queue backend (ListQueue, BTreeQueue)")
	policyName  = pflag.String("policy", "ReadFirst", "dispatch ordering policy (ReadFirst, RoundRobin, EarliestHead)")

	requests   = pflag.Int("requests", 10000, "number of requests to admit")
	readRatio  = pflag.Float64("read-ratio", 0.7, "fraction of requests that are reads")
	mergeProb  = pflag.Float64("merge-probability", 0.2, "probability a request arrives adjacent to the previous one in its direction")
	drainEvery = pflag.Uint64("drain-every", 100, "ticks between drain passes")
	seed       = pflag.Int64("seed", 1, "PRNG seed")

	metricsAddr = pflag.String("metrics-addr", "", "address to serve /metrics on while the simulation runs (empty disables)")
	devMode     = pflag.Bool("dev-logging", false, "use development (console) log encoding")
)

// simRequest is the simulator's caller-owned request object. Sector and length model
// the byte-range adjacency that drives merge proposals.
type simRequest struct {
	id        string
	direction types.Direction
	sector    uint64
	sectors   uint64
}

func (r *simRequest) ID() string                 { return r.id }
func (r *simRequest) Direction() types.Direction { return r.direction }
func (r *simRequest) ByteSize() uint64           { return r.sectors * sectorSize }

func (r *simRequest) end() uint64 { return r.sector + r.sectors }

var _ types.IORequest = &simRequest{}

func main() {
	pflag.Parse()

	logger, err := newLogger(*devMode)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to construct logger: %v\n", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, logger); err != nil {
		logger.Error(err, "simulation failed")
		os.Exit(1)
	}
}

func newLogger(dev bool) (logr.Logger, error) {
	var zl *zap.Logger
	var err error
	if dev {
		zl, err = zap.NewDevelopment()
	} else {
		zl, err = zap.NewProduction()
	}
	if err != nil {
		return logr.Logger{}, err
	}
	return zapr.NewLogger(zl), nil
}

func run(ctx context.Context, logger logr.Logger) error {
	cfg, err := scheduler.NewConfig(
		scheduler.WithQuantum(types.Tick(*quantumMs*types.TickRate/1000)),
		scheduler.WithReadWeight(*readWeight),
		scheduler.WithWriteWeight(*writeWeight),
		scheduler.WithQueue(queue.RegisteredQueueName(*queueName)),
		scheduler.WithOrderingPolicy(ordering.RegisteredPolicyName(*policyName)),
	)
	if err != nil {
		return err
	}

	sched, err := scheduler.New(cfg, logger)
	if err != nil {
		return err
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(metrics.NewSchedulerCollector(sched))
	if *metricsAddr != "" {
		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
		server := &http.Server{Addr: *metricsAddr, Handler: mux}
		go func() {
			if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error(err, "metrics server failed")
			}
		}()
		defer server.Close()
		logger.Info("serving metrics", "addr", *metricsAddr)
	}

	rng := rand.New(rand.NewSource(*seed))
	logger.Info("starting simulation",
		"requests", *requests, "queue", *queueName, "policy", *policyName,
		"quantumMs", *quantumMs, "readWeight", *readWeight, "writeWeight", *writeWeight)

	// Last admitted request per direction; a fresh arrival lands adjacent to it
	// with probability mergeProb, which is what makes merges possible at all.
	var lastReq [types.NumDirections]*simRequest
	var dispatched, admitted int

	now := types.Tick(0)
	for admitted < *requests {
		select {
		case <-ctx.Done():
			return drainAndClose(sched, now, logger)
		default:
		}

		dir := types.DirectionWrite
		if rng.Float64() < *readRatio {
			dir = types.DirectionRead
		}

		req := &simRequest{
			id:        uuid.NewString(),
			direction: dir,
			sectors:   uint64(1 + rng.Intn(255)),
		}
		if prev := lastReq[dir]; prev != nil && rng.Float64() < *mergeProb {
			req.sector = prev.end()
		} else {
			req.sector = uint64(rng.Int63n(1 << 32))
		}

		it, err := sched.Admit(req, now)
		if err != nil {
			return err
		}
		admitted++

		// Propose a merge when the new request lands byte-adjacent to the
		// scheduling neighbor in front of it, the way a block layer probes the
		// elevator around an incoming request.
		if prev := sched.Predecessor(it); prev != nil {
			if pr, ok := prev.Request().(*simRequest); ok && pr.end() == req.sector {
				sched.ProposeMerge(prev, it)
			}
		}

		lastReq[dir] = req

		now++
		if uint64(now)%*drainEvery == 0 {
			dispatched += len(sched.Drain(now))
		}
	}

	if err := drainAndClose(sched, now, logger); err != nil {
		return err
	}

	stats := sched.Stats()
	logger.Info("simulation complete",
		"admitted", admitted,
		"periodicDispatched", dispatched,
		"batchedRequests", stats.BatchedRequests,
		"mergedRequests", stats.MergedRequests)
	return nil
}

// drainAndClose advances time past every outstanding deadline, drains, and tears the
// scheduler down. Teardown with queued requests is a fatal invariant violation, so
// the final drain must empty both queues.
func drainAndClose(sched *scheduler.Scheduler, now types.Tick, logger logr.Logger) error {
	maxWeight := sched.Weight(types.DirectionRead)
	if w := sched.Weight(types.DirectionWrite); w > maxWeight {
		maxWeight = w
	}
	horizon := now + types.Tick(uint64(sched.Quantum())*maxWeight) + 1
	n := len(sched.Drain(horizon))
	logger.V(1).Info("final drain", "count", n)
	return sched.Close()
}
