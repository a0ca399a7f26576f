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

package admin_test

import (
	"sort"
	"strconv"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/virtblk/edf-elevator/pkg/edf/admin"
	"github.com/virtblk/edf-elevator/pkg/edf/scheduler"
	"github.com/virtblk/edf-elevator/pkg/edf/types"
)

type adminRequest struct {
	direction types.Direction
}

func (r *adminRequest) ID() string                 { return "req" }
func (r *adminRequest) Direction() types.Direction { return r.direction }
func (r *adminRequest) ByteSize() uint64           { return 512 }

func newStore(t *testing.T) (*admin.Store, *scheduler.Scheduler) {
	t.Helper()
	s, err := scheduler.New(nil, logr.Discard())
	require.NoError(t, err)
	t.Cleanup(func() {
		s.Drain(types.Tick(uint64(s.Quantum()) * scheduler.DefaultWriteWeight * 2))
		require.NoError(t, s.Close())
	})
	return admin.NewStore(s), s
}

func TestStore_Keys(t *testing.T) {
	t.Parallel()
	store, _ := newStore(t)

	keys := store.Keys()
	assert.True(t, sort.StringsAreSorted(keys))
	assert.ElementsMatch(t, []string{
		admin.KeyReadWeight,
		admin.KeyWriteWeight,
		admin.KeyTimesliceQuantum,
		admin.KeyBatchedRequests,
		admin.KeyMergedRequests,
	}, keys)
}

func TestStore_GetDefaults(t *testing.T) {
	t.Parallel()
	store, _ := newStore(t)

	got, err := store.Get(admin.KeyReadWeight)
	require.NoError(t, err)
	assert.Equal(t, "2", got)

	got, err = store.Get(admin.KeyWriteWeight)
	require.NoError(t, err)
	assert.Equal(t, "4", got)

	// The default quantum is two seconds of ticks, surfaced in milliseconds.
	got, err = store.Get(admin.KeyTimesliceQuantum)
	require.NoError(t, err)
	assert.Equal(t, "2000", got)

	got, err = store.Get(admin.KeyBatchedRequests)
	require.NoError(t, err)
	assert.Equal(t, "0", got)

	got, err = store.Get(admin.KeyMergedRequests)
	require.NoError(t, err)
	assert.Equal(t, "0", got)
}

func TestStore_SetTunables(t *testing.T) {
	t.Parallel()
	store, sched := newStore(t)

	require.NoError(t, store.Set(admin.KeyReadWeight, "3"))
	assert.Equal(t, uint64(3), sched.Weight(types.DirectionRead))

	require.NoError(t, store.Set(admin.KeyWriteWeight, "9"))
	assert.Equal(t, uint64(9), sched.Weight(types.DirectionWrite))

	// 1500 ms at 1000 ticks per second.
	require.NoError(t, store.Set(admin.KeyTimesliceQuantum, "1500"))
	assert.Equal(t, types.Tick(1500), sched.Quantum())
	got, err := store.Get(admin.KeyTimesliceQuantum)
	require.NoError(t, err)
	assert.Equal(t, "1500", got, "the stored value must round-trip through the unit conversion")
}

func TestStore_SetClamps(t *testing.T) {
	t.Parallel()
	store, sched := newStore(t)

	require.NoError(t, store.Set(admin.KeyReadWeight, "-5"))
	assert.Equal(t, uint64(0), sched.Weight(types.DirectionRead),
		"negative values clamp to zero")

	over := strconv.FormatUint(scheduler.MaxTunable+1, 10)
	require.NoError(t, store.Set(admin.KeyWriteWeight, over))
	assert.Equal(t, scheduler.MaxTunable, sched.Weight(types.DirectionWrite),
		"values above the bound clamp to the bound")
}

func TestStore_CounterStoresAreIgnored(t *testing.T) {
	t.Parallel()
	store, sched := newStore(t)

	_, err := sched.Admit(&adminRequest{direction: types.DirectionRead}, 0)
	require.NoError(t, err)
	dispatched := sched.Drain(types.Tick(uint64(sched.Quantum()) * 2))
	require.Len(t, dispatched, 1)

	require.NoError(t, store.Set(admin.KeyBatchedRequests, "0"),
		"counter stores are accepted for compatibility")
	got, err := store.Get(admin.KeyBatchedRequests)
	require.NoError(t, err)
	assert.Equal(t, "1", got, "and ignored")
}

func TestStore_Errors(t *testing.T) {
	t.Parallel()
	store, _ := newStore(t)

	_, err := store.Get("nr_requests")
	assert.ErrorIs(t, err, admin.ErrUnknownKey)

	err = store.Set("nr_requests", "128")
	assert.ErrorIs(t, err, admin.ErrUnknownKey)

	err = store.Set(admin.KeyReadWeight, "not-a-number")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, admin.ErrUnknownKey)
}
