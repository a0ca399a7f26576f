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

package types

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTick_HappensBefore(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name       string
		a, b       Tick
		wantBefore bool
	}{
		{
			name:       "plain ordering",
			a:          100,
			b:          200,
			wantBefore: true,
		},
		{
			name:       "equal ticks",
			a:          100,
			b:          100,
			wantBefore: false,
		},
		{
			name:       "ordering survives counter wrap",
			a:          math.MaxUint64 - 10,
			b:          5, // 16 ticks later, after wrapping
			wantBefore: true,
		},
		{
			name:       "reverse across the wrap",
			a:          5,
			b:          math.MaxUint64 - 10,
			wantBefore: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.wantBefore, tc.a.Before(tc.b), "Before")
			assert.Equal(t, tc.wantBefore, tc.b.After(tc.a), "After must mirror Before")
		})
	}
}

func TestTick_Expired(t *testing.T) {
	t.Parallel()

	deadline := Tick(200)
	assert.False(t, deadline.Expired(199), "deadline in the future must not be expired")
	assert.True(t, deadline.Expired(200), "deadline is inclusive: expired exactly at now")
	assert.True(t, deadline.Expired(201), "elapsed deadline must be expired")

	wrapped := Tick(3) // assigned just past the wrap point
	assert.True(t, wrapped.Expired(10), "expiry must survive counter wrap")
	assert.False(t, Tick(10).Expired(math.MaxUint64-5),
		"a deadline just after the wrap must not be expired just before it")
}

func TestMinTick(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Tick(1), MinTick(1, 2))
	assert.Equal(t, Tick(1), MinTick(2, 1))
	assert.Equal(t, Tick(7), MinTick(7, 7))
	assert.Equal(t, Tick(math.MaxUint64-1), MinTick(math.MaxUint64-1, 4),
		"min must follow happens-before order across the wrap")
}

func TestDirection(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "read", DirectionRead.String())
	assert.Equal(t, "write", DirectionWrite.String())
	assert.True(t, DirectionRead.Valid())
	assert.True(t, DirectionWrite.Valid())
	assert.False(t, Direction(2).Valid())
	assert.Equal(t, "invalid", Direction(7).String())
}
