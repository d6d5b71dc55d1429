// Copyright 2025 The Flowbyte Authors
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package stream

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeadlineNoDeadlineNeverExpires(t *testing.T) {
	d := NoDeadline()
	assert.False(t, d.HasDeadline())
	assert.NoError(t, d.ThrowIfReached())
}

func TestDeadlineAfterExpiresOncedElapsed(t *testing.T) {
	d := After(1 * time.Millisecond)
	time.Sleep(5 * time.Millisecond)
	assert.True(t, d.HasDeadline())
	err := d.ThrowIfReached()
	assert.True(t, IsKind(err, KindTimeout))
}

func TestDeadlineAtFuture(t *testing.T) {
	d := At(time.Now().Add(time.Hour))
	assert.NoError(t, d.ThrowIfReached())
	assert.Greater(t, d.Remaining(), time.Minute)
}
