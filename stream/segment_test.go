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

	"github.com/stretchr/testify/assert"
)

func TestSegmentPushFormsRing(t *testing.T) {
	a := &segment{}
	a.detach()
	b := &segment{}
	b.detach()
	c := &segment{}
	c.detach()

	a.push(b)
	b.push(c)

	assert.Same(t, b, a.next)
	assert.Same(t, c, b.next)
	assert.Same(t, a, c.next)
	assert.Same(t, c, a.prev)
}

func TestSegmentPopSoleElementReturnsNil(t *testing.T) {
	a := &segment{}
	a.detach()
	assert.Nil(t, a.pop())
}

func TestSegmentPopReturnsFormerNext(t *testing.T) {
	a := &segment{}
	a.detach()
	b := &segment{}
	b.detach()
	a.push(b)

	next := a.pop()
	assert.Same(t, b, next)
	assert.Same(t, b, b.next)
}

func TestSegmentReadableWritableBytes(t *testing.T) {
	s := &segment{pos: 10, limit: 50}
	assert.Equal(t, 40, s.readableBytes())
	assert.Equal(t, SegSize-50, s.writableBytes())
}
