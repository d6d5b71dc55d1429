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

func TestASCIILower(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		want []byte
	}{
		{name: "AllLower", in: []byte("content-type"), want: []byte("content-type")},
		{name: "AllUpper", in: []byte("CONTENT-TYPE"), want: []byte("content-type")},
		{name: "Mixed", in: []byte("Content-Type"), want: []byte("content-type")},
		{name: "NonAlpha", in: []byte("x-123_ABC"), want: []byte("x-123_abc")},
		{name: "Empty", in: []byte{}, want: []byte{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ASCIILower(tt.in)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestASCIILowerReturnsSameSliceWhenNoChange(t *testing.T) {
	in := []byte("already-lower")
	out := ASCIILower(in)
	assert.Same(t, &in[0], &out[0])
}

func TestASCIILowerAllocatesNewSliceOnChange(t *testing.T) {
	in := []byte("Has-Upper")
	out := ASCIILower(in)
	assert.NotSame(t, &in[0], &out[0])
	assert.Equal(t, "Has-Upper", string(in), "input must not be mutated")
}
