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
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBufferWriteReadRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		data []byte
	}{
		{name: "Empty", data: []byte{}},
		{name: "SingleByte", data: []byte{0x42}},
		{name: "WithinOneSegment", data: bytes.Repeat([]byte{'a'}, 100)},
		{name: "ExactlyOneSegment", data: bytes.Repeat([]byte{'b'}, SegSize)},
		{name: "SpansMultipleSegments", data: bytes.Repeat([]byte{'c'}, SegSize*3+17)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := NewBuffer()
			defer buf.Close()

			n, err := buf.Write(tt.data)
			require.NoError(t, err)
			assert.Equal(t, len(tt.data), n)
			assert.Equal(t, int64(len(tt.data)), buf.Len())

			got, err := buf.ReadByteSlice(int64(len(tt.data)))
			require.NoError(t, err)
			assert.Equal(t, tt.data, got)
			assert.Equal(t, int64(0), buf.Len())
		})
	}
}

func TestBufferIntegerCodecs(t *testing.T) {
	buf := NewBuffer()
	defer buf.Close()

	buf.WriteByte(0xAB)
	buf.WriteShort(0x1234)
	buf.WriteShortLE(0x1234)
	buf.WriteInt(0x0102_0304)
	buf.WriteIntLE(0x0102_0304)
	buf.WriteLong(0x0102030405060708)
	buf.WriteLongLE(0x0102030405060708)

	b, err := buf.ReadByte()
	require.NoError(t, err)
	assert.Equal(t, byte(0xAB), b)

	sh, err := buf.ReadShort()
	require.NoError(t, err)
	assert.Equal(t, int16(0x1234), sh)

	shLE, err := buf.ReadShortLE()
	require.NoError(t, err)
	assert.Equal(t, int16(0x1234), shLE)

	i, err := buf.ReadInt()
	require.NoError(t, err)
	assert.Equal(t, int32(0x0102_0304), i)

	iLE, err := buf.ReadIntLE()
	require.NoError(t, err)
	assert.Equal(t, int32(0x0102_0304), iLE)

	l, err := buf.ReadLong()
	require.NoError(t, err)
	assert.Equal(t, int64(0x0102030405060708), l)

	lLE, err := buf.ReadLongLE()
	require.NoError(t, err)
	assert.Equal(t, int64(0x0102030405060708), lLE)
}

func TestBufferReadUnderflowFailsEOF(t *testing.T) {
	buf := NewBuffer()
	defer buf.Close()
	buf.Write([]byte{1, 2, 3})

	_, err := buf.ReadByteSlice(10)
	assert.True(t, IsKind(err, KindEOF))
}

func TestBufferGetByteRandomAccess(t *testing.T) {
	buf := NewBuffer()
	defer buf.Close()
	data := bytes.Repeat([]byte{0}, SegSize+10)
	data[0] = 'x'
	data[SegSize] = 'y'
	data[SegSize+9] = 'z'
	buf.Write(data)

	b0, err := buf.GetByte(0)
	require.NoError(t, err)
	assert.Equal(t, byte('x'), b0)

	bMid, err := buf.GetByte(SegSize)
	require.NoError(t, err)
	assert.Equal(t, byte('y'), bMid)

	bLast, err := buf.GetByte(SegSize + 9)
	require.NoError(t, err)
	assert.Equal(t, byte('z'), bLast)

	_, err = buf.GetByte(int64(len(data)))
	assert.True(t, IsKind(err, KindEOF))

	// random access must not consume anything.
	assert.Equal(t, int64(len(data)), buf.Len())
}

func TestBufferSkip(t *testing.T) {
	buf := NewBuffer()
	defer buf.Close()
	buf.Write(bytes.Repeat([]byte{'a'}, SegSize+5))

	require.NoError(t, buf.Skip(SegSize+3))
	assert.Equal(t, int64(2), buf.Len())

	b, err := buf.ReadByteSlice(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{'a', 'a'}, b)
}

func TestBufferIndexOf(t *testing.T) {
	buf := NewBuffer()
	defer buf.Close()
	data := bytes.Repeat([]byte{'a'}, SegSize)
	data = append(data, 'Z')
	data = append(data, bytes.Repeat([]byte{'a'}, 10)...)
	buf.Write(data)

	assert.Equal(t, int64(SegSize), buf.IndexOf('Z', 0))
	assert.Equal(t, int64(-1), buf.IndexOf('Q', 0))
	assert.Equal(t, int64(-1), buf.IndexOf('Z', SegSize+1))
}

func TestBufferReadIntoSplicesWholeSegments(t *testing.T) {
	src := NewBuffer()
	dst := NewBuffer()
	defer src.Close()
	defer dst.Close()

	data := bytes.Repeat([]byte{'m'}, SegSize*3)
	src.Write(data)

	require.NoError(t, src.ReadInto(dst, SegSize*2))
	assert.Equal(t, int64(SegSize), src.Len())
	assert.Equal(t, int64(SegSize*2), dst.Len())

	got := dst.Snapshot()
	assert.Equal(t, bytes.Repeat([]byte{'m'}, SegSize*2), got)
}

func TestBufferReadIntoPartialSegmentSplit(t *testing.T) {
	src := NewBuffer()
	dst := NewBuffer()
	defer src.Close()
	defer dst.Close()

	src.Write(bytes.Repeat([]byte{'n'}, 100))
	require.NoError(t, src.ReadInto(dst, 40))

	assert.Equal(t, int64(60), src.Len())
	assert.Equal(t, int64(40), dst.Len())
	assert.Equal(t, bytes.Repeat([]byte{'n'}, 40), dst.Snapshot())
	assert.Equal(t, bytes.Repeat([]byte{'n'}, 60), src.Snapshot())
}

func TestBufferCloseRecyclesSegmentsAndIsIdempotent(t *testing.T) {
	before := Stats()

	buf := NewBuffer()
	buf.Write(bytes.Repeat([]byte{'p'}, SegSize*4))
	buf.Close()
	buf.Close() // double-close must be a no-op, not a crash.

	after := Stats()
	assert.Equal(t, before.FreeSegments, after.FreeSegments)
}

func TestBufferFingerprintStableAndSensitive(t *testing.T) {
	a := FromBytes([]byte("hello world"))
	b := FromBytes([]byte("hello world"))
	c := FromBytes([]byte("hello worlD"))
	defer a.Close()
	defer b.Close()
	defer c.Close()

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}
