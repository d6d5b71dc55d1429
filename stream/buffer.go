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

// Package stream implements the segmented byte buffer, the deadline-aware
// Source/Sink pull/push I/O contract, and InflaterSource, the decompression
// layer built on top of them (gzip framing and SPDY/3 name-value blocks live
// in the stream/gzip and stream/spdy subpackages).
//
// A Buffer represents an ordered byte sequence as a circular doubly-linked
// list of pooled, fixed-size segments. It supports O(1) whole-segment
// transfer between buffers and arbitrary random-access reads within the
// buffered range, without ever allocating outside the shared SegmentPool.
package stream


// Buffer is an ordered, mutable byte sequence backed by pooled segments.
//
// Operations on a single Buffer are not safe for concurrent use; callers
// sharing a Buffer across goroutines must synchronize externally.
type Buffer struct {
	head      *segment
	byteCount int64
}

// NewBuffer returns an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// FromBytes returns a Buffer pre-populated with a copy of b.
func FromBytes(b []byte) *Buffer {
	buf := NewBuffer()
	buf.Write(b)
	return buf
}

// Len returns the number of bytes currently buffered.
func (b *Buffer) Len() int64 {
	return b.byteCount
}

// ByteCount is an alias of Len.
func (b *Buffer) ByteCount() int64 {
	return b.byteCount
}

// Close recycles every segment owned by the Buffer back to the shared pool.
// Double-close is a no-op.
func (b *Buffer) Close() {
	for b.head != nil {
		s := b.head
		b.head = s.pop()
		sharedPool.recycle(s)
	}
	b.byteCount = 0
}

// writableSegment returns a tail segment with at least minCapacity free
// bytes, allocating and appending a fresh pooled segment if necessary.
func (b *Buffer) writableSegment(minCapacity int) *segment {
	if minCapacity < 1 || minCapacity > SegSize {
		panic("stream: writableSegment requires 1 <= minCapacity <= SegSize")
	}

	if b.head == nil {
		s := sharedPool.take()
		s.detach()
		b.head = s
		return s
	}

	tail := b.head.prev
	if tail.writableBytes() >= minCapacity {
		return tail
	}

	s := sharedPool.take()
	tail.push(s)
	return s
}

// appendSegment links a previously-detached segment as the new tail.
func (b *Buffer) appendSegment(s *segment) {
	if b.head == nil {
		s.detach()
		b.head = s
		return
	}
	b.head.prev.push(s)
}

// Write appends a copy of p to the buffer's tail.
func (b *Buffer) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		s := b.writableSegment(1)
		n := copy(s.data[s.limit:], p[written:])
		s.limit += n
		written += n
		b.byteCount += int64(n)
	}
	return written, nil
}

// WriteUTF8 encodes s as UTF-8 (no BOM) and appends it.
func (b *Buffer) WriteUTF8(s string) {
	b.Write([]byte(s))
}

func (b *Buffer) WriteByte(v byte) {
	s := b.writableSegment(1)
	s.data[s.limit] = v
	s.limit++
	b.byteCount++
}

func (b *Buffer) WriteShort(v int16) {
	b.Write([]byte{byte(v >> 8), byte(v)})
}

func (b *Buffer) WriteShortLE(v int16) {
	b.Write([]byte{byte(v), byte(v >> 8)})
}

func (b *Buffer) WriteInt(v int32) {
	b.Write([]byte{byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v)})
}

func (b *Buffer) WriteIntLE(v int32) {
	b.Write([]byte{byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24)})
}

func (b *Buffer) WriteLong(v int64) {
	b.Write([]byte{
		byte(v >> 56), byte(v >> 48), byte(v >> 40), byte(v >> 32),
		byte(v >> 24), byte(v >> 16), byte(v >> 8), byte(v),
	})
}

func (b *Buffer) WriteLongLE(v int64) {
	b.Write([]byte{
		byte(v), byte(v >> 8), byte(v >> 16), byte(v >> 24),
		byte(v >> 32), byte(v >> 40), byte(v >> 48), byte(v >> 56),
	})
}

// require fails with EOF unless at least n bytes are already buffered.
func (b *Buffer) require(n int64) error {
	if b.byteCount < n {
		return ErrEOF
	}
	return nil
}

// ReadByteSlice consumes and returns exactly n bytes as a freshly allocated,
// immutable slice the caller is free to retain.
func (b *Buffer) ReadByteSlice(n int64) ([]byte, error) {
	if err := b.require(n); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	var off int64
	for off < n {
		s := b.head
		avail := int64(s.readableBytes())
		take := n - off
		if take > avail {
			take = avail
		}
		copy(out[off:], s.data[s.pos:s.pos+int(take)])
		s.pos += int(take)
		off += take
		b.byteCount -= take
		if s.readableBytes() == 0 {
			b.removeHeadSegment()
		}
	}
	return out, nil
}

// removeHeadSegment unlinks and recycles the current head segment.
func (b *Buffer) removeHeadSegment() {
	s := b.head
	b.head = s.pop()
	sharedPool.recycle(s)
}

func (b *Buffer) ReadByte() (byte, error) {
	if err := b.require(1); err != nil {
		return 0, err
	}
	s := b.head
	v := s.data[s.pos]
	s.pos++
	b.byteCount--
	if s.readableBytes() == 0 {
		b.removeHeadSegment()
	}
	return v, nil
}

func (b *Buffer) ReadShort() (int16, error) {
	v, err := b.ReadByteSlice(2)
	if err != nil {
		return 0, err
	}
	return int16(uint16(v[0])<<8 | uint16(v[1])), nil
}

func (b *Buffer) ReadShortLE() (int16, error) {
	v, err := b.ReadByteSlice(2)
	if err != nil {
		return 0, err
	}
	return int16(uint16(v[1])<<8 | uint16(v[0])), nil
}

func (b *Buffer) ReadInt() (int32, error) {
	v, err := b.ReadByteSlice(4)
	if err != nil {
		return 0, err
	}
	return int32(uint32(v[0])<<24 | uint32(v[1])<<16 | uint32(v[2])<<8 | uint32(v[3])), nil
}

func (b *Buffer) ReadIntLE() (int32, error) {
	v, err := b.ReadByteSlice(4)
	if err != nil {
		return 0, err
	}
	return int32(uint32(v[3])<<24 | uint32(v[2])<<16 | uint32(v[1])<<8 | uint32(v[0])), nil
}

func (b *Buffer) ReadLong() (int64, error) {
	v, err := b.ReadByteSlice(8)
	if err != nil {
		return 0, err
	}
	var out uint64
	for i := 0; i < 8; i++ {
		out = out<<8 | uint64(v[i])
	}
	return int64(out), nil
}

func (b *Buffer) ReadLongLE() (int64, error) {
	v, err := b.ReadByteSlice(8)
	if err != nil {
		return 0, err
	}
	var out uint64
	for i := 7; i >= 0; i-- {
		out = out<<8 | uint64(v[i])
	}
	return int64(out), nil
}

// GetByte returns the byte at absolute index i without consuming it.
func (b *Buffer) GetByte(i int64) (byte, error) {
	if i < 0 || i >= b.byteCount {
		return 0, ErrEOF
	}
	s := b.head
	for {
		n := int64(s.readableBytes())
		if i < n {
			return s.data[s.pos+int(i)], nil
		}
		i -= n
		s = s.next
	}
}

// Skip advances the head by n bytes, recycling any segments it empties.
func (b *Buffer) Skip(n int64) error {
	if err := b.require(n); err != nil {
		return err
	}
	for n > 0 {
		s := b.head
		avail := int64(s.readableBytes())
		if n < avail {
			s.pos += int(n)
			b.byteCount -= n
			return nil
		}
		n -= avail
		b.byteCount -= avail
		b.removeHeadSegment()
	}
	return nil
}

// IndexOf returns the smallest absolute index i >= start with buffer[i] ==
// target, or -1 if no such index exists within the buffered range.
func (b *Buffer) IndexOf(target byte, start int64) int64 {
	if start < 0 {
		start = 0
	}
	if start >= b.byteCount {
		return -1
	}

	var base int64
	s := b.head
	// fast-forward to the segment containing `start`
	for {
		n := int64(s.readableBytes())
		if start < base+n {
			break
		}
		base += n
		s = s.next
	}

	offset := start - base
	for {
		readable := s.data[s.pos : s.limit]
		for i := int(offset); i < len(readable); i++ {
			if readable[i] == target {
				return base + int64(i)
			}
		}
		base += int64(len(readable))
		if base >= b.byteCount {
			return -1
		}
		s = s.next
		offset = 0
	}
}

// ReadInto transfers exactly n bytes from b into dst, splicing whole
// segments in O(1) and splitting at most the two boundary segments. It
// fails with EOF if b does not contain n bytes.
func (b *Buffer) ReadInto(dst *Buffer, n int64) error {
	if err := b.require(n); err != nil {
		return err
	}
	for n > 0 {
		s := b.head
		avail := int64(s.readableBytes())

		if n < avail {
			// partial: copy the prefix out, retain the remainder in b.
			dst.Write(s.data[s.pos : s.pos+int(n)])
			s.pos += int(n)
			b.byteCount -= n
			return nil
		}

		// whole segment moves.
		b.byteCount -= avail
		n -= avail
		b.removeSegmentKeepData(s)
		dst.absorbSegment(s, int(avail))
	}
	return nil
}

// removeSegmentKeepData unlinks s from b without recycling it (ownership is
// about to transfer to another Buffer).
func (b *Buffer) removeSegmentKeepData(s *segment) {
	wasHead := b.head == s
	next := s.pop()
	if wasHead {
		b.head = next
	}
}

// absorbSegment appends s (carrying n live bytes at its current pos/limit)
// to dst, compacting into the existing tail when there is room so that many
// small transfers do not accumulate fragmented segments.
func (b *Buffer) absorbSegment(s *segment, n int) {
	if b.head != nil {
		tail := b.head.prev
		if tail.writableBytes() >= n {
			copy(tail.data[tail.limit:], s.data[s.pos:s.limit])
			tail.limit += n
			b.byteCount += int64(n)
			sharedPool.recycle(s)
			return
		}
	}
	b.appendSegment(s)
	b.byteCount += int64(n)
}

// Fingerprint returns a content fingerprint of the currently buffered bytes,
// useful for test assertions and cache-key style deduplication. It does not
// consume the buffer.
func (b *Buffer) Fingerprint() uint64 {
	return fingerprint(b)
}

// Snapshot returns a copy of the buffered bytes without consuming them.
// Intended for tests and diagnostics; production code should prefer
// ReadByteSlice/ReadInto to avoid the copy.
func (b *Buffer) Snapshot() []byte {
	out := make([]byte, 0, b.byteCount)
	for s := b.head; s != nil; {
		out = append(out, s.data[s.pos:s.limit]...)
		s = s.next
		if s == b.head {
			break
		}
	}
	return out
}
