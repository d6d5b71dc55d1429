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

package spdy

import "github.com/flowbyte/flowbyte/stream"

const maxPairs = 1024

// Observer is notified of decode outcomes, letting callers (the metrics
// package) expose frame counters without this package importing Prometheus.
type Observer interface {
	OnDecoded()
	OnError(kind string)
}

var observer Observer

// SetObserver registers a package-wide Observer; pass nil to unregister.
func SetObserver(o Observer) {
	observer = o
}

func observeError(err error) {
	if observer == nil {
		return
	}
	kind, ok := stream.KindOf(err)
	if !ok {
		observer.OnError("unknown")
		return
	}
	observer.OnError(kind.String())
}

// windowedSource bounds the total number of bytes it will ever yield to
// limit (the block's compressed_limit budget), draining a leftover Buffer of already-read framing
// bytes before pulling fresh bytes from an underlying Source.
type windowedSource struct {
	leftover *stream.Buffer
	upstream stream.Source
	limit    int64
}

func (w *windowedSource) Read(dst *stream.Buffer, n int64, deadline stream.Deadline) (int64, error) {
	if w.limit <= 0 {
		return -1, nil
	}
	if n > w.limit {
		n = w.limit
	}

	if w.leftover.Len() > 0 {
		take := w.leftover.Len()
		if take > n {
			take = n
		}
		if err := w.leftover.ReadInto(dst, take); err != nil {
			return 0, err
		}
		w.limit -= take
		return take, nil
	}

	rn, err := w.upstream.Read(dst, n, deadline)
	if err != nil {
		return 0, err
	}
	if rn == -1 {
		return -1, nil
	}
	w.limit -= rn
	return rn, nil
}

// Close is a no-op: both leftover and upstream are owned by the caller
// that constructed this reader, not by the window itself.
func (w *windowedSource) Close(deadline stream.Deadline) error {
	return nil
}

// NameValueBlockReader decodes a sequence of SPDY/3 name-value header
// blocks sharing one zlib decompression context seeded with Dictionary.
type NameValueBlockReader struct {
	window   *windowedSource
	inflater *stream.InflaterSource
}

// NewNameValueBlockReader constructs a reader pulling compressed bytes
// first from leftover (already-read framing remainder) and then from
// upstream, decompressing with the shared SPDY/3 Dictionary.
func NewNameValueBlockReader(leftover *stream.Buffer, upstream stream.Source) *NameValueBlockReader {
	window := &windowedSource{leftover: leftover, upstream: upstream}
	compressed := stream.NewBuffer()
	return &NameValueBlockReader{
		window:   window,
		inflater: stream.NewInflaterSource(window, compressed, []byte(Dictionary)),
	}
}

// NameValuePair is one decoded header name/value entry.
type NameValuePair struct {
	Name  []byte
	Value []byte
}

// ReadNameValueBlock decodes exactly one name-value block from the next
// length bytes of compressed input.
func (r *NameValueBlockReader) ReadNameValueBlock(length int64, deadline stream.Deadline) ([]NameValuePair, error) {
	r.window.limit += length

	out := stream.NewBuffer()
	defer out.Close()

	if err := stream.Require(r.inflater, out, 4, deadline); err != nil {
		observeError(err)
		return nil, err
	}
	numPairsRaw, _ := out.ReadByteSlice(4)
	numPairs := int32(uint32(numPairsRaw[0])<<24 | uint32(numPairsRaw[1])<<16 | uint32(numPairsRaw[2])<<8 | uint32(numPairsRaw[3]))
	if numPairs < 0 || numPairs > maxPairs {
		err := stream.MalformedInput("spdy: num_pairs out of range: %d", numPairs)
		observeError(err)
		return nil, err
	}

	pairs := make([]NameValuePair, 0, numPairs)
	for i := int32(0); i < numPairs; i++ {
		name, err := readLengthPrefixed(r.inflater, out, deadline, true)
		if err != nil {
			observeError(err)
			return nil, err
		}
		if len(name) == 0 {
			err := stream.MalformedInput("spdy: empty header name")
			observeError(err)
			return nil, err
		}
		value, err := readLengthPrefixed(r.inflater, out, deadline, false)
		if err != nil {
			observeError(err)
			return nil, err
		}
		pairs = append(pairs, NameValuePair{Name: name, Value: value})
	}

	// Drain whatever the window still owes: the decompressor can stop pulling
	// input once it has produced the last pair, which leaves compressed_limit
	// positive for bytes of this block that never reach a decoded pair. Those
	// bytes are typically the Z_SYNC_FLUSH marker the
	// writer inserts between blocks, and are genuinely part of the shared
	// zlib bitstream, so they have to be fed through r.inflater itself
	// rather than read off the window and thrown away — otherwise the
	// decompressor's history goes out of sync with what the writer produced
	// and the next block on this connection fails to decode.
	if err := r.drain(deadline); err != nil {
		observeError(err)
		return nil, err
	}

	if observer != nil {
		observer.OnDecoded()
	}
	return pairs, nil
}

// drain consumes whatever compressed budget the current block still owes
// by reading it through r.inflater rather than off the window directly, so
// any residual bytes (a Z_SYNC_FLUSH marker, most commonly) update the
// shared decompressor's state instead of being stolen from it. The decoded
// output, if any, is discarded: a flush marker never decodes to payload
// bytes of its own.
func (r *NameValueBlockReader) drain(deadline stream.Deadline) error {
	scratch := stream.NewBuffer()
	defer scratch.Close()
	for r.window.limit > 0 {
		if err := deadline.ThrowIfReached(); err != nil {
			return err
		}
		rn, err := r.inflater.Read(scratch, r.window.limit, deadline)
		if err != nil {
			return err
		}
		if rn == -1 {
			break
		}
		if err := scratch.Skip(rn); err != nil {
			return err
		}
	}
	return nil
}

// readLengthPrefixed reads a 32-bit big-endian length followed by that many
// bytes, returning an ASCII-lowercased copy (via stream.ASCIILower) when
// lowercase is set.
func readLengthPrefixed(src stream.Source, scratch *stream.Buffer, deadline stream.Deadline, lowercase bool) ([]byte, error) {
	if err := stream.Require(src, scratch, 4, deadline); err != nil {
		return nil, err
	}
	lenRaw, _ := scratch.ReadByteSlice(4)
	n := int64(uint32(lenRaw[0])<<24 | uint32(lenRaw[1])<<16 | uint32(lenRaw[2])<<8 | uint32(lenRaw[3]))
	if n < 0 {
		return nil, stream.MalformedInput("spdy: negative length prefix")
	}
	if err := stream.Require(src, scratch, n, deadline); err != nil {
		return nil, err
	}
	b, err := scratch.ReadByteSlice(n)
	if err != nil {
		return nil, err
	}
	if lowercase {
		return stream.ASCIILower(b), nil
	}
	return b, nil
}

// Close closes the inflater's zlib reader. The window's Close is a no-op, so
// leftover and upstream stay open for the caller that owns them, and the
// reader's internal compressed buffer is not returned to the segment pool.
func (r *NameValueBlockReader) Close(deadline stream.Deadline) error {
	return r.inflater.Close(deadline)
}
