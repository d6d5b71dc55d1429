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
	"io"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
)

// InflaterSource decompresses a compressed byte stream shared with an
// outer framer (gzip body, SPDY name-value block). The compressed bytes are
// pulled on demand from an upstream Source into a shared Buffer so the
// framer and the inflater never disagree about how many compressed bytes
// have actually been consumed.
//
// Dictionary installation happens once, on the first Read, rather than the
// incremental needsDictionary()/needsInput() retry dance a byte-oriented
// inflater exposes: compress/flate and compress/zlib's io.Reader shape has
// no notion of "feed me a dictionary mid-stream", so callers that know up
// front they will need one (SPDY/3 always does) pass it to
// NewInflaterSource and it is installed the first time the underlying
// stream is actually touched, so construction itself never blocks on I/O.
type InflaterSource struct {
	upstream   Source
	compressed *Buffer
	dictionary []byte
	feeder     *compressedFeeder
	fr         io.ReadCloser
	eof        bool
}

// NewInflaterSource returns an InflaterSource pulling compressed bytes from
// upstream into the shared compressed buffer.
//
// A non-empty dictionary selects zlib framing (RFC 1950), which is what
// SPDY/3 name-value blocks use. A nil or empty dictionary selects raw
// deflate framing (RFC 1951), which is what gzip bodies use.
func NewInflaterSource(upstream Source, compressed *Buffer, dictionary []byte) *InflaterSource {
	return &InflaterSource{
		upstream:   upstream,
		compressed: compressed,
		dictionary: dictionary,
		feeder:     &compressedFeeder{upstream: upstream, compressed: compressed},
	}
}

// Read inflates up to n bytes into dst. feeder.deadline is set for the
// duration of the call so the underlying Source.Read it performs on
// underflow still honors the caller's deadline.
func (s *InflaterSource) Read(dst *Buffer, n int64, deadline Deadline) (int64, error) {
	if s.eof {
		return -1, nil
	}
	if n <= 0 {
		return 0, nil
	}

	s.feeder.deadline = deadline
	if s.fr == nil {
		if err := s.open(); err != nil {
			return 0, err
		}
	}

	tail := dst.writableSegment(1)
	max := int64(tail.writableBytes())
	if max > n {
		max = n
	}

	rn, err := s.fr.Read(tail.data[tail.limit : tail.limit+int(max)])
	if rn > 0 {
		tail.limit += rn
		dst.byteCount += int64(rn)
	}
	if err == io.EOF {
		s.eof = true
		if rn > 0 {
			return int64(rn), nil
		}
		return -1, nil
	}
	if err != nil {
		if se, ok := s.feeder.lastErr(); ok {
			return 0, se
		}
		return 0, malformedInput("inflate: %v", err)
	}
	return int64(rn), nil
}

// open constructs the underlying flate/zlib reader, which for zlib reads
// the 2-byte header (and checks the dictionary) immediately.
func (s *InflaterSource) open() error {
	if len(s.dictionary) > 0 {
		fr, err := zlib.NewReaderDict(s.feeder, s.dictionary)
		if err != nil {
			if se, ok := s.feeder.lastErr(); ok {
				return se
			}
			return malformedInput("inflate: zlib header: %v", err)
		}
		s.fr = fr
		return nil
	}
	s.fr = flate.NewReader(s.feeder)
	return nil
}

// Close releases the flate/zlib reader and closes the upstream Source.
func (s *InflaterSource) Close(deadline Deadline) error {
	closers := []func() error{
		func() error { return s.upstream.Close(deadline) },
	}
	if s.fr != nil {
		closers = append([]func() error{func() error { return s.fr.Close() }}, closers...)
	}
	return closeAll(closers...)
}

// compressedFeeder adapts the shared compressed Buffer + upstream Source
// pair into the io.Reader compress/flate and compress/zlib expect,
// refilling from upstream whenever the shared buffer runs dry.
type compressedFeeder struct {
	upstream   Source
	compressed *Buffer
	deadline   Deadline
	sticky     error
}

// refill pulls more bytes from upstream into the shared compressed buffer
// only when it is empty. Whatever upstream hands back beyond what flate/
// zlib end up consuming stays sitting in the shared buffer, visible to
// whatever reads the compressed stream next (a gzip trailer, the next
// SPDY name-value block) instead of being trapped in a private io.Reader
// buffer — this is what keeps the byte accounting exact.
func (f *compressedFeeder) refill(want int64) error {
	if f.compressed.byteCount > 0 {
		return nil
	}
	n, err := f.upstream.Read(f.compressed, want, f.deadline)
	if err != nil {
		f.sticky = err
		return err
	}
	if n == -1 {
		return io.EOF
	}
	return nil
}

// ReadByte is implemented so compress/flate and compress/zlib consume this
// feeder directly, one byte at a time off the shared buffer, instead of
// wrapping it in their own bufio wrapper (which would hide any over-read
// residue from the rest of this package).
func (f *compressedFeeder) ReadByte() (byte, error) {
	if f.sticky != nil {
		return 0, f.sticky
	}
	if err := f.refill(int64(SegSize)); err != nil {
		return 0, err
	}
	return f.compressed.ReadByte()
}

func (f *compressedFeeder) Read(p []byte) (int, error) {
	if f.sticky != nil {
		return 0, f.sticky
	}
	if err := f.refill(int64(len(p))); err != nil {
		return 0, err
	}
	out, err := f.compressed.ReadByteSlice(minInt64(int64(len(p)), f.compressed.byteCount))
	if err != nil {
		return 0, err
	}
	return copy(p, out), nil
}

func (f *compressedFeeder) lastErr() (error, bool) {
	if f.sticky != nil {
		return f.sticky, true
	}
	return nil, false
}
