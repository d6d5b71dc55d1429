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

import "io"

// streamSource adapts an io.Reader to the Source contract.
type streamSource struct {
	in io.Reader
}

// FromReader wraps an external io.Reader as a Source.
//
// Each call performs at most one underlying Read, directly into the
// destination segment's backing array, so no byte is copied twice.
func FromReader(in io.Reader) Source {
	return &streamSource{in: in}
}

func (s *streamSource) Read(dst *Buffer, n int64, deadline Deadline) (int64, error) {
	if err := deadline.ThrowIfReached(); err != nil {
		return 0, err
	}
	if n <= 0 {
		return 0, nil
	}

	tail := dst.writableSegment(1)
	max := int64(tail.writableBytes())
	if max > n {
		max = n
	}

	rn, err := s.in.Read(tail.data[tail.limit : tail.limit+int(max)])
	if rn > 0 {
		tail.limit += rn
		dst.byteCount += int64(rn)
	}
	if rn == 0 && err == nil {
		// well-behaved readers don't do this, but guard against the ones
		// that do rather than spin the caller.
		return 0, nil
	}
	if err == io.EOF {
		if rn > 0 {
			return int64(rn), nil
		}
		return -1, nil
	}
	if err != nil {
		return 0, ioError(err)
	}
	return int64(rn), nil
}

func (s *streamSource) Close(deadline Deadline) error {
	if c, ok := s.in.(io.Closer); ok {
		return ioError(c.Close())
	}
	return nil
}

// streamSink adapts an io.Writer to the Sink contract.
type streamSink struct {
	out io.Writer
}

// ToWriter wraps an external io.Writer as a Sink.
func ToWriter(out io.Writer) Sink {
	return &streamSink{out: out}
}

func (s *streamSink) Write(src *Buffer, n int64, deadline Deadline) error {
	if err := src.require(n); err != nil {
		return err
	}
	remaining := n
	for remaining > 0 {
		if err := deadline.ThrowIfReached(); err != nil {
			return err
		}
		head := src.head
		readable := int64(head.readableBytes())
		want := remaining
		if want > readable {
			want = readable
		}

		wn, err := s.out.Write(head.data[head.pos : head.pos+int(want)])
		if wn > 0 {
			head.pos += wn
			src.byteCount -= int64(wn)
			remaining -= int64(wn)
			if head.readableBytes() == 0 {
				src.removeHeadSegment()
			}
		}
		if err != nil {
			return ioError(err)
		}
	}
	return nil
}

func (s *streamSink) Flush(deadline Deadline) error {
	if err := deadline.ThrowIfReached(); err != nil {
		return err
	}
	if f, ok := s.out.(interface{ Flush() error }); ok {
		return ioError(f.Flush())
	}
	return nil
}

func (s *streamSink) Close(deadline Deadline) error {
	if c, ok := s.out.(io.Closer); ok {
		return ioError(c.Close())
	}
	return nil
}

// BufferedSourceReader presents a Source as a classical io.Reader, backed
// by a single segment's worth of lookahead refilled on underflow.
type BufferedSourceReader struct {
	src      Source
	buf      *Buffer
	deadline Deadline
}

// NewBufferedSourceReader wraps src for collaborators that want the
// standard io.Reader shape instead of the Source pull contract.
func NewBufferedSourceReader(src Source, deadline Deadline) *BufferedSourceReader {
	return &BufferedSourceReader{src: src, buf: NewBuffer(), deadline: deadline}
}

func (r *BufferedSourceReader) Read(p []byte) (int, error) {
	if r.buf.byteCount == 0 {
		n, err := r.src.Read(r.buf, SegSize, r.deadline)
		if err != nil {
			return 0, err
		}
		if n == -1 {
			return 0, io.EOF
		}
	}
	out, err := r.buf.ReadByteSlice(minInt64(int64(len(p)), r.buf.byteCount))
	if err != nil {
		return 0, err
	}
	return copy(p, out), nil
}

func (r *BufferedSourceReader) Close() error {
	r.buf.Close()
	return r.src.Close(r.deadline)
}

// BufferedSinkWriter presents a Sink as a classical io.Writer, buffering up
// to one segment and flushing on fill, Flush, or Close.
type BufferedSinkWriter struct {
	sink     Sink
	buf      *Buffer
	deadline Deadline
}

// NewBufferedSinkWriter wraps sink for collaborators that want io.Writer.
func NewBufferedSinkWriter(sink Sink, deadline Deadline) *BufferedSinkWriter {
	return &BufferedSinkWriter{sink: sink, buf: NewBuffer(), deadline: deadline}
}

func (w *BufferedSinkWriter) Write(p []byte) (int, error) {
	written := 0
	for written < len(p) {
		n, _ := w.buf.Write(p[written:])
		written += n
		if w.buf.byteCount >= SegSize {
			if err := w.drain(); err != nil {
				return written, err
			}
		}
	}
	return written, nil
}

func (w *BufferedSinkWriter) drain() error {
	return w.sink.Write(w.buf, w.buf.byteCount, w.deadline)
}

func (w *BufferedSinkWriter) Flush() error {
	if err := w.drain(); err != nil {
		return err
	}
	return w.sink.Flush(w.deadline)
}

func (w *BufferedSinkWriter) Close() error {
	if err := w.Flush(); err != nil {
		return err
	}
	w.buf.Close()
	return w.sink.Close(w.deadline)
}

func minInt64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
