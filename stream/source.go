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

// Source pulls bytes into a caller-supplied Buffer.
//
// Read returns the number of bytes appended to dst (at least one, unless n
// is zero) or -1 once the underlying stream is exhausted. Monotonic: once
// -1 has been returned, every later call must also return -1.
type Source interface {
	Read(dst *Buffer, n int64, deadline Deadline) (int64, error)
	Close(deadline Deadline) error
}

// Sink pushes bytes out of a caller-supplied Buffer.
//
// Write transfers exactly n bytes out of src before returning, or fails.
type Sink interface {
	Write(src *Buffer, n int64, deadline Deadline) error
	Flush(deadline Deadline) error
	Close(deadline Deadline) error
}

// Require blocks on src until dst holds at least n bytes, or fails with EOF
// if src reaches end of stream first, or Timeout if deadline is reached.
//
// This is the one primitive every higher layer (InflaterSource, gzip
// framing, SPDY block reads) builds its own "read at least N bytes" logic
// on top of.
func Require(src Source, dst *Buffer, n int64, deadline Deadline) error {
	for dst.byteCount < n {
		if err := deadline.ThrowIfReached(); err != nil {
			return err
		}
		rn, err := src.Read(dst, n-dst.byteCount, deadline)
		if err != nil {
			return err
		}
		if rn == -1 {
			return ErrEOF
		}
	}
	return nil
}
