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

import stderrors "errors"

// KindOf reports the Kind carried by err, if any, so callers outside this
// package (metrics, logging) can label failures without depending on the
// Error type itself.
func KindOf(err error) (Kind, bool) {
	var se *Error
	if stderrors.As(err, &se) {
		return se.Kind, true
	}
	return 0, false
}

// ChecksumMismatch constructs the ChecksumMismatch error reported by the
// gzip framing layer; name is one of "FHCRC", "CRC", "ISIZE".
func ChecksumMismatch(name string) error {
	return checksumMismatch(name)
}

// MalformedInput constructs a MalformedInput error for framing layers
// outside this package (gzip, SPDY).
func MalformedInput(format string, args ...any) error {
	return malformedInput(format, args...)
}

// TailBytes returns the last n bytes currently held in b as an ordered
// sequence of segment-backed chunks, without copying or consuming them.
// It is meant for framers that need to fold freshly appended bytes through
// a running checksum (e.g. gzip's body CRC-32) immediately after a read
// that grew b's tail by exactly n bytes.
func TailBytes(b *Buffer, n int64) [][]byte {
	if n <= 0 || b.head == nil {
		return nil
	}
	skip := b.byteCount - n
	if skip < 0 {
		skip = 0
	}

	var chunks [][]byte
	var seen int64
	s := b.head
	for {
		readable := int64(s.readableBytes())
		if seen+readable > skip {
			from := 0
			if seen < skip {
				from = int(skip - seen)
			}
			chunks = append(chunks, s.data[s.pos+from:s.limit])
		}
		seen += readable
		s = s.next
		if s == b.head {
			break
		}
	}
	return chunks
}
