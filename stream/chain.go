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

// chainSource drains leftover before pulling any fresh bytes from upstream.
// It is the shared shape behind "a decompressor may have already buffered
// bytes belonging to the next framing section" (gzip trailer, SPDY block
// boundaries): the framer must see those bytes again before asking the
// wire for more.
type chainSource struct {
	leftover *Buffer
	upstream Source
}

// ChainSource returns a Source that yields leftover's buffered bytes first,
// then falls through to upstream once leftover is drained. leftover is not
// owned by the returned Source and is never closed by it.
func ChainSource(leftover *Buffer, upstream Source) Source {
	return &chainSource{leftover: leftover, upstream: upstream}
}

func (c *chainSource) Read(dst *Buffer, n int64, deadline Deadline) (int64, error) {
	if err := deadline.ThrowIfReached(); err != nil {
		return 0, err
	}
	if c.leftover.byteCount > 0 {
		take := c.leftover.byteCount
		if take > n {
			take = n
		}
		if err := c.leftover.ReadInto(dst, take); err != nil {
			return 0, err
		}
		return take, nil
	}
	return c.upstream.Read(dst, n, deadline)
}

func (c *chainSource) Close(deadline Deadline) error {
	return nil
}
