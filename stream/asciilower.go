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

// ASCIILower lowercases only the bytes in [0x41, 0x5A] by adding 0x20,
// leaving every other byte untouched. A new slice is allocated only if at
// least one byte was changed; otherwise b itself is returned, so callers
// can observe the no-op case via reference identity.
func ASCIILower(b []byte) []byte {
	for i, c := range b {
		if c < 'A' || c > 'Z' {
			continue
		}
		// first uppercase byte found: allocate and finish the pass on a copy.
		out := make([]byte, len(b))
		copy(out, b[:i])
		for j := i; j < len(b); j++ {
			c := b[j]
			if c >= 'A' && c <= 'Z' {
				c += 'a' - 'A'
			}
			out[j] = c
		}
		return out
	}
	return b
}
