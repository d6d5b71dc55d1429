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

import "github.com/cespare/xxhash/v2"

// fingerprint hashes the buffered bytes segment-by-segment without
// snapshotting them into a single slice.
func fingerprint(b *Buffer) uint64 {
	d := xxhash.New()
	for s := b.head; s != nil; {
		d.Write(s.data[s.pos:s.limit])
		s = s.next
		if s == b.head {
			break
		}
	}
	return d.Sum64()
}
