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

package gzip

import (
	"bytes"
	stdgzip "compress/gzip"
	"testing"

	"github.com/flowbyte/flowbyte/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeGzip(t *testing.T, name string, data []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	w, err := stdgzip.NewWriterLevel(&out, stdgzip.DefaultCompression)
	require.NoError(t, err)
	w.Name = name
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return out.Bytes()
}

func decodeAll(t *testing.T, raw []byte) ([]byte, error) {
	t.Helper()
	src := New(stream.FromReader(bytes.NewReader(raw)))
	defer src.Close(stream.NoDeadline())

	out := stream.NewBuffer()
	defer out.Close()
	for {
		n, err := src.Read(out, 4096, stream.NoDeadline())
		if err != nil {
			return out.Snapshot(), err
		}
		if n == -1 {
			return out.Snapshot(), nil
		}
	}
}

func TestGzipSourceRoundTripWithName(t *testing.T) {
	raw := encodeGzip(t, "hello.txt", []byte("Hello, World!"))

	got, err := decodeAll(t, raw)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World!", string(got))
}

func TestGzipSourceRoundTripNoName(t *testing.T) {
	data := bytes.Repeat([]byte("flowbyte "), 500)
	raw := encodeGzip(t, "", data)

	got, err := decodeAll(t, raw)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestGzipSourceCorruptedISizeFailsChecksumMismatch(t *testing.T) {
	raw := encodeGzip(t, "hello.txt", []byte("Hello, World!"))
	corrupted := append([]byte(nil), raw...)
	corrupted[len(corrupted)-1] ^= 0xFF

	_, err := decodeAll(t, corrupted)
	require.Error(t, err)
	assert.True(t, stream.IsKind(err, stream.KindChecksumMismatch))
}

func TestGzipSourceCorruptedBodyFailsChecksumMismatch(t *testing.T) {
	raw := encodeGzip(t, "", bytes.Repeat([]byte{'a'}, 200))
	corrupted := append([]byte(nil), raw...)
	// flip a byte well inside the deflate body.
	corrupted[15] ^= 0xFF

	_, err := decodeAll(t, corrupted)
	require.Error(t, err)
}

func TestGzipSourceBadMagicFailsMalformedInput(t *testing.T) {
	raw := encodeGzip(t, "", []byte("x"))
	corrupted := append([]byte(nil), raw...)
	corrupted[0] = 0x00

	_, err := decodeAll(t, corrupted)
	require.Error(t, err)
	assert.True(t, stream.IsKind(err, stream.KindMalformedInput))
}
