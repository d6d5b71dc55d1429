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
	"bytes"
	"testing"

	"github.com/klauspost/compress/flate"
	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func deflateRaw(t *testing.T, data []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	w, err := flate.NewWriter(&out, flate.DefaultCompression)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return out.Bytes()
}

func zlibWithDict(t *testing.T, data, dict []byte) []byte {
	t.Helper()
	var out bytes.Buffer
	w, err := zlib.NewWriterLevelDict(&out, zlib.DefaultCompression, dict)
	require.NoError(t, err)
	_, err = w.Write(data)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	return out.Bytes()
}

func TestInflaterSourceRawDeflateRoundTrip(t *testing.T) {
	plain := []byte("the quick brown fox jumps over the lazy dog, repeatedly, " +
		"the quick brown fox jumps over the lazy dog")
	compressed := deflateRaw(t, plain)

	upstream := FromReader(bytes.NewReader(compressed))
	shared := NewBuffer()
	defer shared.Close()
	inf := NewInflaterSource(upstream, shared, nil)

	out := NewBuffer()
	defer out.Close()
	require.NoError(t, Require(inf, out, int64(len(plain)), NoDeadline()))
	assert.Equal(t, plain, out.Snapshot())
}

func TestInflaterSourceZlibDictionaryRoundTrip(t *testing.T) {
	dict := []byte("preset-dictionary-content")
	plain := []byte("uses the preset dictionary content heavily")
	compressed := zlibWithDict(t, plain, dict)

	upstream := FromReader(bytes.NewReader(compressed))
	shared := NewBuffer()
	defer shared.Close()
	inf := NewInflaterSource(upstream, shared, dict)

	out := NewBuffer()
	defer out.Close()
	require.NoError(t, Require(inf, out, int64(len(plain)), NoDeadline()))
	assert.Equal(t, plain, out.Snapshot())
}

func TestInflaterSourceTruncatedInputFails(t *testing.T) {
	plain := bytes.Repeat([]byte{'z'}, 500)
	compressed := deflateRaw(t, plain)
	truncated := compressed[:len(compressed)-10]

	upstream := FromReader(bytes.NewReader(truncated))
	shared := NewBuffer()
	defer shared.Close()
	inf := NewInflaterSource(upstream, shared, nil)

	out := NewBuffer()
	defer out.Close()
	err := Require(inf, out, int64(len(plain)), NoDeadline())
	assert.Error(t, err)
}
