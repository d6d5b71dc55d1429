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

import (
	"bytes"
	"testing"

	"github.com/flowbyte/flowbyte/stream"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNameValueBlockRoundTrip(t *testing.T) {
	pairs := []NameValuePair{
		{Name: []byte("Content-Type"), Value: []byte("application/json")},
		{Name: []byte(":method"), Value: []byte("GET")},
		{Name: []byte(":path"), Value: []byte("/index.html")},
	}
	encoded, err := EncodeNameValueBlock(pairs)
	require.NoError(t, err)

	upstream := stream.FromReader(bytes.NewReader(encoded))
	leftover := stream.NewBuffer()
	defer leftover.Close()

	r := NewNameValueBlockReader(leftover, upstream)
	defer r.Close(stream.NoDeadline())

	got, err := r.ReadNameValueBlock(int64(len(encoded)), stream.NoDeadline())
	require.NoError(t, err)
	require.Len(t, got, len(pairs))

	// names are lowercased on the way in; values are preserved verbatim.
	assert.Equal(t, "content-type", string(got[0].Name))
	assert.Equal(t, "application/json", string(got[0].Value))
	assert.Equal(t, ":method", string(got[1].Name))
	assert.Equal(t, "GET", string(got[1].Value))
	assert.Equal(t, ":path", string(got[2].Name))
	assert.Equal(t, "/index.html", string(got[2].Value))
}

func TestNameValueBlockEmptyNameFails(t *testing.T) {
	pairs := []NameValuePair{{Name: []byte(""), Value: []byte("x")}}
	encoded, err := EncodeNameValueBlock(pairs)
	require.NoError(t, err)

	upstream := stream.FromReader(bytes.NewReader(encoded))
	leftover := stream.NewBuffer()
	defer leftover.Close()
	r := NewNameValueBlockReader(leftover, upstream)
	defer r.Close(stream.NoDeadline())

	_, err = r.ReadNameValueBlock(int64(len(encoded)), stream.NoDeadline())
	assert.True(t, stream.IsKind(err, stream.KindMalformedInput))
}

func TestNameValueBlockTooManyPairsFails(t *testing.T) {
	pairs := make([]NameValuePair, maxPairs+1)
	for i := range pairs {
		pairs[i] = NameValuePair{Name: []byte("h"), Value: []byte("v")}
	}
	encoded, err := EncodeNameValueBlock(pairs)
	require.NoError(t, err)

	upstream := stream.FromReader(bytes.NewReader(encoded))
	leftover := stream.NewBuffer()
	defer leftover.Close()
	r := NewNameValueBlockReader(leftover, upstream)
	defer r.Close(stream.NoDeadline())

	_, err = r.ReadNameValueBlock(int64(len(encoded)), stream.NoDeadline())
	assert.True(t, stream.IsKind(err, stream.KindMalformedInput))
}

func TestNameValueBlockReaderDecodesMultipleBlocksSharingOneZlibStream(t *testing.T) {
	var buf bytes.Buffer
	w, err := NewNameValueBlockWriter(&buf)
	require.NoError(t, err)

	first := []NameValuePair{{Name: []byte("Content-Type"), Value: []byte("text/plain")}}
	second := []NameValuePair{{Name: []byte(":status"), Value: []byte("200")}}

	firstLen, err := w.WriteNameValueBlock(first)
	require.NoError(t, err)
	secondLen, err := w.WriteNameValueBlock(second)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	upstream := stream.FromReader(bytes.NewReader(buf.Bytes()))
	leftover := stream.NewBuffer()
	defer leftover.Close()

	r := NewNameValueBlockReader(leftover, upstream)
	defer r.Close(stream.NoDeadline())

	got1, err := r.ReadNameValueBlock(firstLen, stream.NoDeadline())
	require.NoError(t, err)
	require.Len(t, got1, 1)
	assert.Equal(t, "content-type", string(got1[0].Name))
	assert.Equal(t, "text/plain", string(got1[0].Value))

	got2, err := r.ReadNameValueBlock(secondLen, stream.NoDeadline())
	require.NoError(t, err)
	require.Len(t, got2, 1)
	assert.Equal(t, ":status", string(got2[0].Name))
	assert.Equal(t, "200", string(got2[0].Value))
}

func TestNameValueBlockFromLeftoverThenUpstream(t *testing.T) {
	pairs := []NameValuePair{{Name: []byte("x-custom"), Value: []byte("yes")}}
	encoded, err := EncodeNameValueBlock(pairs)
	require.NoError(t, err)

	// simulate the caller already having pulled the first few framing
	// bytes off the wire before constructing the reader.
	split := 3
	leftover := stream.FromBytes(encoded[:split])
	defer leftover.Close()
	upstream := stream.FromReader(bytes.NewReader(encoded[split:]))

	r := NewNameValueBlockReader(leftover, upstream)
	defer r.Close(stream.NoDeadline())

	got, err := r.ReadNameValueBlock(int64(len(encoded)), stream.NoDeadline())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "x-custom", string(got[0].Name))
	assert.Equal(t, "yes", string(got[0].Value))
}
