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
	"io"

	"github.com/klauspost/compress/zlib"
)

// NameValueBlockWriter encodes a sequence of SPDY/3 name-value blocks onto
// one shared zlib stream, the write-side counterpart of
// NameValueBlockReader. Every block after the first compresses against the
// zlib history built up by the ones before it, the same way a real SPDY/3
// connection's compressor works over its lifetime.
type NameValueBlockWriter struct {
	zw *zlib.Writer
	cw *countingWriter
}

// NewNameValueBlockWriter opens a zlib stream over w, seeded with the same
// Dictionary the reader side installs.
func NewNameValueBlockWriter(w io.Writer) (*NameValueBlockWriter, error) {
	cw := &countingWriter{w: w}
	zw, err := zlib.NewWriterLevelDict(cw, zlib.DefaultCompression, []byte(Dictionary))
	if err != nil {
		return nil, err
	}
	return &NameValueBlockWriter{zw: zw, cw: cw}, nil
}

// WriteNameValueBlock compresses pairs and flushes (not closes) the shared
// zlib stream, returning the number of compressed bytes this block added.
// The caller passes that length to the reader's ReadNameValueBlock. Using
// Flush instead of Close is what keeps the zlib history, and therefore the
// compression ratio, shared across every block written through w instead of
// restarting it from scratch each time.
func (w *NameValueBlockWriter) WriteNameValueBlock(pairs []NameValuePair) (int64, error) {
	before := w.cw.n

	var plain bytes.Buffer
	writeUint32(&plain, uint32(len(pairs)))
	for _, p := range pairs {
		writeUint32(&plain, uint32(len(p.Name)))
		plain.Write(p.Name)
		writeUint32(&plain, uint32(len(p.Value)))
		plain.Write(p.Value)
	}

	if _, err := w.zw.Write(plain.Bytes()); err != nil {
		return 0, err
	}
	if err := w.zw.Flush(); err != nil {
		return 0, err
	}
	return w.cw.n - before, nil
}

// Close finalizes the shared zlib stream, writing its trailer. Call it once
// the connection producing these blocks is done, not between blocks.
func (w *NameValueBlockWriter) Close() error {
	return w.zw.Close()
}

// countingWriter tracks how many bytes a NameValueBlockWriter's zlib stream
// has emitted so far, so WriteNameValueBlock can report each block's own
// compressed length without the caller having to track write offsets.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// EncodeNameValueBlock compresses pairs into a standalone SPDY/3 name-value
// block (num_pairs followed by length-prefixed name/value entries), seeded
// with the same Dictionary the reader side installs. It exists to build
// one-shot fixtures for tests and the CLI demo commands; a connection
// encoding many blocks over its lifetime should use NameValueBlockWriter
// directly and share one zlib stream across them.
func EncodeNameValueBlock(pairs []NameValuePair) ([]byte, error) {
	var compressed bytes.Buffer
	w, err := NewNameValueBlockWriter(&compressed)
	if err != nil {
		return nil, err
	}
	if _, err := w.WriteNameValueBlock(pairs); err != nil {
		return nil, err
	}
	if err := w.Close(); err != nil {
		return nil, err
	}
	return compressed.Bytes(), nil
}

func writeUint32(buf *bytes.Buffer, v uint32) {
	buf.WriteByte(byte(v >> 24))
	buf.WriteByte(byte(v >> 16))
	buf.WriteByte(byte(v >> 8))
	buf.WriteByte(byte(v))
}
