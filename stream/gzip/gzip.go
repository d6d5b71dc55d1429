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

// Package gzip implements RFC 1952 gzip framing as a stream.Source, built
// on top of stream.InflaterSource for the deflate body.
package gzip

import (
	"hash/crc32"

	"github.com/flowbyte/flowbyte/stream"
)

const (
	flagFHCRC    = 0x02
	flagFEXTRA   = 0x04
	flagFNAME    = 0x08
	flagFCOMMENT = 0x10
)

// Observer is notified of decode outcomes, letting callers (the metrics
// package) expose frame counters without this package importing Prometheus.
type Observer interface {
	OnDecoded()
	OnError(kind string)
}

var observer Observer

// SetObserver registers a package-wide Observer; pass nil to unregister.
func SetObserver(o Observer) {
	observer = o
}

type section int

const (
	sectionHeader section = iota
	sectionBody
	sectionTrailer
	sectionDone
)

// Source decodes a gzip-framed stream: header, deflate body, trailer.
type Source struct {
	upstream   stream.Source
	compressed *stream.Buffer
	inflater   *stream.InflaterSource

	section section
	flags   byte

	headerCRC   uint32
	trackHeader bool
	bodyCRC     uint32
	outLen      uint32
}

// New wraps upstream as a gzip-framed Source.
func New(upstream stream.Source) *Source {
	compressed := stream.NewBuffer()
	return &Source{
		upstream:   upstream,
		compressed: compressed,
		inflater:   stream.NewInflaterSource(upstream, compressed, nil),
	}
}

// Read decodes gzip framing and inflated body bytes into dst.
func (s *Source) Read(dst *stream.Buffer, n int64, deadline stream.Deadline) (int64, error) {
	for {
		switch s.section {
		case sectionHeader:
			if err := s.readHeader(deadline); err != nil {
				s.observeError(err)
				return 0, err
			}
			s.section = sectionBody
		case sectionBody:
			rn, err := s.inflater.Read(dst, n, deadline)
			if err != nil {
				s.observeError(err)
				return 0, err
			}
			if rn == -1 {
				s.section = sectionTrailer
				continue
			}
			s.trackBody(dst, rn)
			return rn, nil
		case sectionTrailer:
			if err := s.readTrailer(deadline); err != nil {
				s.observeError(err)
				return 0, err
			}
			if observer != nil {
				observer.OnDecoded()
			}
			s.section = sectionDone
			return -1, nil
		case sectionDone:
			return -1, nil
		}
	}
}

// trackBody folds the last rn bytes appended to dst into the running CRC
// and output-length counters, walking dst's tail segments without copying.
func (s *Source) trackBody(dst *stream.Buffer, rn int64) {
	tail := stream.TailBytes(dst, rn)
	for _, chunk := range tail {
		s.bodyCRC = crc32.Update(s.bodyCRC, crc32.IEEETable, chunk)
	}
	s.outLen += uint32(rn)
}

func (s *Source) readHeader(deadline stream.Deadline) error {
	hdr := stream.NewBuffer()
	defer hdr.Close()
	if err := stream.Require(s.upstream, hdr, 10, deadline); err != nil {
		return err
	}
	raw, _ := hdr.ReadByteSlice(10)

	if raw[0] != 0x1f || raw[1] != 0x8b {
		return malformedHeader("bad magic")
	}
	s.flags = raw[3]
	s.trackHeader = s.flags&flagFHCRC != 0
	if s.trackHeader {
		s.headerCRC = crc32.ChecksumIEEE(raw)
	}

	if s.flags&flagFEXTRA != 0 {
		lenBuf := stream.NewBuffer()
		if err := stream.Require(s.upstream, lenBuf, 2, deadline); err != nil {
			lenBuf.Close()
			return err
		}
		lb, _ := lenBuf.ReadByteSlice(2)
		lenBuf.Close()
		s.feedHeaderCRC(lb)
		xlen := int64(uint16(lb[0]) | uint16(lb[1])<<8)

		extra := stream.NewBuffer()
		if err := stream.Require(s.upstream, extra, xlen, deadline); err != nil {
			extra.Close()
			return err
		}
		eb, _ := extra.ReadByteSlice(xlen)
		extra.Close()
		s.feedHeaderCRC(eb)
	}

	if s.flags&flagFNAME != 0 {
		if err := s.consumeNulTerminated(deadline); err != nil {
			return err
		}
	}
	if s.flags&flagFCOMMENT != 0 {
		if err := s.consumeNulTerminated(deadline); err != nil {
			return err
		}
	}

	if s.flags&flagFHCRC != 0 {
		crcBuf := stream.NewBuffer()
		if err := stream.Require(s.upstream, crcBuf, 2, deadline); err != nil {
			crcBuf.Close()
			return err
		}
		cb, _ := crcBuf.ReadByteSlice(2)
		crcBuf.Close()
		want := uint16(cb[0]) | uint16(cb[1])<<8
		if uint16(s.headerCRC&0xffff) != want {
			return stream.ChecksumMismatch("FHCRC")
		}
	}
	s.trackHeader = false
	s.bodyCRC = 0
	return nil
}

func (s *Source) feedHeaderCRC(b []byte) {
	if s.trackHeader {
		s.headerCRC = crc32.Update(s.headerCRC, crc32.IEEETable, b)
	}
}

// consumeNulTerminated reads a single NUL-terminated field byte by byte,
// feeding each byte to the header CRC when FHCRC is set.
func (s *Source) consumeNulTerminated(deadline stream.Deadline) error {
	one := stream.NewBuffer()
	defer one.Close()
	for {
		one.Close()
		if err := stream.Require(s.upstream, one, 1, deadline); err != nil {
			return err
		}
		b, _ := one.ReadByteSlice(1)
		s.feedHeaderCRC(b)
		if b[0] == 0 {
			return nil
		}
	}
}

// readTrailer drains the gzip CRC32+ISIZE footer, sourcing from whatever
// the inflater's shared compressed buffer already holds (each inflater
// refill pulls up to a segment from upstream, so part or all of the trailer
// usually sits there already) before going back to the wire for the rest.
func (s *Source) readTrailer(deadline stream.Deadline) error {
	trailer := stream.NewBuffer()
	defer trailer.Close()
	trailerSource := stream.ChainSource(s.compressed, s.upstream)
	if err := stream.Require(trailerSource, trailer, 8, deadline); err != nil {
		return err
	}
	raw, _ := trailer.ReadByteSlice(8)

	wantCRC := uint32(raw[0]) | uint32(raw[1])<<8 | uint32(raw[2])<<16 | uint32(raw[3])<<24
	if wantCRC != s.bodyCRC {
		return stream.ChecksumMismatch("CRC")
	}
	wantISize := uint32(raw[4]) | uint32(raw[5])<<8 | uint32(raw[6])<<16 | uint32(raw[7])<<24
	if wantISize != s.outLen {
		return stream.ChecksumMismatch("ISIZE")
	}
	return nil
}

func (s *Source) observeError(err error) {
	if observer == nil {
		return
	}
	kind, ok := stream.KindOf(err)
	if !ok {
		observer.OnError("unknown")
		return
	}
	observer.OnError(kind.String())
}

// Close releases the inflater and the upstream Source.
func (s *Source) Close(deadline stream.Deadline) error {
	s.compressed.Close()
	return s.inflater.Close(deadline)
}

func malformedHeader(why string) error {
	return stream.MalformedInput("gzip header: " + why)
}
