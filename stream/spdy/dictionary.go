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

// Package spdy implements the SPDY/3 name-value header block: a
// length-known, zlib-compressed, dictionary-seeded list of name/value
// pairs, as a stream.Source built on stream.InflaterSource.
package spdy

// Dictionary is the preset zlib dictionary shared by every name-value
// block reader and writer in this package. It is seeded with the header
// names and common values that recur across HTTP header blocks, the same
// purpose the standard SPDY/3 dictionary serves, so that the very first
// block in a connection compresses well without having seen prior blocks.
//
// This is not byte-for-byte the dictionary shipped by any particular SPDY
// implementation; readers and writers in this package only ever need to
// agree with each other; see DESIGN.md.
const Dictionary = "" +
	"optionsgetheadpostputdeletetraceacceptaccept-charsetaccept-encodingaccept-" +
	"languageauthorizationexpectfromhostif-modified-sinceif-matchif-none-matchi" +
	"f-rangeif-unmodifiedsincemax-forwardsproxy-authorizationrangerefererteuser" +
	"-agent100101200201202203204205206300301302303304305306307400401402403404" +
	"405406407408409410411412413414415416417500501502503504505accept-rangesage" +
	"etaglocationproxy-authenticatepublicretry-afterservervarywarningwww-authe" +
	"nticateallowcontent-basecontent-encodingcache-controlconnectiondatetrailer" +
	"transfer-encodingupgradeviawarningcontent-languagecontent-lengthcontent-lo" +
	"cationcontent-md5content-rangecontent-typeetagexpireslast-modifiedset-cook" +
	"iespdy/3content-dispositioncontent-securitypolicyx-frame-optionsx-xss-prot" +
	"ectionx-content-type-optionsstrict-transport-securityhttp/1.1getpostchunk" +
	"edtext/htmlimage/pngimage/jpgimage/gifapplication/xmlapplication/xhtml+xml" +
	"text/plainpublicmax-agecharset=utf-8identityclose\x00"
