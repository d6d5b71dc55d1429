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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsKindMatchesWrappedError(t *testing.T) {
	err := checksumMismatch("CRC")
	assert.True(t, IsKind(err, KindChecksumMismatch))
	assert.False(t, IsKind(err, KindMalformedInput))
}

func TestIsKindFalseForPlainError(t *testing.T) {
	assert.False(t, IsKind(errors.New("boom"), KindIO))
}

func TestCloseAllAggregatesFailures(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")

	err := closeAll(
		func() error { return nil },
		func() error { return first },
		func() error { return second },
	)
	assert.ErrorContains(t, err, "first")
	assert.ErrorContains(t, err, "second")
}

func TestCloseAllNoErrorsReturnsNil(t *testing.T) {
	err := closeAll(func() error { return nil }, nil, func() error { return nil })
	assert.NoError(t, err)
}

func TestKindStringValues(t *testing.T) {
	assert.Equal(t, "EOF", KindEOF.String())
	assert.Equal(t, "Timeout", KindTimeout.String())
	assert.Equal(t, "MalformedInput", KindMalformedInput.String())
	assert.Equal(t, "ChecksumMismatch", KindChecksumMismatch.String())
	assert.Equal(t, "Io", KindIO.String())
}
