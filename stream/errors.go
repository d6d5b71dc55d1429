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
	"io"

	"github.com/hashicorp/go-multierror"
	"github.com/pkg/errors"
)

// Kind 对应 spec 中定义的非恢复性错误分类
type Kind int

const (
	// KindEOF 上游在请求的字节数到达前已耗尽
	KindEOF Kind = iota
	// KindTimeout 操作期间 Deadline 已到达
	KindTimeout
	// KindMalformedInput 违反了帧格式约定
	KindMalformedInput
	// KindChecksumMismatch CRC 比对失败
	KindChecksumMismatch
	// KindIO 来自外部字节流的错误
	KindIO
)

func (k Kind) String() string {
	switch k {
	case KindEOF:
		return "EOF"
	case KindTimeout:
		return "Timeout"
	case KindMalformedInput:
		return "MalformedInput"
	case KindChecksumMismatch:
		return "ChecksumMismatch"
	case KindIO:
		return "Io"
	default:
		return "Unknown"
	}
}

// Error 携带一个 Kind 以及（可选的）ChecksumMismatch 名称
//
// cause 由 github.com/pkg/errors 包装 保留调用栈 便于诊断
type Error struct {
	Kind  Kind
	Name  string
	cause error
}

func (e *Error) Error() string {
	if e.Name != "" {
		return e.Kind.String() + "(" + e.Name + "): " + e.cause.Error()
	}
	if e.cause != nil {
		return e.Kind.String() + ": " + e.cause.Error()
	}
	return e.Kind.String()
}

func (e *Error) Unwrap() error {
	return e.cause
}

func newError(kind Kind, format string, args ...any) error {
	return &Error{Kind: kind, cause: errors.Errorf(format, args...)}
}

func wrapError(kind Kind, cause error, format string, args ...any) error {
	return &Error{Kind: kind, cause: errors.Wrapf(cause, format, args...)}
}

// ErrEOF 请求的字节数在上游耗尽前未能读满
var ErrEOF = &Error{Kind: KindEOF, cause: io.EOF}

// ErrTimeout Deadline 已到达
var ErrTimeout = &Error{Kind: KindTimeout, cause: errors.New("deadline reached")}

// IsKind 判断 err 的 cause 链上第一个 *Error 节点是否为指定 Kind 更深处的 *Error 不再检查
func IsKind(err error, kind Kind) bool {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind == kind
	}
	return false
}

// checksumMismatch 构造一个 ChecksumMismatch 错误 name 取值 FHCRC/CRC/ISIZE
func checksumMismatch(name string) error {
	return &Error{Kind: KindChecksumMismatch, Name: name, cause: errors.Errorf("checksum mismatch: %s", name)}
}

// malformedInput 构造一个 MalformedInput 错误
func malformedInput(format string, args ...any) error {
	return newError(KindMalformedInput, format, args...)
}

// ioError 包装外部字节流返回的错误
func ioError(cause error) error {
	if cause == nil {
		return nil
	}
	return wrapError(KindIO, cause, "underlying stream")
}

// closeAll 依次关闭 closers 并将所有失败聚合为一个 error
func closeAll(closers ...func() error) error {
	var result *multierror.Error
	for _, c := range closers {
		if c == nil {
			continue
		}
		if err := c(); err != nil {
			result = multierror.Append(result, err)
		}
	}
	if result == nil {
		return nil
	}
	return result.ErrorOrNil()
}
