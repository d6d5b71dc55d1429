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

import "time"

// Deadline 是一个显式传递的单调时间点 不存在任何隐藏状态
//
// 每一次 I/O 调用都携带自己的 Deadline NoDeadline 表示永不超时
type Deadline struct {
	at   time.Time
	none bool
}

// NoDeadline 返回永不超时的哨兵 Deadline
func NoDeadline() Deadline {
	return Deadline{none: true}
}

// After 返回一个在 d 之后到达的 Deadline
func After(d time.Duration) Deadline {
	return Deadline{at: time.Now().Add(d)}
}

// At 返回一个在指定时间点到达的 Deadline
func At(t time.Time) Deadline {
	return Deadline{at: t}
}

// ThrowIfReached 若当前时间已到达或超过 Deadline 则返回 Timeout 错误
func (d Deadline) ThrowIfReached() error {
	if d.none {
		return nil
	}
	if !time.Now().Before(d.at) {
		return ErrTimeout
	}
	return nil
}

// HasDeadline 返回该 Deadline 是否为 NoDeadline 哨兵之外的真实值
func (d Deadline) HasDeadline() bool {
	return !d.none
}

// Remaining 返回距 Deadline 到达的剩余时间 对 NoDeadline 返回最大可表示时长
func (d Deadline) Remaining() time.Duration {
	if d.none {
		return time.Duration(1<<63 - 1)
	}
	return time.Until(d.at)
}
