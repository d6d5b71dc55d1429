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

import "sync"

// PoolMax 是 SegmentPool 的字节容量上限 满足 >= 64*SegSize
const PoolMax = 64 * SegSize

// PoolObserver 在 take/recycle 发生时被调用 用于暴露进程级别的池压力指标
//
// 由 metrics 包注册 stream 包本身不依赖任何 metrics 实现 避免引入循环依赖
type PoolObserver interface {
	OnTaken()
	OnRecycled()
	OnDropped()
}

var poolObserver PoolObserver

// SetPoolObserver 注册一个全局 PoolObserver 传入 nil 取消注册
func SetPoolObserver(o PoolObserver) {
	poolObserver = o
}

// segmentPool 是进程级别的有界自由链表 用于回收 segment 分配
//
// 这是全局状态中唯一一块 其内容纯粹是分配缓存 丢弃是安全的
type segmentPool struct {
	mu         sync.Mutex
	free       *segment // 单链表 通过 next 串联 free 中的 segment prev 为 nil take 时重新 detach
	byteCount  int
}

var sharedPool segmentPool

// take 返回一个 detached 的 segment pos=limit=0
//
// 池非空时弹出表头 否则分配一个新的
func (p *segmentPool) take() *segment {
	p.mu.Lock()
	s := p.free
	if s != nil {
		p.free = s.next
		p.byteCount -= SegSize
	}
	p.mu.Unlock()

	if s == nil {
		s = &segment{}
	}
	s.pos, s.limit = 0, 0
	s.detach()

	if poolObserver != nil {
		poolObserver.OnTaken()
	}
	return s
}

// recycle 将 s 归还给池 若池已满则丢弃
func (p *segmentPool) recycle(s *segment) {
	if s == nil {
		return
	}
	s.pos, s.limit = 0, 0

	p.mu.Lock()
	if p.byteCount+SegSize > PoolMax {
		p.mu.Unlock()
		if poolObserver != nil {
			poolObserver.OnDropped()
		}
		return
	}
	s.next = p.free
	s.prev = nil
	p.free = s
	p.byteCount += SegSize
	p.mu.Unlock()

	if poolObserver != nil {
		poolObserver.OnRecycled()
	}
}

// PoolStats 描述了 segment pool 当前的占用情况 主要用于测试和调试端点
type PoolStats struct {
	FreeSegments int
	FreeBytes    int
}

// Stats 返回共享 segment pool 的当前状态
func Stats() PoolStats {
	sharedPool.mu.Lock()
	defer sharedPool.mu.Unlock()
	n := 0
	for s := sharedPool.free; s != nil; s = s.next {
		n++
	}
	return PoolStats{FreeSegments: n, FreeBytes: sharedPool.byteCount}
}
