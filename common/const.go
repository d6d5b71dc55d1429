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

package common

const (
	// App 应用程序名称
	App = "flowbyte"

	// Version 应用程序版本
	Version = "v0.0.1"

	// DefaultSegmentRequestSize 非 stream 包调用方请求底层 Source 时使用的默认批量大小
	//
	// 与 stream.SegSize 保持一致 便于 CLI/server 侧的缓冲区 sizing 和 segment 边界对齐
	DefaultSegmentRequestSize = 2048
)
