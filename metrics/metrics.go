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

// Package metrics exposes process-wide Prometheus collectors for the
// stream package's segment pool and the framing layers built on it, and
// registers itself as the pool's observer so the /metrics endpoint tracks
// live allocation pressure without the stream package importing Prometheus
// itself.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/flowbyte/flowbyte/common"
	"github.com/flowbyte/flowbyte/internal/fasttime"
	"github.com/flowbyte/flowbyte/stream"
	"github.com/flowbyte/flowbyte/stream/gzip"
	"github.com/flowbyte/flowbyte/stream/spdy"
)

var processStarted = fasttime.UnixTimestamp()

var (
	uptime = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: common.App,
			Name:      "uptime",
			Help:      "Uptime in seconds",
		},
	)

	buildInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: common.App,
			Name:      "build_info",
			Help:      "Build information",
		},
		[]string{"version", "git_hash", "build_time"},
	)

	segmentsTaken = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "segments_taken_total",
			Help:      "Segments handed out by the shared segment pool",
		},
	)

	segmentsRecycled = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "segments_recycled_total",
			Help:      "Segments returned to the shared segment pool",
		},
	)

	segmentsDropped = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "segments_dropped_total",
			Help:      "Segments discarded because the pool was at capacity",
		},
	)

	poolFreeBytes = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: common.App,
			Name:      "pool_free_bytes",
			Help:      "Bytes currently held by the shared segment pool's free list",
		},
	)

	framesDecoded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "frames_decoded_total",
			Help:      "Decoded frames by kind (gzip, spdy)",
		},
		[]string{"kind"},
	)

	frameErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: common.App,
			Name:      "frame_errors_total",
			Help:      "Frame decode failures by kind and error kind",
		},
		[]string{"kind", "error_kind"},
	)
)

// poolObserver adapts stream.PoolObserver onto the Prometheus counters
// above. take/recycle/drop rates are the most direct signal of whether the
// shared pool is sized correctly for the current workload.
type poolObserver struct{}

func (poolObserver) OnTaken()    { segmentsTaken.Inc() }
func (poolObserver) OnRecycled() { segmentsRecycled.Inc() }
func (poolObserver) OnDropped()  { segmentsDropped.Inc() }

// frameObserver adapts gzip.Observer and spdy.Observer onto the frame
// counters above, labeling both by the framing kind that registered it.
type frameObserver struct {
	kind string
}

func (f frameObserver) OnDecoded()          { framesDecoded.WithLabelValues(f.kind).Inc() }
func (f frameObserver) OnError(kind string) { frameErrors.WithLabelValues(f.kind, kind).Inc() }

// Register wires the shared segment pool's and the framing layers' observer
// hooks and records build metadata. It is safe to call once at process
// startup.
func Register(info common.BuildInfo) {
	stream.SetPoolObserver(poolObserver{})
	gzip.SetObserver(frameObserver{kind: "gzip"})
	spdy.SetObserver(frameObserver{kind: "spdy"})
	buildInfo.WithLabelValues(info.Version, info.GitHash, info.Time).Set(1)
}

// PollUptimeGauge refreshes the uptime gauge from fasttime's once-a-second
// clock rather than taking a fresh time.Now on every scrape.
func PollUptimeGauge() {
	uptime.Set(float64(fasttime.UnixTimestamp() - processStarted))
}

// PollPoolGauge refreshes the pool_free_bytes gauge from stream.Stats. It is
// cheap enough to call on every /metrics scrape via a prometheus.Collector,
// but is exposed as a plain function so callers can also call it from a
// ticker without depending on the collector machinery.
func PollPoolGauge() {
	poolFreeBytes.Set(float64(stream.Stats().FreeBytes))
}
