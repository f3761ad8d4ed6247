// SPDX-License-Identifier: GPL-2.0-or-later

// Package metrics exports counters for mark calls.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"quakemarks/marks"
)

const (
	pathLabel = "path"

	PathWorld    = "world"
	PathSubModel = "submodel"
)

var (
	markCallsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mark_calls_total",
		Help: "The total number of mark fragment calls.",
	}, []string{pathLabel})

	markFragmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mark_fragments_total",
		Help: "The total number of fragments produced.",
	}, []string{pathLabel})

	markSurfacesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mark_surfaces_total",
		Help: "The total number of candidate surfaces.",
	}, []string{pathLabel})

	markClipOverflowsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mark_clip_overflows_total",
		Help: "The total number of clips refused for winding capacity.",
	})

	markDroppedFragmentsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mark_dropped_fragments_total",
		Help: "The total number of fragments dropped for point buffer capacity.",
	})

	markTruncatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mark_surface_list_truncated_total",
		Help: "The total number of calls with a full surface list.",
	})

	markFullTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mark_fragments_full_total",
		Help: "The total number of calls that filled the fragment buffer.",
	})
)

// Observe records one call on path that returned n fragments.
func Observe(path string, n int, s marks.Stats) {
	l := prometheus.Labels{pathLabel: path}
	markCallsTotal.With(l).Inc()
	markFragmentsTotal.With(l).Add(float64(n))
	markSurfacesTotal.With(l).Add(float64(s.Surfaces))
	markClipOverflowsTotal.Add(float64(s.ClipOverflows))
	markDroppedFragmentsTotal.Add(float64(s.DroppedFragments))
	if s.SurfaceListTruncated {
		markTruncatedTotal.Inc()
	}
	if s.FragmentsFull {
		markFullTotal.Inc()
	}
}
