// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package metrics provides Prometheus metrics for the host glue.
// Labels are limited to bounded enumerations (state names, reasons, error types).
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// LifecycleTransitionsTotal counts lifecycle state changes.
	LifecycleTransitionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orx_lifecycle_transitions_total",
		Help: "Total number of lifecycle state transitions, by source and target state.",
	}, []string{"from", "to"})

	// LifecycleRejectedTotal counts host callbacks rejected by the current state.
	LifecycleRejectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orx_lifecycle_rejected_total",
		Help: "Total number of host callbacks absorbed because the current state does not allow them.",
	}, []string{"state", "operation"})

	// SurfaceRendezvousSeconds measures how long surface loss waits for the engine thread.
	SurfaceRendezvousSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "orx_surface_rendezvous_seconds",
		Help:    "Time a surface loss callback waited for the engine thread to release the surface.",
		Buckets: []float64{.0005, .001, .005, .01, .025, .05, .1, .25, 1},
	})

	// EngineFramesTotal counts completed engine steps.
	EngineFramesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orx_engine_frames_total",
		Help: "Total number of engine steps executed.",
	})

	// EnginePhase exposes the engine thread phase as an ordinal.
	EnginePhase = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "orx_engine_phase",
		Help: "Current engine thread phase (0=NotStarted .. 5=Exited).",
	})

	// EngineFatalTotal counts engine thread terminations caused by fatal errors.
	EngineFatalTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orx_engine_fatal_total",
		Help: "Total number of fatal engine thread errors, by error type.",
	}, []string{"type"})

	// GraphicsContextCreatedTotal counts graphics context creations.
	GraphicsContextCreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orx_graphics_context_created_total",
		Help: "Total number of graphics contexts created.",
	})

	// GraphicsContextReleasedTotal counts graphics context releases by reason.
	GraphicsContextReleasedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "orx_graphics_context_released_total",
		Help: "Total number of graphics contexts released, by reason (surface_lost, teardown, failure).",
	}, []string{"reason"})

	// GraphicsSurfaceRecreatedTotal counts drawing surface recreations after resize.
	GraphicsSurfaceRecreatedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orx_graphics_surface_recreated_total",
		Help: "Total number of drawing surface recreations triggered by resize.",
	})

	// InputEventsTotal counts normalized input events pushed to the engine queue.
	InputEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orx_input_events_total",
		Help: "Total number of normalized input events enqueued.",
	})

	// InputEventsDroppedTotal counts input events discarded by a full queue.
	InputEventsDroppedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "orx_input_events_dropped_total",
		Help: "Total number of input events dropped because the queue was full.",
	})
)
