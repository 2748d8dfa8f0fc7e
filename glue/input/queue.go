// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package input

import (
	"sync"

	"github.com/orx/orx/glue/metrics"
)

// Queue is the FIFO handoff between host goroutines and the engine thread.
// Push never blocks. When a capacity is set and the queue is full, the
// oldest events are dropped.
type Queue struct {
	mu       sync.Mutex
	events   []Event
	capacity int
	dropped  uint64
}

// NewQueue returns a queue holding at most capacity events; capacity <= 0
// means unbounded.
func NewQueue(capacity int) *Queue {
	return &Queue{capacity: capacity}
}

// Push appends events in order.
func (q *Queue) Push(events ...Event) {
	if len(events) == 0 {
		return
	}

	q.mu.Lock()
	defer q.mu.Unlock()

	q.events = append(q.events, events...)
	metrics.InputEventsTotal.Add(float64(len(events)))

	if q.capacity > 0 && len(q.events) > q.capacity {
		overflow := len(q.events) - q.capacity
		q.events = append(q.events[:0:0], q.events[overflow:]...)
		q.dropped += uint64(overflow)
		metrics.InputEventsDroppedTotal.Add(float64(overflow))
	}
}

// Drain removes and returns every pending event in arrival order.
func (q *Queue) Drain() []Event {
	q.mu.Lock()
	defer q.mu.Unlock()

	events := q.events
	q.events = nil
	return events
}

// Len returns the number of pending events.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.events)
}

// Dropped returns the number of events discarded because the queue was full.
func (q *Queue) Dropped() uint64 {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.dropped
}
