// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package statejson

import (
	"encoding/json"

	log "github.com/sirupsen/logrus"
)

// StateDescription ...
type StateDescription struct {
	Name         string `json:"name"`
	LastModified int64  `json:"lastModified"`
}

// SurfaceDescription ...
type SurfaceDescription struct {
	Name       string `json:"name"`
	Width      int    `json:"width"`
	Height     int    `json:"height"`
	Generation uint64 `json:"generation"`
}

// LifecycleDescription describes the surface lifecycle state machine.
type LifecycleDescription struct {
	State          StateDescription    `json:"state"`
	Surface        *SurfaceDescription `json:"surface,omitempty"`
	Foreground     bool                `json:"foreground"`
	SurfaceDirty   bool                `json:"surfaceDirty"`
	LeasedSurface  uint64              `json:"leasedSurface"`
	PendingNotices int                 `json:"pendingNotices"`
}

// EngineDescription describes the engine thread.
type EngineDescription struct {
	Phase     StateDescription `json:"phase"`
	ContextID string           `json:"contextId,omitempty"`
	Frames    uint64           `json:"frames"`
}

// InternalStateDescription describes internal state of the lifecycle and the engine thread for debugging purposes
type InternalStateDescription struct {
	Lifecycle       *LifecycleDescription `json:"lifecycle"`
	Engine          *EngineDescription    `json:"engine"`
	FirstFatalError string                `json:"firstFatalError"`
}

func (s *InternalStateDescription) AsJSON() []byte {
	bytes, err := json.Marshal(s)
	if err != nil {
		log.Panicf("Failed to marshall internal states: %s", err)
	}
	return bytes
}
