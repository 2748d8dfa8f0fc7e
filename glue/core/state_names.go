// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

// StateName is the name of a lifecycle state.
type StateName string

// String values of possible lifecycle states
const (
	CreatedStateName              StateName = "Created"
	SurfaceMissingStateName       StateName = "SurfaceMissing"
	SurfacePendingResizeStateName StateName = "SurfacePendingResize"
	PausedStateName               StateName = "Paused"
	ReadyStateName                StateName = "Ready"
	StoppedStateName              StateName = "Stopped"
	DestroyedStateName            StateName = "Destroyed"
)
