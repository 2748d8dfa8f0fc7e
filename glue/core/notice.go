// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package core

// NoticeKind identifies a one-shot notification for the engine.
type NoticeKind int

const (
	NoticeBackground NoticeKind = iota
	NoticeForeground
	NoticeFocus
)

func (k NoticeKind) String() string {
	switch k {
	case NoticeBackground:
		return "Background"
	case NoticeForeground:
		return "Foreground"
	case NoticeFocus:
		return "Focus"
	}
	return "Unknown"
}

// Notice is delivered to the engine exactly once, in the order queued.
type Notice struct {
	Kind NoticeKind
	// Focused is set for NoticeFocus.
	Focused bool
}

// Work is what the engine thread has to act on after AwaitWork returns.
type Work struct {
	State StateName
	// Surface is set when State is Ready. The surface is leased to the
	// engine thread until ReleaseSurface or EngineExited.
	Surface *SurfaceDescriptor
	// SurfaceLost is set when the leased surface was discarded or replaced;
	// the engine thread must drop every reference to it and call
	// ReleaseSurface.
	SurfaceLost bool
	// Resized is set when the surface dimensions changed since the last
	// Ready work was handed out.
	Resized bool
	Notices []Notice
}
