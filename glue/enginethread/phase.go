// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package enginethread

// Phase of the engine thread.
type Phase int32

const (
	NotStarted Phase = iota
	WaitingForReady
	Initializing
	Stepping
	TearingDown
	Exited
)

var phaseNames = [...]string{
	NotStarted:      "NotStarted",
	WaitingForReady: "WaitingForReady",
	Initializing:    "Initializing",
	Stepping:        "Stepping",
	TearingDown:     "TearingDown",
	Exited:          "Exited",
}

func (p Phase) String() string {
	if p < 0 || int(p) >= len(phaseNames) {
		return "Unknown"
	}
	return phaseNames[p]
}
