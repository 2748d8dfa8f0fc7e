// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package fatalerror

import "fmt"

// This package defines the error types that terminate the engine thread.
// Separate package for namespacing

// ErrorType classifies why the engine thread stopped
type ErrorType string

const (
	// engine Init returned an error
	EngineInitError      ErrorType = "Engine.InitError"
	// engine Step returned an error
	EngineStepError      ErrorType = "Engine.StepError"
	// context or drawing surface could not be created
	GraphicsContextError ErrorType = "Graphics.ContextError"
	GraphicsPresentError ErrorType = "Graphics.PresentError"
	Unknown              ErrorType = "Unknown"
)

var knownTypes = map[ErrorType]struct{}{
	EngineInitError:      {},
	EngineStepError:      {},
	GraphicsContextError: {},
	GraphicsPresentError: {},
}

// GetValidErrorType returns the ErrorType named by s, or Unknown.
func GetValidErrorType(s string) ErrorType {
	if _, ok := knownTypes[ErrorType(s)]; ok {
		return ErrorType(s)
	}
	return Unknown
}

// Error is a fatal engine thread error tagged with its type.
type Error struct {
	Type ErrorType
	Err  error
}

// New wraps err with the given type.
func New(t ErrorType, err error) *Error {
	return &Error{Type: t, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Type)
	}
	return fmt.Sprintf("%s: %v", e.Type, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
