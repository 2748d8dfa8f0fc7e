// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

package debugapi

import (
	"net/http"

	"github.com/go-chi/render"
	log "github.com/sirupsen/logrus"

	"github.com/orx/orx/glue/core/statejson"
)

const notFoundErrorType = "Debug.NotFound"

// StateProvider describes the glue's internal state.
type StateProvider interface {
	GetInternalStateDescription() statejson.InternalStateDescription
}

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	ErrorMessage string `json:"errorMessage"`
	ErrorType    string `json:"errorType"`
}

type stateHandler struct {
	state StateProvider
}

func (h *stateHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	desc := h.state.GetInternalStateDescription()
	render.Status(request, http.StatusOK)
	render.JSON(writer, request, &desc)
}

type lifecycleHandler struct {
	state StateProvider
}

func (h *lifecycleHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	render.JSON(writer, request, h.state.GetInternalStateDescription().Lifecycle)
}

type engineHandler struct {
	state StateProvider
}

func (h *engineHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	render.JSON(writer, request, h.state.GetInternalStateDescription().Engine)
}

type pingHandler struct{}

func (h *pingHandler) ServeHTTP(writer http.ResponseWriter, request *http.Request) {
	if _, err := writer.Write([]byte("pong")); err != nil {
		log.WithError(err).Warn("Failed to write 'pong' response")
	}
}

func notFound(writer http.ResponseWriter, request *http.Request) {
	render.Status(request, http.StatusNotFound)
	render.JSON(writer, request, &ErrorResponse{
		ErrorType:    notFoundErrorType,
		ErrorMessage: "no debug endpoint at " + request.URL.Path,
	})
}
