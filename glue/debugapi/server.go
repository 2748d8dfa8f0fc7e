// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
// SPDX-License-Identifier: Apache-2.0

// Package debugapi serves the lifecycle and engine thread state and the
// Prometheus metrics over HTTP.
package debugapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
)

// NewRouter returns the debug API routes.
func NewRouter(state StateProvider) http.Handler {
	router := chi.NewRouter()
	router.NotFound(notFound)
	router.Method(http.MethodGet, "/ping", &pingHandler{})
	router.Method(http.MethodGet, "/state", &stateHandler{state: state})
	router.Method(http.MethodGet, "/state/lifecycle", &lifecycleHandler{state: state})
	router.Method(http.MethodGet, "/state/engine", &engineHandler{state: state})
	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	return router
}

// Server is the debug API server.
//
// Listen and Serve are separate so that the listening address is known
// before the host toolkit starts.
type Server struct {
	addr     string
	server   *http.Server
	listener net.Listener
}

// NewServer creates a debug API server for addr. Port 0 picks a free port.
func NewServer(addr string, state StateProvider) *Server {
	return &Server{
		addr:   addr,
		server: &http.Server{Handler: NewRouter(state)},
	}
}

// Listen on addr
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}
	s.listener = ln
	s.addr = ln.Addr().String()
	log.WithField("addr", s.addr).Info("Debug API listening")
	return nil
}

// Serve requests until ctx is done.
func (s *Server) Serve(ctx context.Context) error {
	if s.listener == nil {
		return errors.New("debug API is not listening")
	}
	defer s.Close()

	select {
	case err := <-s.serveAsync():
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		return nil
	}
}

func (s *Server) serveAsync() chan error {
	errs := make(chan error, 1)
	go func() {
		errs <- s.server.Serve(s.listener)
	}()
	return errs
}

// Addr is the listening address.
func (s *Server) Addr() string {
	return s.addr
}

// URL is full server url for specified endpoint
func (s *Server) URL(endpoint string) string {
	return fmt.Sprintf("http://%s%s", s.addr, endpoint)
}

// Close forcefully closes listeners & connections
func (s *Server) Close() error {
	err := s.server.Close()
	if err == nil {
		log.Debug("Debug API closed")
	}
	return err
}
