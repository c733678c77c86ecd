package server

import (
	"sync"

	"github.com/coolashishranjan44551-bit/Gen-Ai/internal/ragservice"
)

// Runtime tracks the answering engine as it comes up. Index building can
// take a while on a cold start, so the HTTP server begins accepting
// requests immediately and reports "starting" until the engine is ready.
// A failed start is captured rather than crashing the process, so
// /healthz can surface the reason.
type Runtime struct {
	mu      sync.Mutex
	svc     *ragservice.Service
	initErr error
}

// NewRuntime returns a runtime in the starting state.
func NewRuntime() *Runtime {
	return &Runtime{}
}

// SetReady installs the engine and clears any previous failure.
func (rt *Runtime) SetReady(svc *ragservice.Service) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.svc = svc
	rt.initErr = nil
}

// SetFailed records a startup failure.
func (rt *Runtime) SetFailed(err error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.initErr = err
}

// Service returns the engine, or the startup error if initialization
// failed, or (nil, nil) while still starting.
func (rt *Runtime) Service() (*ragservice.Service, error) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.svc, rt.initErr
}

// Status reports the lifecycle state for health checks.
// detail is non-empty only in the error state.
func (rt *Runtime) Status() (status, detail string) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	switch {
	case rt.initErr != nil:
		return "error", rt.initErr.Error()
	case rt.svc != nil:
		return "ok", ""
	default:
		return "starting", ""
	}
}
