package core

import "errors"

var (
	// ErrConfig reports invalid construction parameters. Engines are never
	// partially built when it is returned.
	ErrConfig = errors.New("invalid configuration")

	// ErrProtocol reports a broken generation invariant: missing, duplicate
	// or stale results, or a grid lease still held at swap time.
	ErrProtocol = errors.New("generation protocol violated")

	// ErrWorkerFault reports a panic recovered inside a worker.
	ErrWorkerFault = errors.New("worker fault")

	// ErrClosed is returned when advancing an automaton after Close.
	ErrClosed = errors.New("automaton closed")
)
