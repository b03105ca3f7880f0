package server

import "context"

// Server defines the lifecycle contract of the transport server.
type Server interface {
	// RunServer starts serving requests and blocks until a termination
	// signal arrives and the server has shut down.
	RunServer()

	// Run serves until ctx is cancelled, then shuts down gracefully. It
	// returns early if the listener cannot be started.
	Run(ctx context.Context) error

	// Shutdown gracefully stops the server and frees associated resources.
	Shutdown()
}
