// Package timeouts defines shared timeout constants for the capture service.
package timeouts

import "time"

// ReadHeader limits how long the HTTP server waits for request headers.
const ReadHeader = 5 * time.Second

// Shutdown limits how long the HTTP server waits for in-flight requests
// during graceful shutdown.
const Shutdown = 5 * time.Second

// StoreQuery caps a single catalog lookup made while serving a request.
const StoreQuery = 2 * time.Second

// TraceFlush caps the final span flush when a process exits.
const TraceFlush = 3 * time.Second
