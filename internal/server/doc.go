// Package server exposes the status store over HTTP.
//
// The server is optional and read-only:
//
//   - GET /api/status: JSON snapshot of every host's latest status
//   - GET /api/sse: Server-Sent Events stream of status updates
//   - GET /healthz: liveness probe
//
// The server supports graceful shutdown via context cancellation, with a
// 5-second timeout for in-flight requests.
package server
