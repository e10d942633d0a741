// Package poller runs one independent poll loop per monitored host.
//
// The main components are:
//
//   - [Client]: HTTP client wrapper with timeout and size limits
//   - [Observe]: turns a [Response] into a [health.Observation]
//   - [Worker]: the poll loop of a single host, owning its stability window
//     and transition detector
//   - [Scheduler]: starts one Worker goroutine per host and stops them all
//
// A host's cycles are strictly sequential: the next tick is only handled
// after the previous request, including any failure, has completed. Hosts
// never wait on each other.
package poller
