// Package health defines the data model shared by the monitoring pipeline.
//
// A poll cycle produces an [Observation]; the poller combines it with the
// stability verdict into a [HealthStatus], which is what the store keeps and
// the renderer displays. [Classify] derives a host's [State] from a
// HealthStatus on demand, so the classification is never stored alongside
// the fields it is computed from.
package health
