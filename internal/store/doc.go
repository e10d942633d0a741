// Package store holds the latest health status of every monitored host.
//
// The main components are:
//
//   - [Store]: Interface defining storage and subscription operations
//   - [MemoryStore]: In-memory implementation of Store with pub/sub
//
// Each host's poll loop is the only writer of its own key; the renderer and
// the HTTP API are readers. Reads return deep copies, so a reader never sees
// a record that is still being written. Subscribers receive updates via
// channels with non-blocking sends (slow subscribers will miss updates rather
// than block a poll loop).
package store
