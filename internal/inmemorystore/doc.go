// Package inmemorystore provides an ephemeral, in-memory implementation of
// the nodestore.Store interface.
//
// # Characteristics
//
//   - **Ephemeral:** created fresh for each Root, never persisted
//   - **Write-once values:** a final value is stored once per path and only read afterwards
//   - **Safe reads:** sync.Map lets already materialized values be read from any goroutine
//
// Statuses and values live in independent sync.Maps. Reads of materialized
// paths never contend; the Building transition is only ever written by the
// goroutine performing a construction, which matches the single-threaded
// construction model of the engine.
package inmemorystore
