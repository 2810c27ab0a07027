// Package dispatch routes invocation requests into the capability registry.
//
// The Dispatcher is a stateless pass-through: it looks up an entry by name,
// delegates to the entry's Invoke, and translates every outcome into one
// uniform Result shape so hosts handle success and all failure kinds through
// a single structure. Cross-cutting behavior (logging, metrics, tracing) is
// layered as middleware around the core handler, mirroring how transport
// middleware wraps a connection.
//
// Dispatches are independent: the registry is never mutated during dispatch,
// each invocation gets its own invocation id and argument map, and batches
// run concurrently via DispatchAll without ordering guarantees between
// entries in the batch.
package dispatch
