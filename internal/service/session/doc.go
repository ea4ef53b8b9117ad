// Package session is the single-writer handle on one learner's state.
//
// A Session owns the current transaction.State and is the only place it
// changes. Every mutation computes the next state with the pure functions of
// the domain packages and publishes it with a single compare-and-swap, so
// readers never observe a half-applied transaction. After a successful publish
// the session emits an event; the Autosaver turns those events into
// persisted snapshots.
package session
