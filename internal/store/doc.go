// Package store defines the persistence contract for learner state.
// Implementations live under internal/platform (postgres, sqlite, redis);
// the session depends only on the SnapshotStore interface declared here.
package store
