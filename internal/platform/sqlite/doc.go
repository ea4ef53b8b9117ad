// Package sqlite opens local SQLite databases for learner persistence using
// the pure-Go modernc driver. The stores themselves are the portable ones of
// the postgres package, configured with SQLite error mapping.
package sqlite
