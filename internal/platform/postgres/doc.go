// Package postgres persists learner snapshots and the learner event log in a
// SQL database. The queries are portable: the same store runs on PostgreSQL
// through the pgx driver and on SQLite through the sqlite package.
package postgres
