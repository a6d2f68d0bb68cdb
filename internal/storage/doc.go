// Package storage persists simulation runs in three complementary
// forms: JSON run metadata plus a long-format CSV trajectory
// ([Store]), a fixed-layout binary checkpoint for exact state
// round-trips ([SaveCheckpoint], [LoadCheckpoint]), and an optional
// SQLite-backed trajectory store for runs too large to query
// comfortably out of CSV ([SQLiteTrajectory]).
package storage
