// Package repositories implements SQLite persistence for incense.
//
// Persistence is deliberately a flat string-keyed store: the session log and the
// daily quote cache each own one or two keys (see models.SessionsKey and friends)
// and serialize their state into the value. [SQLiteStore] backs the [Store]
// interface with the kv_store table created by the embedded migrations in the
// shared package; writes are single-statement upserts.
package repositories
