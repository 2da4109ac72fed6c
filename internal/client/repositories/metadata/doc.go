// Package metadata persists small JSON records on the device: the session
// and the recent-accounts ledger, each under its own key.
//
// SQLiteRepository is the default backend (a single-file database in the
// data directory). RedisRepository serves shared terminals where several
// client processes must see the same records; keys are namespaced with a
// prefix.
package metadata
