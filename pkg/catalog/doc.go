// Package catalog stores the public symbols of indexed libraries.
//
// A catalog lets the resolver and validator link names that a library does
// not declare itself but one of its dependencies does, and backs the search
// command. Two backends implement Store: MemoryStore for tests and one-shot
// runs, and SQLiteStore for a persistent catalog on either the cgo driver
// ("sqlite3") or the pure Go driver ("sqlite"). An Indexer loads library
// folders into a store and a Scheduler re-indexes them on a cron schedule.
package catalog
