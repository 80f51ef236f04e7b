// Package actions implements the user operations of mjstudio on top of the
// shared template store.
//
// A Studio reads state from the store, calls out to the compiler, the
// snapshotter and the persistence gateway, and commits results back by
// dispatching store actions. Persistence, deletion and snapshots run in
// the background; each returns an async.ExecFuture, and Wait drains all
// of them before the process exits.
package actions
