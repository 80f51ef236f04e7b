// Package state holds the in-memory template collection, the current
// template pointer and the current route.
//
// The Store is the single shared application state. It is only changed by
// dispatching an Action; every mutation replaces whole records by id while
// holding the store lock, so readers always see a consistent snapshot.
package state
