// Package repository defines the storage port the services depend on.
//
// The services are written against this interface, not against a concrete
// backend — the same "programming to an interface" split as between a service
// and its database layer. In production the implementation is
// repository/jsonfile; in tests it is a hand-written in-memory mock.
package repository

// Collection is durable whole-collection storage for one record kind.
//
// There is deliberately no per-record API: the model is "load everything at
// startup, hold it in memory, rewrite everything on each durable mutation".
// That rules out incremental corruption (a reader sees the old file or the
// new file, never half of each) at the cost of rewriting records that didn't
// change — fine at this scale.
type Collection[T any] interface {
	// Load reads the full stored collection, in stored order.
	Load() ([]T, error)
	// Save atomically replaces the stored collection.
	Save(records []T) error
}
