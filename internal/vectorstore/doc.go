// Package vectorstore provides contiguous coordinate storage for the
// Euclidean fast path.
//
// Coordinates are stored in a Structure-of-Arrays layout: point i occupies
// data[i*dim : (i+1)*dim]. Sequential scans over the backing slice have
// optimal cache behavior and need no per-point pointer chasing.
//
// # Usage
//
//	store := vectorstore.New(3, 128)
//	id, _ := store.Append([]float64{1, 2, 3})
//	v := store.Vector(id)
//
// # Concurrency
//
// Concurrent reads are safe. Append requires external synchronization.
package vectorstore
