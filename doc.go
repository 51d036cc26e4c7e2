// Package ecs implements a lightweight Entity-Component-System registry.
//
// Three mechanisms do the work:
//   - a handle recycling allocator that issues stable, versioned entity
//     identities and reuses freed slots without tearing outstanding references,
//   - per-component sparse-set pools that keep payloads packed while giving
//     O(1) membership tests, insertion, and removal,
//   - a view iterator with deferred deallocation that walks the intersection
//     of several component sets while guaranteeing that storage growth mid
//     iteration cannot invalidate references handed out earlier in the walk.
//
// The registry is single-threaded and not safe for concurrent mutation.
// Component and entity errors are programmer errors: they panic rather than
// return an error value, since there is no recoverable path from a corrupt
// registry (see internal/assert).
package ecs
