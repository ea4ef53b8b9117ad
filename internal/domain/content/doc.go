// Package content implements the content catalog: the immutable, process-wide
// registry of units, lessons and lesson items.
//
// A Catalog is built once at startup with NewCatalog and is read-only
// afterwards. Every accessor returns copies, so callers can never mutate the
// unit ordering or lesson content that the progress rules depend on.
package content
