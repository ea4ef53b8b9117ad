// Package domain contains the core business entities, value objects, and
// domain logic of the learning engine. It represents the heart of the system,
// independent of any specific infrastructure or delivery mechanism.
//
// The subpackages split the engine into its parts:
//
//   - content: the immutable catalog of units, lessons and items
//   - evaluate: pure answer evaluation per lesson type
//   - progress: the learner's progress ledger and daily goals
//   - economy: wallet, shop and inventory value objects
//   - transaction: the atomic "complete lesson" and "purchase item" operations
//
// Every value object in these packages is immutable from the caller's point of
// view: operations return a new value and never modify the receiver.
package domain
