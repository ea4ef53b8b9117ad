// Package api is the local HTTP adapter over a learner session. It exposes
// catalog progress, the wallet, goals, inventory and shop, and the answer,
// completion and purchase operations as JSON endpoints.
package api
