// Package events carries learner progression events between components.
//
// The session publishes an Event after every state change it commits; handlers
// such as the autosave handler react without the session knowing about them.
//
// The primary components are:
// - Event: a typed, timestamped record with a JSON payload
// - Handler: interface for components that react to events
// - Emitter: interface for components that publish events
package events
