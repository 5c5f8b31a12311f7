// Package service contains the application use cases. Services coordinate
// domain objects and the repositories defined in internal/store, own the
// transaction boundaries of each write, and translate store errors into the
// sentinel errors the API layer maps to HTTP responses.
//
// Services depend on store interfaces only, never on a concrete database.
package service
