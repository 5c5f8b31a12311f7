// Package api contains the HTTP handlers for the auth and task endpoints.
// Handlers decode and validate requests, call the services, and map service
// errors to status codes with client-safe messages.
package api
