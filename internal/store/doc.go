// Package store defines the persistence interfaces for tasks and users, the
// shared store errors, and the transaction helper that services use as their
// unit-of-work boundary. Implementations live under internal/platform.
package store
