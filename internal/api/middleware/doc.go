// Package middleware holds the HTTP middleware of the API: authentication,
// trace IDs, request metrics and rate limiting.
package middleware
